package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

type Config struct {
	CatalogFile string
	LogMode     string
	Output      string
}

// Load reads the given .env files (".env" when none are given) and then
// the environment. A missing .env file is not an error; variables already
// set in the environment win over the file.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	const (
		defaultCatalogFile = "data/products.json"
		defaultLogMode     = "development"
	)

	cfg := &Config{
		CatalogFile: getEnvOrDefault("CATALOG_FILE", defaultCatalogFile),
		LogMode:     getEnvOrDefault("LOG_MODE", defaultLogMode),
		Output:      strings.ToLower(getEnvOrDefault("CATALOG_OUTPUT", OutputText)),
	}

	if err := ValidateOutput(cfg.Output); err != nil {
		return nil, fmt.Errorf("CATALOG_OUTPUT: %w", err)
	}

	return cfg, nil
}

// ValidateOutput accepts the output formats the presenters understand.
func ValidateOutput(output string) error {
	switch output {
	case OutputText, OutputJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output %q, want %q or %q", output, OutputText, OutputJSON)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mytheresa/catalog-model/app/catalog"
	"github.com/mytheresa/catalog-model/app/categories"
	"github.com/mytheresa/catalog-model/app/prompt"
	"github.com/mytheresa/catalog-model/config"
	"github.com/mytheresa/catalog-model/models"
	"github.com/mytheresa/catalog-model/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cmd := newCommand(cfg, log, os.Stdin, os.Stdout)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error("catalog command failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func newCommand(cfg *config.Config, log *logger.Logger, in io.Reader, out io.Writer) *cli.Command {
	// Each run builds its own registry so the totals describe one load.
	newRepo := func(c *cli.Command) (*models.CatalogRepository, *models.Registry, *logger.Logger) {
		scoped := log.With("command", c.Name, "file", c.String("file"))
		registry := models.NewRegistry(catalog.RegistryHooks(scoped))
		return models.NewCatalogRepository(registry), registry, scoped
	}

	outputFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:      "output",
			Aliases:   []string{"o"},
			Value:     cfg.Output,
			Usage:     "output format: text or json",
			Validator: config.ValidateOutput,
		}
	}

	return &cli.Command{
		Name:      "catalog",
		Usage:     "inspect a JSON product catalog",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   cfg.CatalogFile,
				Usage:   "path to the catalog JSON file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print every category with its products and the totals",
				Flags: []cli.Flag{outputFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					repo, registry, log := newRepo(c)
					log.Info("showing catalog")
					return catalog.NewCatalogHandler(repo, registry).
						HandleShow(out, c.String("file"), c.String("output") == config.OutputJSON)
				},
			},
			{
				Name:  "categories",
				Usage: "list categories with item counts and average prices",
				Flags: []cli.Flag{outputFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					repo, _, log := newRepo(c)
					log.Info("listing categories")
					return categories.NewCategoryHandler(repo).
						HandleList(out, c.String("file"), c.String("output") == config.OutputJSON)
				},
			},
			{
				Name:  "reprice",
				Usage: "change the price of a product, asking before a decrease",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "product", Aliases: []string{"p"}, Required: true, Usage: "product name"},
					&cli.FloatFlag{Name: "price", Required: true, Usage: "new price"},
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm a decrease without asking"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					repo, registry, log := newRepo(c)
					log.Info("repricing product", "product", c.String("product"), "price", c.Float("price"))

					confirm := prompt.New(in, out).ConfirmPriceDecrease
					if c.Bool("yes") {
						confirm = func(_, _ decimal.Decimal) bool { return true }
					}

					return catalog.NewCatalogHandler(repo, registry).
						HandleReprice(out, c.String("file"), c.String("product"), c.Float("price"), confirm)
				},
			},
		},
	}
}

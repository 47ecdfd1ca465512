package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// CatalogRepository builds categories from a JSON catalog document.
type CatalogRepository struct {
	registry *Registry
}

func NewCatalogRepository(registry *Registry) *CatalogRepository {
	return &CatalogRepository{
		registry: registry,
	}
}

type categoryRecord struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Products    *[]productRecord `json:"products"`
}

type productRecord struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Price       *json.Number `json:"price"`
	Quantity    *json.Number `json:"quantity"`

	Kind              string      `json:"kind"`
	Efficiency        json.Number `json:"efficiency"`
	Model             string      `json:"model"`
	Memory            json.Number `json:"memory"`
	Color             string      `json:"color"`
	Country           string      `json:"country"`
	GerminationPeriod string      `json:"germination_period"`
}

// categorySpec and productSpec are validated records, ready to build.
type categorySpec struct {
	name        string
	description string
	products    []productSpec
}

type productSpec struct {
	kind        Kind
	name        string
	description string
	price       float64
	quantity    int
	smartphone  SmartphoneDetails
	lawnGrass   LawnGrassDetails
}

// Load reads the catalog file at path. See Decode.
func (r *CatalogRepository) Load(path string) ([]*Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogIO, err)
	}
	return r.Decode(bytes.NewReader(data))
}

// Decode parses a catalog document. The whole document is validated
// before any category is created, so on error nothing is returned and
// the registry counters are untouched.
func (r *CatalogRepository) Decode(src io.Reader) ([]*Category, error) {
	dec := json.NewDecoder(src)
	dec.UseNumber()

	var records *[]categoryRecord
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrCatalogParse)
		}
		return nil, fmt.Errorf("%w: %w", ErrCatalogParse, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: top-level value must be an array", ErrCatalogParse)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after catalog", ErrCatalogParse)
	}

	specs := make([]categorySpec, 0, len(*records))
	for i, rec := range *records {
		spec, err := validateCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: category %d: %w", ErrCatalogParse, i, err)
		}
		specs = append(specs, spec)
	}

	categories := make([]*Category, 0, len(specs))
	for _, spec := range specs {
		category := r.registry.NewCategory(spec.name, spec.description)
		for _, ps := range spec.products {
			if err := category.Add(r.build(ps)); err != nil {
				return nil, err
			}
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (r *CatalogRepository) build(ps productSpec) *Product {
	switch ps.kind {
	case KindSmartphone:
		return r.registry.NewSmartphone(ps.name, ps.description, ps.price, ps.quantity, ps.smartphone)
	case KindLawnGrass:
		return r.registry.NewLawnGrass(ps.name, ps.description, ps.price, ps.quantity, ps.lawnGrass)
	default:
		return r.registry.NewProduct(ps.name, ps.description, ps.price, ps.quantity)
	}
}

func validateCategory(rec categoryRecord) (categorySpec, error) {
	if rec.Name == nil {
		return categorySpec{}, missing("name")
	}
	if rec.Description == nil {
		return categorySpec{}, missing("description")
	}
	if rec.Products == nil {
		return categorySpec{}, missing("products")
	}

	spec := categorySpec{
		name:        *rec.Name,
		description: *rec.Description,
		products:    make([]productSpec, 0, len(*rec.Products)),
	}
	for j, pr := range *rec.Products {
		ps, err := validateProduct(pr)
		if err != nil {
			return categorySpec{}, fmt.Errorf("product %d: %w", j, err)
		}
		spec.products = append(spec.products, ps)
	}
	return spec, nil
}

func validateProduct(rec productRecord) (productSpec, error) {
	switch {
	case rec.Name == nil:
		return productSpec{}, missing("name")
	case rec.Description == nil:
		return productSpec{}, missing("description")
	case rec.Price == nil:
		return productSpec{}, missing("price")
	case rec.Quantity == nil:
		return productSpec{}, missing("quantity")
	}

	price, err := rec.Price.Float64()
	if err != nil {
		return productSpec{}, fmt.Errorf("price %q: %w", rec.Price.String(), err)
	}
	// Non-positive prices still load: the product starts unpriced and the
	// registry reports the rejection.
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return productSpec{}, fmt.Errorf("price %v: %w", price, ErrInvalidPrice)
	}

	quantity, err := wholeNumber(*rec.Quantity)
	if err != nil {
		return productSpec{}, fmt.Errorf("quantity: %w", err)
	}
	if quantity < 0 {
		return productSpec{}, fmt.Errorf("quantity %d must not be negative", quantity)
	}

	kind, err := ParseKind(rec.Kind)
	if err != nil {
		return productSpec{}, err
	}

	ps := productSpec{
		kind:        kind,
		name:        *rec.Name,
		description: *rec.Description,
		price:       price,
		quantity:    quantity,
	}

	switch kind {
	case KindSmartphone:
		efficiency := 0.0
		if rec.Efficiency != "" {
			if efficiency, err = rec.Efficiency.Float64(); err != nil {
				return productSpec{}, fmt.Errorf("efficiency: %w", err)
			}
		}
		memory := 0
		if rec.Memory != "" {
			if memory, err = wholeNumber(rec.Memory); err != nil {
				return productSpec{}, fmt.Errorf("memory: %w", err)
			}
		}
		ps.smartphone = SmartphoneDetails{
			Efficiency: efficiency,
			Model:      rec.Model,
			MemoryGB:   memory,
			Color:      rec.Color,
		}
	case KindLawnGrass:
		ps.lawnGrass = LawnGrassDetails{
			Country:           rec.Country,
			GerminationPeriod: rec.GerminationPeriod,
			Color:             rec.Color,
		}
	}

	return ps, nil
}

// maxWholeNumber bounds quantities and memory sizes read from a catalog.
const maxWholeNumber = math.MaxInt32

// wholeNumber accepts integral JSON numbers within ±maxWholeNumber,
// including forms like 8.0 and 1e2.
func wholeNumber(n json.Number) (int, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		if i > maxWholeNumber || i < -maxWholeNumber {
			return 0, fmt.Errorf("%d is out of range", i)
		}
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", f)
	}
	if f > maxWholeNumber || f < -maxWholeNumber {
		return 0, fmt.Errorf("%v is out of range", f)
	}
	return int(f), nil
}

func missing(field string) error {
	return fmt.Errorf("missing required field %q", field)
}

// FindProduct returns the first product named name across categories.
func FindProduct(categories []*Category, name string) (*Product, error) {
	for _, c := range categories {
		for _, p := range c.RawProducts() {
			if p.Name == name {
				return p, nil
			}
		}
	}
	return nil, ErrProductNotFound
}

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mytheresa/catalog-model/models"
)

type Response struct {
	TotalCategories int        `json:"total_categories"`
	TotalProducts   int        `json:"total_products"`
	Categories      []Category `json:"categories"`
}

type Category struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ItemCount   int       `json:"item_count"`
	Products    []Product `json:"products"`
}

type Product struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        string   `json:"kind"`
	Price       *float64 `json:"price"`
	Quantity    int      `json:"quantity"`
	Summary     string   `json:"summary"`
}

type CatalogProvider interface {
	Load(path string) ([]*models.Category, error)
}

// Counters reports the registry totals shown under a listing.
type Counters interface {
	TotalCategories() int
	TotalProducts() int
}

type CatalogHandler struct {
	repo     CatalogProvider
	counters Counters
}

func NewCatalogHandler(r CatalogProvider, c Counters) *CatalogHandler {
	return &CatalogHandler{
		repo:     r,
		counters: c,
	}
}

// HandleShow loads the catalog at path and writes every category with its
// products, as plain text or as a JSON Response.
func (h *CatalogHandler) HandleShow(w io.Writer, path string, asJSON bool) error {
	categories, err := h.repo.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if asJSON {
		return json.NewEncoder(w).Encode(h.buildResponse(categories))
	}

	for _, c := range categories {
		fmt.Fprintln(w, c.String())
		for _, line := range c.Products() {
			fmt.Fprintf(w, "  - %s\n", line)
		}
	}
	fmt.Fprintf(w, "Всего категорий: %d\n", h.counters.TotalCategories())
	fmt.Fprintf(w, "Всего товаров: %d\n", h.counters.TotalProducts())
	return nil
}

func (h *CatalogHandler) buildResponse(res []*models.Category) Response {
	categories := make([]Category, len(res))
	for i, c := range res {
		raw := c.RawProducts()
		products := make([]Product, len(raw))
		for j, p := range raw {
			products[j] = Product{
				Name:        p.Name,
				Description: p.Description,
				Kind:        p.Kind.String(),
				Quantity:    p.Quantity,
				Summary:     p.String(),
			}
			if price, ok := p.Price(); ok {
				f := price.InexactFloat64()
				products[j].Price = &f
			}
		}
		categories[i] = Category{
			Name:        c.Name,
			Description: c.Description,
			ItemCount:   c.ItemCount(),
			Products:    products,
		}
	}

	return Response{
		TotalCategories: h.counters.TotalCategories(),
		TotalProducts:   h.counters.TotalProducts(),
		Categories:      categories,
	}
}

// HandleReprice loads the catalog, finds the product by name and tries to
// set its price. Rejected and cancelled changes are reported to w and are
// not errors; a missing product or a broken catalog is.
func (h *CatalogHandler) HandleReprice(w io.Writer, path, name string, price float64, confirm models.ConfirmFunc) error {
	categories, err := h.repo.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	product, err := models.FindProduct(categories, name)
	if err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}

	before, hadPrice := product.Price()
	err = product.SetPrice(price, confirm)
	switch {
	case errors.Is(err, models.ErrInvalidPrice):
		fmt.Fprintln(w, "Цена не должна быть нулевая или отрицательная")
		return nil
	case errors.Is(err, models.ErrPriceChangeCancelled):
		fmt.Fprintln(w, "Действие отменено")
		return nil
	case err != nil:
		return err
	}

	after, _ := product.Price()
	if hadPrice && after.LessThan(before) {
		fmt.Fprintf(w, "Цена снижена: %s\n", product.String())
	} else {
		fmt.Fprintf(w, "Цена обновлена: %s\n", product.String())
	}
	return nil
}

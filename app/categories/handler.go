package categories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mytheresa/catalog-model/models"
)

type CategoryResponse struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ProductCount int      `json:"product_count"`
	ItemCount    int      `json:"item_count"`
	AveragePrice *float64 `json:"average_price"`
}

type CategoryProvider interface {
	Load(path string) ([]*models.Category, error)
}

type CategoryHandler struct {
	repo CategoryProvider
}

func NewCategoryHandler(r CategoryProvider) *CategoryHandler {
	return &CategoryHandler{repo: r}
}

// HandleList writes one entry per category with its aggregates. An empty
// category has no average price; any other aggregate error aborts.
func (h *CategoryHandler) HandleList(w io.Writer, path string, asJSON bool) error {
	categories, err := h.repo.Load(path)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			Name:         c.Name,
			Description:  c.Description,
			ProductCount: len(c.RawProducts()),
			ItemCount:    c.ItemCount(),
		}

		avg, err := c.AveragePrice()
		switch {
		// A category with an unpriced product has no meaningful average.
		case errors.Is(err, models.ErrEmptyCategory), errors.Is(err, models.ErrPriceUnset):
		case err != nil:
			return fmt.Errorf("category %q: %w", c.Name, err)
		default:
			f := avg.Round(2).InexactFloat64()
			response[i].AveragePrice = &f
		}
	}

	if asJSON {
		return json.NewEncoder(w).Encode(response)
	}

	for i, c := range categories {
		avg := "нет данных"
		if p := response[i].AveragePrice; p != nil {
			avg = fmt.Sprintf("%.2f руб.", *p)
		}
		fmt.Fprintf(w, "%s Средняя цена: %s\n", c.String(), avg)
	}
	return nil
}

package models

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a product category.
// It owns its products and keeps them in insertion order. Products are
// never removed once added. Create categories with Registry.NewCategory;
// Add refuses categories built as struct literals.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string

	mu       sync.RWMutex
	products []*Product
	registry *Registry
}

// Add appends a product and counts the add on the owning registry.
// Every call counts, including products whose name is already present.
func (c *Category) Add(p *Product) error {
	if c.registry == nil {
		return fmt.Errorf("%w: %q", ErrUnregisteredCategory, c.Name)
	}
	if p == nil {
		return fmt.Errorf("%w: cannot add nil product to %q", ErrTypeMismatch, c.Name)
	}
	if !p.wellFormed() {
		return fmt.Errorf("%w: malformed %s product %q", ErrTypeMismatch, p.Kind, p.Name)
	}

	c.mu.Lock()
	c.products = append(c.products, p)
	c.mu.Unlock()

	c.registry.products.Add(1)
	return nil
}

// Products returns the rendered summary of each product.
func (c *Category) Products() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.products))
	for i, p := range c.products {
		out[i] = p.String()
	}
	return out
}

// RawProducts returns the products themselves. The slice is a copy;
// the products are shared.
func (c *Category) RawProducts() []*Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// ItemCount sums the quantities of all products.
func (c *Category) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := 0
	for _, p := range c.products {
		total += p.Quantity
	}
	return total
}

// AveragePrice is the quantity-weighted mean unit price.
func (c *Category) AveragePrice() (decimal.Decimal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value := decimal.Zero
	quantity := int64(0)
	for _, p := range c.products {
		v, err := p.StockValue()
		if err != nil {
			return decimal.Zero, err
		}
		value = value.Add(v)
		quantity += int64(p.Quantity)
	}
	if quantity == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrEmptyCategory, c.Name)
	}
	return value.Div(decimal.NewFromInt(quantity)), nil
}

func (c *Category) String() string {
	return fmt.Sprintf("%s, количество продуктов: %d шт.", c.Name, c.ItemCount())
}

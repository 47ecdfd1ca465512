package models

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Hooks are optional callbacks fired as catalog entities are created.
type Hooks struct {
	CategoryCreated func(c *Category)
	ProductCreated  func(p *Product)
	// PriceRejected fires when a product is created with a non-positive
	// price and therefore starts with the price unset.
	PriceRejected func(p *Product, err error)
}

// Registry counts the categories created through it and the products
// added to those categories. Counters only grow.
type Registry struct {
	categories atomic.Int64
	products   atomic.Int64
	hooks      Hooks
}

func NewRegistry(hooks Hooks) *Registry {
	return &Registry{hooks: hooks}
}

// NewCategory creates an empty category bound to the registry.
func (r *Registry) NewCategory(name, description string) *Category {
	c := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		registry:    r,
	}
	r.categories.Add(1)
	if r.hooks.CategoryCreated != nil {
		r.hooks.CategoryCreated(c)
	}
	return c
}

func (r *Registry) NewProduct(name, description string, price float64, quantity int) *Product {
	return r.created(NewProduct(name, description, price, quantity), price)
}

func (r *Registry) NewSmartphone(name, description string, price float64, quantity int, details SmartphoneDetails) *Product {
	return r.created(NewSmartphone(name, description, price, quantity, details), price)
}

func (r *Registry) NewLawnGrass(name, description string, price float64, quantity int, details LawnGrassDetails) *Product {
	return r.created(NewLawnGrass(name, description, price, quantity, details), price)
}

func (r *Registry) created(p *Product, price float64) *Product {
	if _, ok := p.Price(); !ok && r.hooks.PriceRejected != nil {
		r.hooks.PriceRejected(p, fmt.Errorf("%w: got %v", ErrInvalidPrice, price))
	}
	if r.hooks.ProductCreated != nil {
		r.hooks.ProductCreated(p)
	}
	return p
}

// TotalCategories is the number of categories created so far.
func (r *Registry) TotalCategories() int {
	return int(r.categories.Load())
}

// TotalProducts is the number of Add calls that succeeded so far.
func (r *Registry) TotalProducts() int {
	return int(r.products.Load())
}

// reset zeroes both counters. Only tests call it.
func (r *Registry) reset() {
	r.categories.Store(0)
	r.products.Store(0)
}

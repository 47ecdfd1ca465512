package models

import "errors"

var (
	// ErrInvalidPrice is returned when a price is zero or negative.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrPriceChangeCancelled is returned when a price decrease was not confirmed.
	ErrPriceChangeCancelled = errors.New("price change cancelled")
	// ErrPriceUnset is returned when an operation needs a price that was cleared.
	ErrPriceUnset = errors.New("price is not set")
	// ErrTypeMismatch is returned for nil products and for operations
	// mixing products of different kinds.
	ErrTypeMismatch = errors.New("product type mismatch")
	// ErrEmptyCategory is returned when an aggregate needs at least one item.
	ErrEmptyCategory = errors.New("category has no products")
	// ErrUnregisteredCategory is returned by Add on a category that was not
	// created through Registry.NewCategory.
	ErrUnregisteredCategory = errors.New("category was not created by a registry")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")

	ErrCatalogIO    = errors.New("catalog read failed")
	ErrCatalogParse = errors.New("catalog parse failed")
)

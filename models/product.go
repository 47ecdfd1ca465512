package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the closed set of product variants known to the catalog.
type Kind int

const (
	KindGeneric Kind = iota
	KindSmartphone
	KindLawnGrass
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindSmartphone:
		return "smartphone"
	case KindLawnGrass:
		return "lawn_grass"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind maps the catalog file spelling of a kind to a Kind.
// An empty string is the generic product.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "generic", "product":
		return KindGeneric, nil
	case "smartphone":
		return KindSmartphone, nil
	case "lawn_grass", "lawngrass":
		return KindLawnGrass, nil
	default:
		return 0, fmt.Errorf("%w: unknown product kind %q", ErrTypeMismatch, s)
	}
}

// SmartphoneDetails holds the fields only smartphones carry.
type SmartphoneDetails struct {
	Efficiency float64
	Model      string
	MemoryGB   int
	Color      string
}

// LawnGrassDetails holds the fields only lawn grass carries.
type LawnGrassDetails struct {
	Country           string
	GerminationPeriod string
	Color             string
}

// ConfirmFunc decides whether a price decrease from current to proposed
// may be applied.
type ConfirmFunc func(current, proposed decimal.Decimal) bool

// Product represents a product in the catalog.
// Its price is kept positive or unset; see SetPrice.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Quantity    int
	Kind        Kind

	Smartphone *SmartphoneDetails
	LawnGrass  *LawnGrassDetails

	price decimal.NullDecimal
}

// NewProduct creates a generic product. A non-positive price leaves the
// price unset; use Registry.NewProduct to have that rejection reported.
func NewProduct(name, description string, price float64, quantity int) *Product {
	p := &Product{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Kind:        KindGeneric,
	}
	if d, ok := positiveDecimal(price); ok {
		p.price = decimal.NewNullDecimal(d)
	}
	return p
}

func NewSmartphone(name, description string, price float64, quantity int, details SmartphoneDetails) *Product {
	p := NewProduct(name, description, price, quantity)
	p.Kind = KindSmartphone
	p.Smartphone = &details
	return p
}

func NewLawnGrass(name, description string, price float64, quantity int, details LawnGrassDetails) *Product {
	p := NewProduct(name, description, price, quantity)
	p.Kind = KindLawnGrass
	p.LawnGrass = &details
	return p
}

// Price returns the current price and false when it is unset.
func (p *Product) Price() (decimal.Decimal, bool) {
	return p.price.Decimal, p.price.Valid
}

// SetPrice changes the price. Non-positive values are rejected with
// ErrInvalidPrice. Lowering an existing price asks confirm first and fails
// with ErrPriceChangeCancelled when it declines; a nil confirm declines.
// On any error the previous price is kept.
func (p *Product) SetPrice(value float64, confirm ConfirmFunc) error {
	proposed, ok := positiveDecimal(value)
	if !ok {
		return fmt.Errorf("%w: got %v", ErrInvalidPrice, value)
	}

	if p.price.Valid && proposed.LessThan(p.price.Decimal) {
		if confirm == nil || !confirm(p.price.Decimal, proposed) {
			return ErrPriceChangeCancelled
		}
	}

	p.price = decimal.NewNullDecimal(proposed)
	return nil
}

// ClearPrice puts the price into the unset state.
func (p *Product) ClearPrice() {
	p.price = decimal.NullDecimal{}
}

// StockValue is price multiplied by quantity.
func (p *Product) StockValue() (decimal.Decimal, error) {
	if !p.price.Valid {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceUnset, p.Name)
	}
	return p.price.Decimal.Mul(decimal.NewFromInt(int64(p.Quantity))), nil
}

// CombinedValue returns the summed stock value of two products of the
// same kind.
func CombinedValue(a, b *Product) (decimal.Decimal, error) {
	if a == nil || b == nil {
		return decimal.Zero, fmt.Errorf("%w: nil product", ErrTypeMismatch)
	}
	if a.Kind != b.Kind {
		return decimal.Zero, fmt.Errorf("%w: cannot combine %s with %s", ErrTypeMismatch, a.Kind, b.Kind)
	}

	av, err := a.StockValue()
	if err != nil {
		return decimal.Zero, err
	}
	bv, err := b.StockValue()
	if err != nil {
		return decimal.Zero, err
	}
	return av.Add(bv), nil
}

func (p *Product) String() string {
	price := "—"
	if p.price.Valid {
		price = FormatPrice(p.price.Decimal)
	}
	base := fmt.Sprintf("%s, %s руб. Остаток %d шт.", p.Name, price, p.Quantity)

	switch {
	case p.Kind == KindSmartphone && p.Smartphone != nil:
		s := p.Smartphone
		return fmt.Sprintf("%s Модель: %s, память: %d ГБ, цвет: %s, производительность: %s.",
			base, s.Model, s.MemoryGB, s.Color, strconv.FormatFloat(s.Efficiency, 'f', -1, 64))
	case p.Kind == KindLawnGrass && p.LawnGrass != nil:
		g := p.LawnGrass
		return fmt.Sprintf("%s Страна: %s, срок прорастания: %s, цвет: %s.",
			base, g.Country, g.GerminationPeriod, g.Color)
	default:
		return base
	}
}

// FormatPrice renders a price the way a float prints: whole amounts keep
// one decimal place ("210000.0"), fractional ones print as is ("199.99").
func FormatPrice(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.StringFixed(1)
	}
	return d.String()
}

// wellFormed reports whether the kind is known and its details are present.
func (p *Product) wellFormed() bool {
	switch p.Kind {
	case KindGeneric:
		return true
	case KindSmartphone:
		return p.Smartphone != nil
	case KindLawnGrass:
		return p.LawnGrass != nil
	default:
		return false
	}
}

func positiveDecimal(v float64) (decimal.Decimal, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(v), true
}

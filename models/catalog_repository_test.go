package models

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {
    "name": "Смартфоны",
    "description": "Смартфоны, как средство не только коммуникации, но и получение дополнительных функций для удобства жизни",
    "products": [
      {"name": "Samsung Galaxy C23 Ultra", "description": "256GB, Серый цвет, 200MP камера", "price": 180000.0, "quantity": 5},
      {"name": "Iphone 15", "description": "512GB, Gray space", "price": 210000.0, "quantity": 8},
      {"name": "Xiaomi Redmi Note 11", "description": "1024GB, Синий", "price": 31000.0, "quantity": 14}
    ]
  },
  {
    "name": "Телевизоры",
    "description": "Современный телевизор, который позволяет наслаждаться просмотром, станет вашим другом и помощником",
    "products": [
      {"name": "55\" QLED 4K", "description": "Фоновая подсветка", "price": 123000.0, "quantity": 7}
    ]
  }
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogRepositoryLoad(t *testing.T) {
	r := NewRegistry(Hooks{})
	repo := NewCatalogRepository(r)

	categories, err := repo.Load(writeCatalog(t, sampleCatalog))

	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "Смартфоны", categories[0].Name)
	assert.Equal(t, "Телевизоры", categories[1].Name)

	phones := categories[0].RawProducts()
	require.Len(t, phones, 3)
	assert.Equal(t, "Samsung Galaxy C23 Ultra", phones[0].Name)
	assert.Equal(t, 5+8+14, categories[0].ItemCount())

	tvs := categories[1].RawProducts()
	require.Len(t, tvs, 1)
	assert.Equal(t, `55" QLED 4K`, tvs[0].Name)

	assert.Equal(t, 2, r.TotalCategories())
	assert.Equal(t, 4, r.TotalProducts())
}

func TestCatalogRepositoryCoercion(t *testing.T) {
	doc := `[{"name": "C", "description": "", "products": [
		{"name": "A", "description": "", "price": "150", "quantity": 3.0},
		{"name": "B", "description": "", "price": 99, "quantity": "2"}
	]}]`

	categories, err := NewCatalogRepository(NewRegistry(Hooks{})).Decode(strings.NewReader(doc))

	require.NoError(t, err)
	products := categories[0].RawProducts()
	require.Len(t, products, 2)
	assert.Equal(t, "150", mustPrice(t, products[0]).String())
	assert.Equal(t, 3, products[0].Quantity)
	assert.Equal(t, "99", mustPrice(t, products[1]).String())
	assert.Equal(t, 2, products[1].Quantity)
}

func TestCatalogRepositoryNonPositivePrice(t *testing.T) {
	doc := `[{"name": "C", "description": "", "products": [
		{"name": "Free", "description": "", "price": 0, "quantity": 1},
		{"name": "Paid", "description": "", "price": 5, "quantity": 2},
		{"name": "Owed", "description": "", "price": -3, "quantity": 1}
	]}]`
	var rejected []string
	r := NewRegistry(Hooks{
		PriceRejected: func(p *Product, err error) {
			assert.ErrorIs(t, err, ErrInvalidPrice)
			rejected = append(rejected, p.Name)
		},
	})

	categories, err := NewCatalogRepository(r).Decode(strings.NewReader(doc))

	require.NoError(t, err)
	products := categories[0].RawProducts()
	require.Len(t, products, 3)

	_, ok := products[0].Price()
	assert.False(t, ok, "zero price leaves the product unpriced")
	assert.Equal(t, "5", mustPrice(t, products[1]).String())
	_, ok = products[2].Price()
	assert.False(t, ok, "negative price leaves the product unpriced")

	assert.Equal(t, []string{"Free", "Owed"}, rejected)
	assert.Equal(t, 3, r.TotalProducts())
}

func TestWholeNumber(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{input: "8", expected: 8},
		{input: "8.0", expected: 8},
		{input: "1e2", expected: 100},
		{input: "-3", expected: -3},
		{input: "2147483647", expected: maxWholeNumber},
		{input: "2147483648", wantErr: true},
		{input: "2.147483648e9", wantErr: true},
		{input: "-2147483648", wantErr: true},
		{input: "1.5", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := wholeNumber(json.Number(tc.input))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCatalogRepositoryVariants(t *testing.T) {
	doc := `[{"name": "Разное", "description": "", "products": [
		{"name": "Iphone 15", "description": "512GB", "price": 210000, "quantity": 8,
		 "kind": "smartphone", "efficiency": 98.2, "model": "15", "memory": 512, "color": "Gray space"},
		{"name": "Газон", "description": "Элитная", "price": 500, "quantity": 20,
		 "kind": "lawn_grass", "country": "Россия", "germination_period": "7 дней", "color": "Зеленый"},
		{"name": "Пульт", "description": "", "price": 900, "quantity": 1}
	]}]`

	categories, err := NewCatalogRepository(NewRegistry(Hooks{})).Decode(strings.NewReader(doc))

	require.NoError(t, err)
	products := categories[0].RawProducts()
	require.Len(t, products, 3)

	assert.Equal(t, KindSmartphone, products[0].Kind)
	require.NotNil(t, products[0].Smartphone)
	assert.Equal(t, SmartphoneDetails{Efficiency: 98.2, Model: "15", MemoryGB: 512, Color: "Gray space"}, *products[0].Smartphone)

	assert.Equal(t, KindLawnGrass, products[1].Kind)
	require.NotNil(t, products[1].LawnGrass)
	assert.Equal(t, "7 дней", products[1].LawnGrass.GerminationPeriod)

	assert.Equal(t, KindGeneric, products[2].Kind)
}

func TestCatalogRepositoryErrors(t *testing.T) {
	testCases := []struct {
		name        string
		doc         string
		expectedErr error
		contains    string
	}{
		{name: "Empty document", doc: "", expectedErr: ErrCatalogParse},
		{name: "Invalid JSON", doc: `[{"name": `, expectedErr: ErrCatalogParse},
		{name: "Object instead of array", doc: `{"name": "x"}`, expectedErr: ErrCatalogParse},
		{name: "Null document", doc: `null`, expectedErr: ErrCatalogParse},
		{name: "Trailing data", doc: `[] []`, expectedErr: ErrCatalogParse},
		{
			name:        "Missing category name",
			doc:         `[{"description": "", "products": []}]`,
			expectedErr: ErrCatalogParse,
			contains:    `"name"`,
		},
		{
			name:        "Missing products",
			doc:         `[{"name": "C", "description": ""}]`,
			expectedErr: ErrCatalogParse,
			contains:    `"products"`,
		},
		{
			name:        "Missing product price",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "quantity": 1}]}]`,
			expectedErr: ErrCatalogParse,
			contains:    `"price"`,
		},
		{
			name:        "Missing product quantity",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1}]}]`,
			expectedErr: ErrCatalogParse,
			contains:    `"quantity"`,
		},
		{
			name:        "Non-numeric price",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": true, "quantity": 1}]}]`,
			expectedErr: ErrCatalogParse,
		},
		{
			name:        "Price out of float range",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1e999, "quantity": 1}]}]`,
			expectedErr: ErrCatalogParse,
		},
		{
			name:        "Quantity above limit",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1, "quantity": 2147483648}]}]`,
			expectedErr: ErrCatalogParse,
			contains:    "out of range",
		},
		{
			name:        "Exponent quantity above limit",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1, "quantity": 3e9}]}]`,
			expectedErr: ErrCatalogParse,
			contains:    "out of range",
		},
		{
			name:        "Fractional quantity",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1, "quantity": 1.5}]}]`,
			expectedErr: ErrCatalogParse,
		},
		{
			name:        "Negative quantity",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1, "quantity": -1}]}]`,
			expectedErr: ErrCatalogParse,
		},
		{
			name:        "Unknown kind",
			doc:         `[{"name": "C", "description": "", "products": [{"name": "A", "description": "", "price": 1, "quantity": 1, "kind": "tv"}]}]`,
			expectedErr: ErrTypeMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := NewRegistry(Hooks{})
			repo := NewCatalogRepository(r)

			// Act
			categories, err := repo.Decode(strings.NewReader(tc.doc))

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.expectedErr)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
			assert.Nil(t, categories)
		})
	}
}

func TestCatalogRepositoryFailureIsAtomic(t *testing.T) {
	// The second category is broken; the first must not be built.
	doc := `[
		{"name": "Good", "description": "", "products": [{"name": "A", "description": "", "price": 1, "quantity": 1}]},
		{"name": "Bad", "description": "", "products": [{"name": "B", "description": ""}]}
	]`
	r := NewRegistry(Hooks{})

	categories, err := NewCatalogRepository(r).Decode(strings.NewReader(doc))

	assert.ErrorIs(t, err, ErrCatalogParse)
	assert.Contains(t, err.Error(), "category 1")
	assert.Nil(t, categories)
	assert.Equal(t, 0, r.TotalCategories())
	assert.Equal(t, 0, r.TotalProducts())
}

func TestCatalogRepositoryMissingFile(t *testing.T) {
	r := NewRegistry(Hooks{})

	categories, err := NewCatalogRepository(r).Load(filepath.Join(t.TempDir(), "nope.json"))

	assert.ErrorIs(t, err, ErrCatalogIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, categories)
}

func TestFindProduct(t *testing.T) {
	categories, err := NewCatalogRepository(NewRegistry(Hooks{})).Decode(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	p, err := FindProduct(categories, `55" QLED 4K`)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity)

	_, err = FindProduct(categories, "NONEXISTENT")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

package catalog

import (
	"github.com/mytheresa/catalog-model/models"
	"github.com/mytheresa/catalog-model/pkg/logger"
)

// RegistryHooks logs entity creation at debug level and price rejections
// at warn level.
func RegistryHooks(log *logger.Logger) models.Hooks {
	return models.Hooks{
		CategoryCreated: func(c *models.Category) {
			log.Debug("category created", "id", c.ID.String(), "name", c.Name)
		},
		ProductCreated: func(p *models.Product) {
			log.Debug("product created",
				"id", p.ID.String(),
				"name", p.Name,
				"kind", p.Kind.String(),
				"quantity", p.Quantity,
			)
		},
		PriceRejected: func(p *models.Product, err error) {
			log.Warn("product price rejected", "name", p.Name, "error", err)
		},
	}
}

package migrations

import (
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/storefront-admin/internal/domains/catalog/adapters/persistence/postgres"
	contentpostgres "github.com/Apurer/storefront-admin/internal/domains/content/adapters/persistence/postgres"
	orderspostgres "github.com/Apurer/storefront-admin/internal/domains/orders/adapters/persistence/postgres"
	shipmentspostgres "github.com/Apurer/storefront-admin/internal/domains/shipments/adapters/persistence/postgres"
	warehousespostgres "github.com/Apurer/storefront-admin/internal/domains/warehouses/adapters/persistence/postgres"
)

// Models lists every persisted record in dependency order.
func Models() []any {
	return []any{
		&catalogpostgres.ProductRecord{},
		&catalogpostgres.VariantRecord{},
		&orderspostgres.OrderRecord{},
		&orderspostgres.OrderItemRecord{},
		&shipmentspostgres.ShipmentRecord{},
		&shipmentspostgres.IdempotencyRecord{},
		&warehousespostgres.WarehouseRecord{},
		&contentpostgres.HeroSectionRecord{},
		&contentpostgres.WebsiteSectionRecord{},
		&contentpostgres.PageRecord{},
		&contentpostgres.PolicyRecord{},
	}
}

// Run applies the schema for all bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(Models()...)
}

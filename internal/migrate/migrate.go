package migrate

import (
	"context"

	"store-service/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pg_trgm
	CreateChecks           bool // CHECK-constraint'ы
	CreateIndexes          bool // индексы
	CreateFKsViaSQL        bool // FK через Exec после AutoMigrate
	CreateUpdatedAtTrigger bool // триггеры updated_at
	CreateSearchIndexes    bool // GIN trgm для поиска по name/description
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
		CreateSearchIndexes:    true,
	}
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы магазина")

	// Расширения
	if opt.CreateExtensions {
		log.Info("Создание расширений PostgreSQL")
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error; err != nil {
			log.Error("pg_trgm error", zap.Error(err))
			return err
		}
		log.Info("Расширения созданы")
	}

	// Таблицы
	log.Info("Создание таблиц: products, orders, order_details")
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderDetail{}); err != nil {
		log.Error("AutoMigrate error", zap.Error(err))
		return err
	}
	log.Info("Таблицы созданы")

	// Триггеры updated_at
	if opt.CreateUpdatedAtTrigger {
		log.Info("Создание триггеров updated_at")
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("triggers error", zap.Error(err))
			return err
		}
		log.Info("Триггеры созданы")
	}

	// CHECK-и
	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")

		// Цена строго положительная, остаток неотрицательный
		if err := db.Exec(`
ALTER TABLE products
	DROP CONSTRAINT IF EXISTS chk_products_price_positive,
	ADD CONSTRAINT chk_products_price_positive
	CHECK (price > 0);
`).Error; err != nil {
			log.Error("chk products.price", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE products
	DROP CONSTRAINT IF EXISTS chk_products_quantity_non_negative,
	ADD CONSTRAINT chk_products_quantity_non_negative
	CHECK (quantity >= 0);
`).Error; err != nil {
			log.Error("chk products.quantity", zap.Error(err))
			return err
		}

		// Допустимые статусы заказа
		if err := db.Exec(`
ALTER TABLE orders
	DROP CONSTRAINT IF EXISTS chk_orders_status_allowed,
	ADD CONSTRAINT chk_orders_status_allowed
	CHECK (status IN ('Pending','Shipped','Cancelled','Completed'));
`).Error; err != nil {
			log.Error("chk orders.status", zap.Error(err))
			return err
		}

		// Позиция заказа: количество и цена продажи строго положительные
		if err := db.Exec(`
ALTER TABLE order_details
	DROP CONSTRAINT IF EXISTS chk_order_details_quantity_gt_zero,
	ADD CONSTRAINT chk_order_details_quantity_gt_zero
	CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("chk order_details.quantity", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_details
	DROP CONSTRAINT IF EXISTS chk_order_details_unit_price_positive,
	ADD CONSTRAINT chk_order_details_unit_price_positive
	CHECK (unit_price > 0);
`).Error; err != nil {
			log.Error("chk order_details.unit_price", zap.Error(err))
			return err
		}

		log.Info("CHECK-и созданы")
	}

	// Индексы
	if opt.CreateIndexes {
		log.Info("Создание индексов")

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_customer_date
ON orders (customer_id, order_date DESC);
`).Error; err != nil {
			log.Error("ix orders customer_date", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_order_details_order_id
ON order_details (order_id, id);
`).Error; err != nil {
			log.Error("ix order_details order_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_products_category_created
ON products (category, created_at DESC);
`).Error; err != nil {
			log.Error("ix products category_created", zap.Error(err))
			return err
		}

		log.Info("Индексы созданы")
	}

	// Индексы для поиска (trgm) — опционально
	if opt.CreateSearchIndexes {
		log.Info("Создание GIN(trgm) индексов для поиска")
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS gin_products_name_trgm
ON products USING gin (name gin_trgm_ops);
`).Error; err != nil {
			log.Error("gin name", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS gin_products_description_trgm
ON products USING gin (description gin_trgm_ops);
`).Error; err != nil {
			log.Error("gin description", zap.Error(err))
			return err
		}
		log.Info("GIN индексы созданы")
	}

	// Внешние ключи
	if opt.CreateFKsViaSQL {
		log.Info("Создание внешних ключей")

		// order_details.order_id -> orders.id (RESTRICT: заказ не удаляется из-под позиций)
		if err := db.Exec(`
ALTER TABLE order_details
  DROP CONSTRAINT IF EXISTS fk_order_details_order,
  ADD CONSTRAINT fk_order_details_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("fk order_details.order_id", zap.Error(err))
			return err
		}

		// order_details.product_id -> products.id (RESTRICT)
		if err := db.Exec(`
ALTER TABLE order_details
  DROP CONSTRAINT IF EXISTS fk_order_details_product,
  ADD CONSTRAINT fk_order_details_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("fk order_details.product_id", zap.Error(err))
			return err
		}

		log.Info("Внешние ключи созданы")
	}

	log.Info("Миграция базы магазина успешно завершена")
	return nil
}

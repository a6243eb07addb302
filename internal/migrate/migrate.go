package migrate

import (
	"context"
	"gameshop-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateDB(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database migration")

	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Error("failed to enable pgcrypto extension", zap.Error(err))
		return err
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		log.Error("failed to migrate tables", zap.Error(err))
		return err
	}

	// Функциональный уникальный индекс на email (lower(email))
	if err := db.WithContext(ctx).Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (lower(email))`,
	).Error; err != nil {
		log.Error("failed to create unique index on lower(email)", zap.Error(err))
		return err
	}

	if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS chk_order_items_quantity,
  ADD CONSTRAINT chk_order_items_quantity CHECK (quantity >= 1);
`).Error; err != nil {
		log.Error("failed to create quantity check constraint", zap.Error(err))
		return err
	}

	if err := db.WithContext(ctx).Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
		log.Error("failed to create FK order_items.order_id -> orders.id", zap.Error(err))
		return err
	}

	log.Info("database migration completed")
	return nil
}

package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// AutoMigrate creates or updates the schema for all domain models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Board{},
		&domain.Column{},
		&domain.Task{},
		&domain.Tag{},
		&domain.Subtask{},
		&domain.Attachment{},
		&domain.Comment{},
		&domain.ActivityLog{},
	)
}

// SafeAutoMigrate runs AutoMigrate and logs instead of failing the
// process, so a schema hiccup does not take the service down.
func SafeAutoMigrate(db *gorm.DB, logger *zap.Logger) {
	if err := AutoMigrate(db); err != nil {
		logger.Error("auto migration failed", zap.Error(err))
		return
	}
	logger.Info("auto migration completed")
}

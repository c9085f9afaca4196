package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tatrunhau/HRM-Project-Final-sub002/internal/models"
)

// Migrate opens a short-lived GORM connection, brings the schema up to
// date and closes it again. Runtime queries go through the pgx pool.
func Migrate(ctx context.Context, databaseURL string) error {
	gormDB, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open gorm db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get gorm sql db: %w", err)
	}
	defer func() { _ = sqlDB.Close() }()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctxPing); err != nil {
		return fmt.Errorf("ping gorm db: %w", err)
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&models.Role{},
		&models.Jobtitle{},
		&models.Employee{},
		&models.User{},
		&models.Session{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}

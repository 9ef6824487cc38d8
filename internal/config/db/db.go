package db

import (
	"fmt"

	"github.com/domilony/leadgen/internal/config"
	"github.com/domilony/leadgen/internal/domain/admin"
	"github.com/domilony/leadgen/internal/domain/ticket"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the configured database. Postgres backs server deployments;
// sqlite backs single-file deployments and tests.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
		)
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		conn, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate creates or updates the two tables this service owns.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&ticket.Ticket{}, &admin.AdminUser{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

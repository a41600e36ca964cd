package db

import (
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	"github.com/diewo77/fibertelecom/internal/config"
	"github.com/diewo77/fibertelecom/internal/models"
)

//go:embed migrations
var migrationFS embed.FS

// Migrate runs AutoMigrate for all models.
// Call this at application startup or as part of a migration step.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// MigrateSQL applies the versioned SQL migrations for driver with golang-migrate.
// It reuses the gorm connection, so it also works on in-memory databases.
func MigrateSQL(db *gorm.DB, driver string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	var target database.Driver
	switch driver {
	case config.DriverSQLite:
		target, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	case config.DriverPostgres:
		target, err = migratepg.WithInstance(sqlDB, &migratepg.Config{})
	default:
		return fmt.Errorf("no sql migrations for driver %q", driver)
	}
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	src, err := iofs.New(migrationFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return err
	}
	// m.Close would also close the shared *sql.DB, so only the source is released.
	defer src.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Setup brings the schema up to date the way cfg asks for.
func Setup(db *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations {
		if err := MigrateSQL(db, cfg.Database.Driver); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := Migrate(db); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	for _, table := range []string{"products", "customers", "sales", "installment_payments", "expenses"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	if cfg.App.Seed {
		return Seed(db)
	}
	return nil
}

package db

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/diewo77/recipe-api/internal/config"
	"github.com/diewo77/recipe-api/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres:// scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const connectAttempts = 10

// MigrationFiles exposes the embedded SQL migrations.
func MigrationFiles() fs.FS { return migrationsFS }

// Models lists every table managed by AutoMigrate, in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Token{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	}
}

// Connect opens the configured database, retrying while Postgres starts up.
func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	if cfg.IsSQLite() {
		log.Info("opening sqlite database", zap.String("path", cfg.SQLitePath))
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	}

	dsn := NormalizeDSN(cfg.DSN())
	log.Info("connecting to database", zap.String("dsn", MaskDSN(dsn)))
	var conn *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		log.Warn("database not ready, retrying", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return conn, nil
}

// Migrate creates or updates tables from the GORM models.
func Migrate(conn *gorm.DB) error {
	for _, m := range Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	for _, table := range []string{"users", "recipes", "tags", "recipe_tags"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// MigrateSQL applies the embedded SQL migrations to a Postgres database.
func MigrateSQL(cfg config.DatabaseConfig) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, ToURLDSN(NormalizeDSN(cfg.DSN())))
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

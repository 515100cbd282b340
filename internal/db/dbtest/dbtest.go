// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/diewo77/recipe-api/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database named after the running test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return open(t, "file:"+name+"?mode=memory&cache=shared", 1)
}

// OpenFile returns a migrated database file in t.TempDir() served by a pool of
// conns connections. Transactions begin IMMEDIATE and wait on the busy timeout,
// so concurrent writers queue instead of failing with SQLITE_BUSY.
func OpenFile(t *testing.T, conns int) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	return open(t, path+"?_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL", conns)
}

func open(t *testing.T, dsn string, conns int) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

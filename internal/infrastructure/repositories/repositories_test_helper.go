package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

// serializeWrites funnels the pool through a single connection. sqlite
// permits one writer at a time, so concurrent test traffic would
// otherwise surface as lock errors instead of exercising atomicity.
func serializeWrites(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		name TEXT,
		password_hash TEXT,
		credit_score INTEGER NOT NULL DEFAULT 600,
		group_id TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createGroupTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		trust_score INTEGER NOT NULL DEFAULT 100,
		insurance_pool TEXT NOT NULL DEFAULT '0',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE group_members (
		id TEXT PRIMARY KEY,
		group_id TEXT NOT NULL,
		user_id TEXT NOT NULL UNIQUE,
		created_at DATETIME
	);`)
}

func createPortfolioTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE portfolios (
		user_id TEXT PRIMARY KEY,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE holdings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		quantity TEXT NOT NULL,
		market_price TEXT NOT NULL,
		position INTEGER NOT NULL,
		created_at DATETIME
	);`)
}

func createLoanTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE loans (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT 1,
		repaid BOOLEAN NOT NULL DEFAULT 0,
		reason TEXT,
		repaid_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

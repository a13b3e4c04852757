// Package testutil provides database helpers for integration tests.
package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// Environment variables pointing at disposable test databases. Integration
// tests skip when they are unset.
const (
	PostgresDSNEnvVar = "CREDVAULT_TEST_POSTGRES_DSN"
	MySQLDSNEnvVar    = "CREDVAULT_TEST_MYSQL_DSN"
)

const createCredentialsTablePostgres = `CREATE TABLE IF NOT EXISTS credentials (
	id UUID PRIMARY KEY,
	provider VARCHAR(255) NOT NULL,
	type VARCHAR(64) NOT NULL,
	ciphertext TEXT NOT NULL,
	iv TEXT NOT NULL,
	tag TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL,
	CONSTRAINT credentials_provider_type_key UNIQUE (provider, type)
)`

const createCredentialsTableMySQL = `CREATE TABLE IF NOT EXISTS credentials (
	id CHAR(36) PRIMARY KEY,
	provider VARCHAR(255) NOT NULL,
	type VARCHAR(64) NOT NULL,
	ciphertext TEXT NOT NULL,
	iv TEXT NOT NULL,
	tag TEXT NOT NULL,
	created_at TIMESTAMP(6) NOT NULL,
	updated_at TIMESTAMP(6) NOT NULL,
	UNIQUE KEY credentials_provider_type_key (provider, type)
)`

// PostgresTestDSN returns the PostgreSQL test DSN, or an empty string when the
// environment variable is unset.
func PostgresTestDSN() string {
	return os.Getenv(PostgresDSNEnvVar)
}

// MySQLTestDSN returns the MySQL test DSN, or an empty string when the
// environment variable is unset.
func MySQLTestDSN() string {
	return os.Getenv(MySQLDSNEnvVar)
}

// SetupPostgresDB connects to the PostgreSQL test database and creates the
// schema. Skips the test when no test DSN is configured.
func SetupPostgresDB(t *testing.T) *sql.DB {
	t.Helper()
	return setupDB(t, "postgres", PostgresTestDSN(), createCredentialsTablePostgres)
}

// SetupMySQLDB connects to the MySQL test database and creates the schema.
// Skips the test when no test DSN is configured.
func SetupMySQLDB(t *testing.T) *sql.DB {
	t.Helper()
	return setupDB(t, "mysql", MySQLTestDSN(), createCredentialsTableMySQL)
}

func setupDB(t *testing.T, driver, dsn, schema string) *sql.DB {
	t.Helper()

	if dsn == "" {
		t.Skipf("skipping: %s database not configured", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		t.Fatalf("failed to open %s test database: %v", driver, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		t.Skipf("skipping: %s database not reachable: %v", driver, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// TeardownDB truncates test data and closes the connection.
func TeardownDB(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("DELETE FROM credentials"); err != nil {
		t.Logf("Warning: failed to clean credentials table: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Logf("Warning: failed to close test database: %v", err)
	}
}

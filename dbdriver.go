package main

import (
	"database/sql"

	// Pure Go sqlite driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

// SQLiteDriver represents the available SQLite driver options
type SQLiteDriver int

const (
	SQLiteDriverModernC SQLiteDriver = iota // Pure Go implementation (modernc.org/sqlite)
	SQLiteDriverMattn                       // CGO implementation (mattn/go-sqlite3)
)

// SQLiteConfig holds the configuration for SQLite driver selection
type SQLiteConfig struct {
	Driver SQLiteDriver
}

// DriverName returns the name to hand to sql.Open
func (cfg *SQLiteConfig) DriverName() string {
	if cfg.Driver == SQLiteDriverMattn {
		return "sqlite3"
	}
	return "sqlite"
}

// DisplayName returns a human-readable name for the driver
func (cfg *SQLiteConfig) DisplayName() string {
	if cfg.Driver == SQLiteDriverMattn {
		return "mattn/go-sqlite3 (CGO)"
	}
	return "modernc.org/sqlite (Pure Go)"
}

// Open opens a SQLite database using the configured driver
func (cfg *SQLiteConfig) Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open(cfg.DriverName(), dataSourceName)
}

// DetermineSQLiteDriver picks the pure Go driver unless the CGO one was asked
// for and this build has it.
func DetermineSQLiteDriver(useCgo bool) *SQLiteConfig {
	cfg := &SQLiteConfig{Driver: SQLiteDriverModernC}
	if useCgo && cgoSQLite {
		cfg.Driver = SQLiteDriverMattn
	}
	return cfg
}

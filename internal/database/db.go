// Package database opens and configures the MySQL connection pool
// shared by the booking store.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open builds a DSN from the individual connection settings, opens the
// pool and verifies the server is reachable with a ping.
//
// parseTime=true makes the driver scan DATETIME columns into time.Time,
// and loc=UTC keeps every timestamp in UTC on both sides of the wire.
// Hold expiry comparisons rely on that.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC", user, pass, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return db, nil
}

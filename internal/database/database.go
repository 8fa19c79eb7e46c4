// Package database manages the connection to the database a dataset is loaded into.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "modernc.org/sqlite"             // SQLite driver, registered as "sqlite"

	"github.com/dbsmedya/godatagen/internal/config"
)

// Supported target drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// defaultMaxRetries is the number of connection attempts before giving up.
const defaultMaxRetries = 3

// Manager handles the connection to the target database.
type Manager struct {
	Target *sql.DB
	config *config.DatabaseConfig

	maxRetries int
	backoff    time.Duration
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		config:     cfg,
		maxRetries: defaultMaxRetries,
		backoff:    time.Second,
	}
}

// Driver returns the configured driver name.
func (m *Manager) Driver() string {
	if m.config == nil {
		return ""
	}
	return m.config.Driver
}

// Connect establishes the connection to the target database.
func (m *Manager) Connect(ctx context.Context) error {
	if m.config == nil {
		return fmt.Errorf("failed to connect to target database: no configuration")
	}

	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to target database: %w", err)
	}
	m.Target = db
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB
	var err error

	backoff := m.backoff

	for i := 0; i < m.maxRetries; i++ {
		db, err = m.open()
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < m.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", m.maxRetries, err)
}

// open creates a database handle for the configured driver.
func (m *Manager) open() (*sql.DB, error) {
	cfg := m.config

	var dsn string
	switch cfg.Driver {
	case DriverMySQL:
		dsn = BuildDSN(cfg)
	case DriverSQLite:
		dsn = BuildSQLiteDSN(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		// One writer; an in-memory database also lives on a single connection.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true&multiStatements=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// BuildSQLiteDSN constructs a modernc SQLite DSN with foreign keys enforced.
// The path ":memory:" opens a private in-memory database.
func BuildSQLiteDSN(path string) string {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + pragmas
	}
	return "file:" + path + "?" + pragmas
}

// Close closes the target connection.
func (m *Manager) Close() error {
	if m.Target == nil {
		return nil
	}
	if err := m.Target.Close(); err != nil {
		return fmt.Errorf("target close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.Target == nil {
		return fmt.Errorf("target ping failed: not connected")
	}
	if err := m.Target.PingContext(ctx); err != nil {
		return fmt.Errorf("target ping failed: %w", err)
	}
	return nil
}

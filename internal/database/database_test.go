package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dbsmedya/godatagen/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.DatabaseConfig
		expected string
	}{
		{
			name: "basic DSN",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "rentals",
				TLS:      "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/rentals?parseTime=true&multiStatements=true&tls=preferred",
		},
		{
			name: "DSN without database",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				TLS:      "preferred",
			},
			expected: "root:secret@tcp(localhost:3306)/?parseTime=true&multiStatements=true&tls=preferred",
		},
		{
			name: "DSN with TLS disabled",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "secret",
				Database: "rentals",
				TLS:      "disable",
			},
			expected: "root:secret@tcp(localhost:3306)/rentals?parseTime=true&multiStatements=true&tls=false",
		},
		{
			name: "DSN with TLS required and custom port",
			cfg: &config.DatabaseConfig{
				Host:     "remote-host",
				Port:     3307,
				User:     "admin",
				Password: "p@ssw0rd!",
				Database: "rentals",
				TLS:      "required",
			},
			expected: "admin:p@ssw0rd!@tcp(remote-host:3307)/rentals?parseTime=true&multiStatements=true&tls=true",
		},
		{
			name: "empty TLS defaults to preferred",
			cfg: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Database: "rentals",
			},
			expected: "root:@tcp(localhost:3306)/rentals?parseTime=true&multiStatements=true&tls=preferred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildDSN(tt.cfg)
			if result != tt.expected {
				t.Errorf("BuildDSN() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

func TestBuildSQLiteDSN(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "file path",
			path:     "godatagen.db",
			expected: "file:godatagen.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
		{
			name:     "in memory",
			path:     ":memory:",
			expected: "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
		{
			name:     "file URI with params",
			path:     "file:data.db?mode=rwc",
			expected: "file:data.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
		{
			name:     "file URI without params",
			path:     "file:data.db",
			expected: "file:data.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSQLiteDSN(tt.path); got != tt.expected {
				t.Errorf("BuildSQLiteDSN() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestNewManager(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"}

	manager := NewManager(cfg)
	if manager == nil {
		t.Fatal("NewManager() returned nil")
	}
	if manager.config != cfg {
		t.Error("manager.config should point to provided config")
	}
	if manager.Target != nil {
		t.Error("Target should be nil before Connect()")
	}
	if manager.Driver() != DriverSQLite {
		t.Errorf("Driver() = %q, expected %q", manager.Driver(), DriverSQLite)
	}
}

func TestNewManager_NilConfig(t *testing.T) {
	manager := NewManager(nil)
	if manager.Driver() != "" {
		t.Errorf("expected empty driver, got %q", manager.Driver())
	}
	if err := manager.Connect(context.Background()); err == nil {
		t.Error("expected Connect() to fail without configuration")
	}
}

func TestManagerCloseWithoutConnect(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: DriverSQLite})

	if err := manager.Close(); err != nil {
		t.Errorf("Close() returned error for unconnected manager: %v", err)
	}
}

func TestManagerPingWithoutConnect(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: DriverSQLite})

	err := manager.Ping(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not connected") {
		t.Errorf("expected not connected error, got: %v", err)
	}
}

func TestConnect_SQLiteInMemory(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})

	if err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer manager.Close()

	if err := manager.Ping(context.Background()); err != nil {
		t.Errorf("Ping() failed: %v", err)
	}

	var fk int
	if err := manager.Target.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign keys enforced, got %d", fk)
	}
}

func TestConnect_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.db")
	manager := NewManager(&config.DatabaseConfig{Driver: DriverSQLite, Path: path})

	if err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	defer manager.Close()

	if _, err := manager.Target.Exec("CREATE TABLE t (id INTEGER)"); err != nil {
		t.Errorf("failed to use file database: %v", err)
	}
}

func TestConnect_UnsupportedDriverRetriesThenFails(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: "oracle"})
	manager.backoff = time.Millisecond

	err := manager.Connect(context.Background())
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "failed after 3 retries") {
		t.Errorf("expected retry count in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), `unsupported driver "oracle"`) {
		t.Errorf("expected driver name in error, got: %v", err)
	}
}

func TestConnect_CanceledContext(t *testing.T) {
	manager := NewManager(&config.DatabaseConfig{Driver: "oracle"})
	manager.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := manager.Connect(ctx)
	if err == nil || !strings.Contains(err.Error(), context.Canceled.Error()) {
		t.Errorf("expected context canceled error, got: %v", err)
	}
}

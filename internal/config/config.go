// Package config provides configuration structures and loading for godatagen.
package config

// Config represents the complete application configuration.
type Config struct {
	Target     DatabaseConfig   `yaml:"target" mapstructure:"target"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Load       LoadConfig       `yaml:"load" mapstructure:"load"`
	Export     ExportConfig     `yaml:"export" mapstructure:"export"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig describes the database a dataset is loaded into.
type DatabaseConfig struct {
	Driver             string `yaml:"driver" mapstructure:"driver"` // mysql or sqlite
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	Path               string `yaml:"path" mapstructure:"path"` // sqlite file
	TLS                string `yaml:"tls" mapstructure:"tls"`   // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// GenerationConfig holds the requested collection sizes and person options.
type GenerationConfig struct {
	Customers    int     `yaml:"customers" mapstructure:"customers"`
	Addresses    int     `yaml:"addresses" mapstructure:"addresses"`
	Jobs         int     `yaml:"jobs" mapstructure:"jobs"`
	Transactions int     `yaml:"transactions" mapstructure:"transactions"`
	Locale       string  `yaml:"locale" mapstructure:"locale"`
	MaleRatio    float64 `yaml:"male_ratio" mapstructure:"male_ratio"`
	UniqueNames  bool    `yaml:"unique_names" mapstructure:"unique_names"`
	MinAge       int     `yaml:"min_age" mapstructure:"min_age"`
	MaxAge       int     `yaml:"max_age" mapstructure:"max_age"`
	Seed         int64   `yaml:"seed" mapstructure:"seed"`                 // 0 = time based
	MaxAttempts  int     `yaml:"max_attempts" mapstructure:"max_attempts"` // duplicate draws before a provider gives up
}

// LoadConfig controls how a dataset is written to the target database.
type LoadConfig struct {
	BatchSize               int    `yaml:"batch_size" mapstructure:"batch_size"`
	DropExisting            bool   `yaml:"drop_existing" mapstructure:"drop_existing"`
	DisableForeignKeyChecks bool   `yaml:"disable_foreign_key_checks" mapstructure:"disable_foreign_key_checks"`
	Verify                  string `yaml:"verify" mapstructure:"verify"`             // count, sha256 or skip
	LockTimeout             int    `yaml:"lock_timeout" mapstructure:"lock_timeout"` // seconds to wait for the mysql load lock
}

// ExportConfig controls CSV export.
type ExportConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Target: DatabaseConfig{
			Driver:             "sqlite",
			Port:               3306,
			Path:               "godatagen.db",
			TLS:                "preferred",
			MaxConnections:     10,
			MaxIdleConnections: 5,
		},
		Generation: GenerationConfig{
			Customers:    100,
			Addresses:    100,
			Jobs:         20,
			Transactions: 500,
			Locale:       "en_US",
			MaleRatio:    0.5,
			UniqueNames:  false,
			MinAge:       15,
			MaxAge:       100,
			MaxAttempts:  100,
		},
		Load: LoadConfig{
			BatchSize:    500,
			DropExisting: false,
			Verify:       "count",
			LockTimeout:  1,
		},
		Export: ExportConfig{
			Directory: "out",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

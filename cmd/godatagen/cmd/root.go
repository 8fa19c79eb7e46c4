package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/godatagen/internal/config"
	"github.com/dbsmedya/godatagen/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	seed         int64
	customers    int
	addresses    int
	jobs         int
	transactions int
	batchSize    int
	noColor      bool
)

var rootCmd = &cobra.Command{
	Use:   "godatagen",
	Short: "Synthetic relational dataset generator",
	Long: `Generate referentially consistent synthetic data for a small rental
domain: people, addresses, jobs and the transactions linking them.

Features:
  - Deterministic generation from a seed
  - Locale aware names with optional uniqueness
  - Graceful shortfall when the data provider runs out of unique values
  - CSV export and batched, transactional loading into MySQL or SQLite
  - Tables created and filled in foreign key order (Kahn's algorithm)`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.Enable = false
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "godatagen.yaml",
		"Path to configuration file (defaults apply when the default file is missing)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Generation overrides
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Override random seed (0 picks one and reports it)")
	rootCmd.PersistentFlags().IntVar(&customers, "customers", 0,
		"Override number of people to generate")
	rootCmd.PersistentFlags().IntVar(&addresses, "addresses", 0,
		"Override number of addresses to generate")
	rootCmd.PersistentFlags().IntVar(&jobs, "jobs", 0,
		"Override number of jobs to generate")
	rootCmd.PersistentFlags().IntVar(&transactions, "transactions", 0,
		"Override number of transactions to generate")

	// Load overrides
	rootCmd.PersistentFlags().IntVar(&batchSize, "batch-size", 0,
		"Override rows per INSERT statement")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		Seed:         seed,
		Customers:    customers,
		Addresses:    addresses,
		Jobs:         jobs,
		Transactions: transactions,
		BatchSize:    batchSize,
		Verify:       loadVerify,
	}
}

// loadConfig reads the config file, applies CLI overrides and validates the
// result. A missing file is only an error when --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile := GetConfigFile()

	var cfg *config.Config
	var err error
	if cmd != nil && cmd.Flags().Changed("config") {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadOptional(configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Pin the seed so the run can be reproduced from its log
	if cfg.Generation.Seed == 0 {
		cfg.Generation.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// newRunLogger builds the configured logger tagged with a fresh run id.
func newRunLogger(cfg *config.Config) (*logger.Logger, string, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize logger: %w", err)
	}
	runID := uuid.NewString()
	return log.WithRun(runID), runID, nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godatagen/internal/database"
	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/export"
	"github.com/dbsmedya/godatagen/internal/loader"
	"github.com/dbsmedya/godatagen/internal/lock"
	"github.com/dbsmedya/godatagen/internal/verifier"
)

var (
	loadDrop   bool
	loadFrom   string
	loadVerify string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Generate a dataset and load it into the target database",
	Long: `Load creates the people, addresses, jobs and transactions tables in the
configured target database (MySQL or SQLite) and inserts a freshly generated
dataset, or a previously exported one with --from.

Tables are created in foreign key order and all rows are inserted in batches
within one transaction: either every row is committed or none is. Afterwards
the stored rows are checked against the dataset by row count (default), by
a SHA256 hash over every row, or not at all.

Tables are created with a plain CREATE TABLE, so loading into a target that
already holds them fails. Pass --drop to replace the existing tables.

On MySQL an advisory lock named godatagen:load:<database> keeps two loads
from writing the same database at once.

Example:
  godatagen load --config godatagen.yaml --drop
  godatagen load --from ./data --batch-size 1000 --verify sha256`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadDrop, "drop", false,
		"Drop existing tables before creating them")
	loadCmd.Flags().StringVar(&loadFrom, "from", "",
		"Load CSV files from this directory instead of generating")
	loadCmd.Flags().StringVar(&loadVerify, "verify", "",
		"Override verification method (count, sha256, skip)")

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if loadDrop {
		cfg.Load.DropExisting = true
	}

	log, runID, err := newRunLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	var ds *dataset.RentalDataset
	if loadFrom != "" {
		ds, err = export.ReadDataset(loadFrom)
		if err != nil {
			return fmt.Errorf("failed to read dataset: %w", err)
		}
		if err := ds.CheckReferences(); err != nil {
			return fmt.Errorf("dataset in %s is inconsistent: %w", loadFrom, err)
		}
		log.Infof("Read dataset from %s", loadFrom)
	} else {
		generated, report, err := generateDataset(cfg, log)
		if err != nil {
			return err
		}
		ds = generated
		for _, r := range report {
			if r.Short() {
				log.Warnf("Collection %s short of the requested size: %d of %d", r.Collection, r.Produced, r.Requested)
			}
		}
	}

	ctx, stop := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		log.Warnf("Received %s, cancelling load", sig)
	})
	defer stop()

	dbManager := database.NewManager(&cfg.Target)
	if err := dbManager.Connect(ctx); err != nil {
		return err
	}
	defer dbManager.Close()

	l, err := loader.New(dbManager.Target, loader.Options{
		Driver:                  cfg.Target.Driver,
		BatchSize:               cfg.Load.BatchSize,
		DropExisting:            cfg.Load.DropExisting,
		DisableForeignKeyChecks: cfg.Load.DisableForeignKeyChecks,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}

	v, err := verifier.New(dbManager.Target, l.Graph(), verifier.Method(cfg.Load.Verify), log)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}

	var stats *loader.Stats
	var verified *verifier.Stats
	run := func() error {
		var err error
		if stats, err = l.Load(ctx, ds); err != nil {
			if errors.Is(err, loader.ErrCreateTable) && !cfg.Load.DropExisting {
				return fmt.Errorf("load failed (tables may already exist, rerun with --drop to replace them): %w", err)
			}
			return fmt.Errorf("load failed: %w", err)
		}
		verified, err = v.Verify(ctx, ds)
		return err
	}

	if cfg.Target.Driver == database.DriverMySQL {
		loadLock := lock.NewLoadLock(dbManager.Target, cfg.Target.Database)
		log.Debugf("Acquiring advisory lock %s", loadLock.Name())
		err = loadLock.WithLock(ctx, cfg.Load.LockTimeout, run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	order, err := l.Graph().CreateOrder()
	if err != nil {
		return err
	}

	printHeader("Loaded Dataset")
	fmt.Fprintf(outputWriter, "  Run:    %s\n", runID)
	fmt.Fprintf(outputWriter, "  Target: %s\n", describeTarget(cfg.Target.Driver, cfg.Target.Path, cfg.Target.Host, cfg.Target.Database))
	if loadFrom == "" {
		fmt.Fprintf(outputWriter, "  Seed:   %d\n", cfg.Generation.Seed)
	}
	fmt.Fprintln(outputWriter)
	printLoadStats(stats, order)
	printVerifyStats(verified)
	return nil
}

// describeTarget names the target without credentials.
func describeTarget(driver, path, host, db string) string {
	if driver == database.DriverSQLite {
		return fmt.Sprintf("sqlite %s", path)
	}
	return fmt.Sprintf("mysql %s/%s", host, db)
}

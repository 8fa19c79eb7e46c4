package config

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Target.Driver != "sqlite" {
		t.Errorf("expected default driver 'sqlite', got %q", cfg.Target.Driver)
	}
	if cfg.Target.Path != "godatagen.db" {
		t.Errorf("expected default path 'godatagen.db', got %q", cfg.Target.Path)
	}
	if cfg.Target.Port != 3306 {
		t.Errorf("expected default port 3306, got %d", cfg.Target.Port)
	}
	if cfg.Target.TLS != "preferred" {
		t.Errorf("expected default tls 'preferred', got %q", cfg.Target.TLS)
	}

	gen := cfg.Generation
	if gen.Customers != 100 || gen.Addresses != 100 || gen.Jobs != 20 || gen.Transactions != 500 {
		t.Errorf("unexpected default counts: %+v", gen)
	}
	if gen.Locale != "en_US" {
		t.Errorf("expected default locale 'en_US', got %q", gen.Locale)
	}
	if gen.MaleRatio != 0.5 {
		t.Errorf("expected default male_ratio 0.5, got %v", gen.MaleRatio)
	}
	if gen.MinAge != 15 || gen.MaxAge != 100 {
		t.Errorf("expected default ages 15..100, got %d..%d", gen.MinAge, gen.MaxAge)
	}
	if gen.Seed != 0 {
		t.Errorf("expected default seed 0, got %d", gen.Seed)
	}
	if gen.UniqueNames {
		t.Error("expected unique_names to default to false")
	}

	if cfg.Load.BatchSize != 500 {
		t.Errorf("expected default batch_size 500, got %d", cfg.Load.BatchSize)
	}
	if cfg.Load.DropExisting {
		t.Error("expected drop_existing to default to false")
	}
	if cfg.Load.Verify != "count" {
		t.Errorf("expected default verify 'count', got %q", cfg.Load.Verify)
	}
	if cfg.Load.LockTimeout != 1 {
		t.Errorf("expected default lock_timeout 1, got %d", cfg.Load.LockTimeout)
	}
	if cfg.Export.Directory != "out" {
		t.Errorf("expected default export directory 'out', got %q", cfg.Export.Directory)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("expected default log output 'stderr', got %q", cfg.Logging.Output)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("expected default config to validate, got: %v", err)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{
		LogLevel:     "debug",
		LogFormat:    "json",
		Seed:         42,
		Customers:    7,
		Addresses:    8,
		Jobs:         9,
		Transactions: 10,
		BatchSize:    3,
		Verify:       "sha256",
	})

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging overrides not applied: %+v", cfg.Logging)
	}
	if cfg.Generation.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Generation.Seed)
	}
	if cfg.Generation.Customers != 7 || cfg.Generation.Addresses != 8 ||
		cfg.Generation.Jobs != 9 || cfg.Generation.Transactions != 10 {
		t.Errorf("count overrides not applied: %+v", cfg.Generation)
	}
	if cfg.Load.BatchSize != 3 {
		t.Errorf("expected batch_size 3, got %d", cfg.Load.BatchSize)
	}
	if cfg.Load.Verify != "sha256" {
		t.Errorf("expected verify sha256, got %q", cfg.Load.Verify)
	}
}

func TestApplyOverrides_ZeroValuesKeepConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides(Overrides{})

	if *cfg != *DefaultConfig() {
		t.Errorf("empty overrides changed the config: %+v", cfg)
	}
}

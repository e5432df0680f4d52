package config_test

import (
	"testing"
	"time"

	"github.com/yucheng-ou/kaleido-coin/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.InitialBalance != 100 {
		t.Fatalf("expected default initial balance 100, got %d", cfg.InitialBalance)
	}

	if cfg.InviteReward != 100 || cfg.LocationCost != 50 || cfg.OutfitCost != 80 {
		t.Fatalf("unexpected default coin amounts: %d/%d/%d", cfg.InviteReward, cfg.LocationCost, cfg.OutfitCost)
	}

	if cfg.AccountLockWait != 3*time.Second {
		t.Fatalf("expected default lock wait 3s, got %s", cfg.AccountLockWait)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("COIN_LOCATION_COST", "75")
	t.Setenv("BALANCE_CACHE_TTL", "90s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.LocationCost != 75 {
		t.Fatalf("expected location cost override, got %d", cfg.LocationCost)
	}

	if cfg.BalanceCacheTTL != 90*time.Second {
		t.Fatalf("expected balance cache TTL override, got %s", cfg.BalanceCacheTTL)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

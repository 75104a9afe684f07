package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_UsesAdminJWTSecretAlias(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "JWT_SECRET")
	setEnvWithCleanup(t, "ADMIN_JWT_SECRET", "alias-only-secret")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.JWTSecret != "alias-only-secret" {
		t.Fatalf("expected JWTSecret from alias env var, got %q", cfg.JWTSecret)
	}
}

func TestLoadConfig_JWTSecretTakesPrecedenceOverAlias(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "JWT_SECRET", "primary-secret")
	setEnvWithCleanup(t, "ADMIN_JWT_SECRET", "alias-secret")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.JWTSecret != "primary-secret" {
		t.Fatalf("expected JWTSecret to prioritize JWT_SECRET, got %q", cfg.JWTSecret)
	}
}

func TestLoadConfig_OpsToolsDisabledByDefault(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "ENABLE_OPS_TOOLS")
	unsetEnvWithCleanup(t, "ENABLE_RECONCILIATION")
	unsetEnvWithCleanup(t, "READ_ONLY_MODE")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.EnableOpsTools {
		t.Fatal("expected EnableOpsTools to default to false")
	}
	if cfg.EnableReconciliation {
		t.Fatal("expected EnableReconciliation to default to false")
	}
	if cfg.ReadOnlyMode {
		t.Fatal("expected ReadOnlyMode to default to false")
	}
}

func TestLoadConfig_NegativeOpsRateLimitCoercedToZero(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "OPS_RATE_LIMIT_PER_MINUTE", "-5")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.OpsRateLimitPerMinute != 0 {
		t.Fatalf("expected negative ops rate limit to be coerced to 0, got %d", cfg.OpsRateLimitPerMinute)
	}
}

func TestAllowedOriginList_SplitsAndTrims(t *testing.T) {
	cfg := Config{AllowedOrigins: "https://admin.eventra.io, http://localhost:5173 ,,"}

	origins := cfg.AllowedOriginList()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d: %v", len(origins), origins)
	}
	if origins[0] != "https://admin.eventra.io" || origins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "TLS_CERT", "TLS_KEY", "DATABASE_URL", "TOKEN_KEY", "RATE_LIMIT", "RATE_BURST", "STATIC_DIR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.RateLimit != 5 || cfg.RateBurst != 10 || cfg.TLS() {
		t.Errorf("cfg = %+v", cfg)
	}
	if string(cfg.TokenKey) != "secret" {
		t.Errorf("token key = %q", cfg.TokenKey)
	}
	if cfg.DatabaseURL != "user=postgres dbname=postgres password=password sslmode=disable" {
		t.Errorf("database url = %q", cfg.DatabaseURL)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "TOKEN_KEY=from-file\nADDR=:9000\nRATE_BURST=2\nTLS_CERT=c.pem\nTLS_KEY=k.pem\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		for _, k := range []string{"TOKEN_KEY", "ADDR", "RATE_BURST", "TLS_CERT", "TLS_KEY"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(cfg.TokenKey) != "from-file" || cfg.Addr != ":9000" || cfg.RateBurst != 2 || !cfg.TLS() {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRequiresTokenKey(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, ErrMissingTokenKey) {
		t.Errorf("err = %v, want ErrMissingTokenKey", err)
	}
}

func TestLoadBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("RATE_LIMIT", "fast")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for RATE_LIMIT")
	}
}

func TestDatabaseURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db/app":             "postgres://u:p@db/app?sslmode=require",
		"postgres://u:p@db/app?timezone=UTC": "postgres://u:p@db/app?timezone=UTC&sslmode=require",
		"host=db user=u":                     "host=db user=u sslmode=require",
		"host=db sslmode=disable":            "host=db sslmode=disable",
	}
	for in, want := range tests {
		if got := databaseURL(in); got != want {
			t.Errorf("databaseURL(%q) = %q, want %q", in, got, want)
		}
	}
}

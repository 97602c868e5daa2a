package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("GDYS_JWT_SECRET", "")

	_, err := Load("")
	if err == nil {
		t.Error("expected error when GDYS_JWT_SECRET is missing")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("GDYS_JWT_SECRET", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 8080 {
		t.Errorf("expected HTTPPort 8080, got %d", cfg.HTTPPort)
	}
	if cfg.StoreKind != StoreMemory {
		t.Errorf("expected store %s, got %s", StoreMemory, cfg.StoreKind)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected TokenTTL 24h, got %v", cfg.TokenTTL)
	}
	if cfg.UploadDir != "./uploads" {
		t.Errorf("expected UploadDir ./uploads, got %s", cfg.UploadDir)
	}
	if cfg.MaxUploadBytes != 50<<20 {
		t.Errorf("expected MaxUploadBytes %d, got %d", int64(50<<20), cfg.MaxUploadBytes)
	}
	if cfg.RateLimit != 20.0 {
		t.Errorf("expected RateLimit 20, got %v", cfg.RateLimit)
	}
}

func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("GDYS_JWT_SECRET", "test-secret")
	t.Setenv("GDYS_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load("")
	if err == nil {
		t.Error("expected error when DATABASE_URL is missing for postgres store")
	}
}

func TestLoad_InvalidStore(t *testing.T) {
	t.Setenv("GDYS_JWT_SECRET", "test-secret")
	t.Setenv("GDYS_STORE", "cassandra")

	_, err := Load("")
	if err == nil {
		t.Error("expected error for invalid store")
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("GDYS_JWT_SECRET", "test-secret")
	t.Setenv("GDYS_STORE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://custom/fleet")
	t.Setenv("PORT", "9999")
	t.Setenv("GDYS_TOKEN_TTL", "2h")
	t.Setenv("GDYS_RATE_LIMIT", "5")
	t.Setenv("GDYS_RATE_BURST", "10")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.StoreKind != StorePostgres {
		t.Errorf("expected store postgres, got %s", cfg.StoreKind)
	}
	if cfg.DatabaseURL != "postgres://custom/fleet" {
		t.Errorf("expected DatabaseURL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 9999 {
		t.Errorf("expected HTTPPort 9999, got %d", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected TokenTTL 2h, got %v", cfg.TokenTTL)
	}
	if cfg.RateLimit != 5 {
		t.Errorf("expected RateLimit 5, got %v", cfg.RateLimit)
	}
	if cfg.RateBurst != 10 {
		t.Errorf("expected RateBurst 10, got %d", cfg.RateBurst)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "gdys-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	configContent := `
jwt_secret: "file-secret"
http_port: 7777
upload_dir: "/var/lib/gdys/uploads"
`
	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	tmpFile.Close()

	t.Setenv("GDYS_JWT_SECRET", "")
	t.Setenv("PORT", "")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWTSecret != "file-secret" {
		t.Errorf("expected JWTSecret from config file, got %s", cfg.JWTSecret)
	}
	if cfg.HTTPPort != 7777 {
		t.Errorf("expected HTTPPort 7777, got %d", cfg.HTTPPort)
	}
	if cfg.UploadDir != "/var/lib/gdys/uploads" {
		t.Errorf("expected UploadDir from config file, got %s", cfg.UploadDir)
	}
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "gdys-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	configContent := `
jwt_secret: "file-secret"
http_port: 7777
`
	if _, err := tmpFile.WriteString(configContent); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	tmpFile.Close()

	t.Setenv("GDYS_JWT_SECRET", "env-secret")
	t.Setenv("PORT", "8888")

	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JWTSecret != "env-secret" {
		t.Errorf("expected JWTSecret from env, got %s", cfg.JWTSecret)
	}
	if cfg.HTTPPort != 8888 {
		t.Errorf("expected HTTPPort 8888 from env, got %d", cfg.HTTPPort)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	t.Setenv("GDYS_JWT_SECRET", "test-secret")

	_, err := Load("/nonexistent/path/to/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent config file")
	}
}

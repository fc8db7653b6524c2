package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("port = %q, want default 5000", cfg.Port)
	}
	if cfg.DatabaseName != "ilaDb" {
		t.Errorf("database = %q, want default ilaDb", cfg.DatabaseName)
	}
	if cfg.TokenTTL.Hours() != 1 {
		t.Errorf("token ttl = %v, want 1h", cfg.TokenTTL)
	}
}

func TestLoadMissingSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when ACCESS_TOKEN_SECRET is unset")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("PAYMENT_SECRET_KEY", "sk_test_123")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGIN", "https://ila.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.Origin != "https://ila.example.com" {
		t.Errorf("origin = %q, want override", cfg.Origin)
	}
}

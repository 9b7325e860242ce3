package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "")
	t.Setenv("JWT_EXPIRES_MIN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("FRONTEND_BASE_URL", "")

	cfg := Load()

	if cfg.AppPort != "5000" {
		t.Errorf("AppPort: got %s, want 5000", cfg.AppPort)
	}
	if cfg.JWTExpiresMin != 10080 {
		t.Errorf("JWTExpiresMin: got %d, want 10080", cfg.JWTExpiresMin)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr: got %s, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.FrontendBaseURL != "http://localhost:3000" {
		t.Errorf("FrontendBaseURL: got %s", cfg.FrontendBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_EXPIRES_MIN", "30")

	cfg := Load()

	if cfg.AppPort != "8080" {
		t.Errorf("AppPort: got %s, want 8080", cfg.AppPort)
	}
	if cfg.JWTExpiresMin != 30 {
		t.Errorf("JWTExpiresMin: got %d, want 30", cfg.JWTExpiresMin)
	}
}

func TestLoadPanicsOnMissingSecret(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "")

	defer func() {
		if recover() == nil {
			t.Fatal("Load did not panic on missing JWT_SECRET")
		}
	}()
	Load()
}

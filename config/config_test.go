package config

import (
	"os"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	// LoadEnv returns nil when no .env file exists
	err := LoadEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvAllSet(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DATABASE_URL", "test-db-url")
	defer os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvMissingJWTSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Setenv("DATABASE_URL", "test-db-url")
	defer os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing JWT_SECRET")
	}
}

func TestValidateEnvMissingDatabaseURL(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("JWT_SECRET")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing DATABASE_URL")
	}
}

func TestValidateEnvMissingBoth(t *testing.T) {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")

	err := ValidateEnv()
	if err == nil {
		t.Error("expected error for missing both")
	}
}

func TestGetEnvExisting(t *testing.T) {
	os.Setenv("TEST_GET_ENV_KEY", "test-value")
	defer os.Unsetenv("TEST_GET_ENV_KEY")

	result := GetEnv("TEST_GET_ENV_KEY", "default")
	if result != "test-value" {
		t.Errorf("expected 'test-value', got '%s'", result)
	}
}

func TestGetEnvMissing(t *testing.T) {
	os.Unsetenv("TEST_GET_ENV_MISSING")
	result := GetEnv("TEST_GET_ENV_MISSING", "fallback")
	if result != "fallback" {
		t.Errorf("expected 'fallback', got '%s'", result)
	}
}

func TestValidateEnvInvalidImageStore(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("DATABASE_URL", "test-db-url")
	os.Setenv("IMAGE_STORE", "s3")
	defer os.Unsetenv("JWT_SECRET")
	defer os.Unsetenv("DATABASE_URL")
	defer os.Unsetenv("IMAGE_STORE")

	if err := ValidateEnv(); err == nil {
		t.Error("expected error for unknown IMAGE_STORE")
	}
}

func TestGetEnvInt(t *testing.T) {
	os.Setenv("TEST_GET_ENV_INT", "42")
	defer os.Unsetenv("TEST_GET_ENV_INT")

	if got := GetEnvInt("TEST_GET_ENV_INT", 7); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	os.Setenv("TEST_GET_ENV_INT", "lots")
	if got := GetEnvInt("TEST_GET_ENV_INT", 7); got != 7 {
		t.Errorf("expected fallback 7 for non-numeric value, got %d", got)
	}

	os.Setenv("TEST_GET_ENV_INT", "-3")
	if got := GetEnvInt("TEST_GET_ENV_INT", 7); got != 7 {
		t.Errorf("expected fallback 7 for negative value, got %d", got)
	}
}

func TestIsProduction(t *testing.T) {
	os.Setenv("APP_ENV", "Production")
	defer os.Unsetenv("APP_ENV")
	if !IsProduction() {
		t.Error("expected production for APP_ENV=Production")
	}

	os.Setenv("APP_ENV", "development")
	if IsProduction() {
		t.Error("expected development for APP_ENV=development")
	}
}

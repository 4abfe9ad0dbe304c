package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func LoadEnv() error {
	// Try to load .env file if it exists (for local development)
	// On production, environment variables are set directly
	err := godotenv.Load()
	if err != nil {
		// .env file not found is not an error
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	// Critical variables - application cannot function without these
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if store := GetEnv("IMAGE_STORE", "inline"); store != "inline" && store != "firebase" {
		return fmt.Errorf("IMAGE_STORE must be 'inline' or 'firebase', got %q", store)
	}

	// Non-critical variables - log warnings but don't fail
	if os.Getenv("IMAGE_STORE") == "firebase" {
		if os.Getenv("FIREBASE_STORAGE_BUCKET") == "" {
			log.Println("WARNING: FIREBASE_STORAGE_BUCKET not set - image uploads will fail")
		}
		if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			log.Println("WARNING: GOOGLE_APPLICATION_CREDENTIALS not set - Firebase features may not work")
		}
	}
	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Println("WARNING: ADMIN_PASSWORD not set - a random admin password will be generated")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}
	if os.Getenv("ADMIN_URL") == "" {
		log.Println("WARNING: ADMIN_URL not set")
	}
	if os.Getenv("PUBLIC_BASE_URL") == "" {
		log.Println("WARNING: PUBLIC_BASE_URL not set - welcome emails will carry relative menu links")
	}
	if os.Getenv("SMTP_HOST") == "" || os.Getenv("SMTP_PORT") == "" || os.Getenv("SMTP_FROM") == "" {
		log.Println("WARNING: SMTP_HOST/SMTP_PORT/SMTP_FROM not set - email notifications will not work")
	}

	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt falls back to defaultValue when the variable is unset or not a positive integer.
func GetEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func IsProduction() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "production")
}

package database

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"menuhub-backend/config"
	"menuhub-backend/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// GormConfig is shared by every driver. TranslateError lets callers match
// gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated instead of driver codes.
func GormConfig() *gorm.Config {
	level := logger.Info
	if config.IsProduction() {
		level = logger.Error
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=menuhub port=5432 sslmode=disable"
	}

	if strings.HasPrefix(dsn, sqliteScheme) {
		return connectSQLite(strings.TrimPrefix(dsn, sqliteScheme))
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	log.Println("Database connection established (postgres)")
	return db, nil
}

// connectSQLite opens a local file database for development. Foreign keys are
// off by default in SQLite, so the pragma is required for cascades.
func connectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = "menuhub.db"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := gorm.Open(sqlite.Open(path+sep+"_pragma=foreign_keys(1)"), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Database connection established (sqlite: %s)", path)
	return db, nil
}

// Migrate creates the schema. Parents are listed before children so the
// cascade constraints can reference existing tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Category{},
		&models.MenuItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// CreateDefaultAdmin makes sure the platform admin exists. When ADMIN_PASSWORD
// is unset a random password is generated and logged once.
func CreateDefaultAdmin(db *gorm.DB) error {
	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" {
		adminEmail = "admin@menuhub.local"
	}

	var existingUser models.User
	result := db.Where("email = ?", adminEmail).First(&existingUser)
	if result.Error == nil {
		// Admin already exists
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	generated := false
	if adminPassword == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
		adminPassword = hex.EncodeToString(buf)
		generated = true
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleAdmin,
		Name:         "Platform Admin",
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if generated {
		log.Printf("Default admin created: %s (generated password: %s)", adminEmail, adminPassword)
	} else {
		log.Printf("Default admin created: %s", adminEmail)
	}
	return nil
}

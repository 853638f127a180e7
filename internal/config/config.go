package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/farmacia-chavarria/backend/internal/models"
)

type Config struct {
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET         string
	JWT_ISSUER         string
	JWT_AUDIENCE       string
	JWT_EXPIRE_MINUTES int

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_SENDER   string
	SMTP_PASSWORD string

	KAFKA_ADDRESS string
	LOG_LEVEL     string
	HTTP_PORT     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		DB_HOST:            os.Getenv("DB_HOST"),
		DB_PORT:            os.Getenv("DB_PORT"),
		DB_USER:            os.Getenv("DB_USER"),
		DB_PASSWORD:        os.Getenv("DB_PASSWORD"),
		DB_NAME:            os.Getenv("DB_NAME"),
		JWT_SECRET:         os.Getenv("JWT_SECRET"),
		JWT_ISSUER:         os.Getenv("JWT_ISSUER"),
		JWT_AUDIENCE:       os.Getenv("JWT_AUDIENCE"),
		JWT_EXPIRE_MINUTES: intEnv("JWT_EXPIRE_MINUTES", 60),
		SMTP_HOST:          os.Getenv("SMTP_HOST"),
		SMTP_PORT:          intEnv("SMTP_PORT", 587),
		SMTP_SENDER:        os.Getenv("SMTP_SENDER"),
		SMTP_PASSWORD:      os.Getenv("SMTP_PASSWORD"),
		KAFKA_ADDRESS:      os.Getenv("KAFKA_ADDRESS"),
		LOG_LEVEL:          os.Getenv("LOG_LEVEL"),
		HTTP_PORT:          os.Getenv("HTTP_PORT"),
	}

	return config, nil
}

func intEnv(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func InitDB() (*gorm.DB, error) {
	configuration, _ := LoadConfig()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER,
		configuration.DB_PASSWORD,
		configuration.DB_HOST,
		configuration.DB_PORT,
		configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("cannot run migrations: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Laboratory{},
		&models.Supplier{},
		&models.Product{},
		&models.ExpiringProduct{},
		&models.Invoice{},
		&models.InvoiceLine{},
		&models.Purchase{},
		&models.PurchaseLine{},
		&models.InventoryMovement{},
		&models.User{},
	)
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Env                   string
	Port                  string
	StorageDriver         string
	DatabaseURL           string
	CORSAllowOrigins      string
	ChromePath            string
	GoogleCredentialsPath string
	GoogleCredentialsJSON string
	InvoiceDriveFolderID  string
	ReceiptWidthPx        int
}

// LoadEnv loads .env outside production. Values in .env override the
// process environment.
func LoadEnv(path string) {
	if os.Getenv("ENV") == "production" {
		return
	}
	if err := godotenv.Overload(path); err != nil {
		log.Printf("Warning: .env file not found at %s, using system environment variables", path)
		return
	}
	log.Printf("Successfully loaded environment variables from %s (overriding system variables)", path)
}

// Load builds a Config from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Env:                   getEnv("ENV", "development"),
		Port:                  strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		StorageDriver:         strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),
		CORSAllowOrigins:      getEnv("CORS_ALLOW_ORIGINS", "*"),
		ChromePath:            os.Getenv("CHROME_PATH"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
		InvoiceDriveFolderID:  os.Getenv("INVOICE_DRIVE_FOLDER_ID"),
	}

	width, err := strconv.Atoi(getEnv("RECEIPT_WIDTH_PX", "576"))
	if err != nil || width <= 0 {
		return nil, fmt.Errorf("invalid RECEIPT_WIDTH_PX: %q", os.Getenv("RECEIPT_WIDTH_PX"))
	}
	cfg.ReceiptWidthPx = width

	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		url, err := DatabaseURL()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = url
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q, expected %q or %q", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

// DatabaseURL returns DATABASE_URL or builds a DSN from the DB_* variables
func DatabaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		getEnv("DB_PORT", "5432"),
		user,
		os.Getenv("DB_PASSWORD"),
		dbname,
		getEnv("DB_SSLMODE", "disable"),
	), nil
}

// ArchiveEnabled reports whether invoice archiving to Drive is configured
func (c *Config) ArchiveEnabled() bool {
	return c.InvoiceDriveFolderID != "" && (c.GoogleCredentialsPath != "" || c.GoogleCredentialsJSON != "")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

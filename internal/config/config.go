package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Matrix    MatrixConfig
	Security  SecurityConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection     string
	ConnectTimeout time.Duration
}

type MatrixConfig struct {
	CatalogPath         string
	ToggleStateFilePath string
	BoundaryColumn      string // last underglaze column honoured by CSV reconciliation, empty = all
	ReconcilePreviewTTL time.Duration
}

type SecurityConfig struct {
	AdminJwtSecret string // empty leaves write endpoints open
}

type TelemetryConfig struct {
	Enabled      bool
	OtlpEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection:     getEnv("DB_CONNECTION_STRING", ""),
			ConnectTimeout: time.Duration(getEnvAsInt("DB_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Matrix: MatrixConfig{
			CatalogPath:         getEnv("CATALOG_PATH", "colors.json"),
			ToggleStateFilePath: getEnv("TOGGLE_STATE_FILE_PATH", "toggle-states.json"),
			BoundaryColumn:      getEnv("MATRIX_BOUNDARY_COLUMN", ""),
			ReconcilePreviewTTL: time.Duration(getEnvAsInt("RECONCILE_PREVIEW_TTL_MINUTES", 60)) * time.Minute,
		},
		Security: SecurityConfig{
			AdminJwtSecret: getEnv("ADMIN_JWT_SECRET", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OtlpEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

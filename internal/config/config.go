package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Invoice InvoiceConfig
	Import  ImportConfig
	Queue   QueueConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for rendered invoice PDFs.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// InvoiceConfig holds invoicing defaults applied at the import boundary.
type InvoiceConfig struct {
	// DefaultGSTRate is used only when an imported row and the product
	// catalogue both lack a GST rate.
	DefaultGSTRate   decimal.Decimal `mapstructure:"default_gst_rate"`
	PricesIncludeTax bool            `mapstructure:"prices_include_tax"`
	NumberTemplate   string          `mapstructure:"number_template"`
	DefaultUnit      string          `mapstructure:"default_unit"`
	Currency         string          `mapstructure:"currency"`
}

// ImportConfig holds storefront import limits.
type ImportConfig struct {
	MaxRows       int   `mapstructure:"max_rows"`
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// QueueConfig holds settings for the worker that drafts invoices for
// imported orders.
type QueueConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	PollIntervalSecs int  `mapstructure:"poll_interval_secs"`
	Concurrency      int  `mapstructure:"concurrency"`
	LeaseSecs        int  `mapstructure:"lease_secs"`
}

// Load reads configuration from environment variables with the GSTINV_
// prefix. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GSTINV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "20s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstinvoice")
	v.SetDefault("db.password", "gstinvoice_secret")
	v.SetDefault("db.name", "gstinvoice_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "invoices@example.com")
	v.SetDefault("email.from_name", "Invoices")

	// Invoice defaults
	v.SetDefault("invoice.default_gst_rate", "18")
	v.SetDefault("invoice.prices_include_tax", false)
	v.SetDefault("invoice.number_template", "{PREFIX}/{FY}/{SEQ4}")
	v.SetDefault("invoice.default_unit", "UNT")
	v.SetDefault("invoice.currency", "INR")

	// Import defaults
	v.SetDefault("import.max_rows", 5000)
	v.SetDefault("import.max_file_size_mb", 10)

	// Queue defaults
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.lease_secs", 300)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "GSTINV_SERVER_PORT",
		"server.read_timeout":        "GSTINV_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "GSTINV_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout":    "GSTINV_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":         "GSTINV_SERVER_ENVIRONMENT",
		"db.host":                    "GSTINV_DB_HOST",
		"db.port":                    "GSTINV_DB_PORT",
		"db.user":                    "GSTINV_DB_USER",
		"db.password":                "GSTINV_DB_PASSWORD",
		"db.name":                    "GSTINV_DB_NAME",
		"db.sslmode":                 "GSTINV_DB_SSLMODE",
		"db.max_open":                "GSTINV_DB_MAX_OPEN",
		"db.max_idle":                "GSTINV_DB_MAX_IDLE",
		"s3.region":                  "GSTINV_S3_REGION",
		"s3.bucket":                  "GSTINV_S3_BUCKET",
		"s3.endpoint":                "GSTINV_S3_ENDPOINT",
		"s3.access_key":              "GSTINV_S3_ACCESS_KEY",
		"s3.secret_key":              "GSTINV_S3_SECRET_KEY",
		"s3.presign_expiry":          "GSTINV_S3_PRESIGN_EXPIRY",
		"log.level":                  "GSTINV_LOG_LEVEL",
		"log.format":                 "GSTINV_LOG_FORMAT",
		"cors.allowed_origins":       "GSTINV_CORS_ALLOWED_ORIGINS",
		"email.provider":             "GSTINV_EMAIL_PROVIDER",
		"email.region":               "GSTINV_EMAIL_REGION",
		"email.from_address":         "GSTINV_EMAIL_FROM_ADDRESS",
		"email.from_name":            "GSTINV_EMAIL_FROM_NAME",
		"invoice.default_gst_rate":   "GSTINV_INVOICE_DEFAULT_GST_RATE",
		"invoice.prices_include_tax": "GSTINV_INVOICE_PRICES_INCLUDE_TAX",
		"invoice.number_template":    "GSTINV_INVOICE_NUMBER_TEMPLATE",
		"invoice.default_unit":       "GSTINV_INVOICE_DEFAULT_UNIT",
		"invoice.currency":           "GSTINV_INVOICE_CURRENCY",
		"import.max_rows":            "GSTINV_IMPORT_MAX_ROWS",
		"import.max_file_size_mb":    "GSTINV_IMPORT_MAX_FILE_SIZE_MB",
		"queue.enabled":              "GSTINV_QUEUE_ENABLED",
		"queue.poll_interval_secs":   "GSTINV_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":          "GSTINV_QUEUE_CONCURRENCY",
		"queue.lease_secs":           "GSTINV_QUEUE_LEASE_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTINV_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTINV_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	defaultRate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("invoice.default_gst_rate")))
	if err != nil {
		return nil, fmt.Errorf("invalid invoice.default_gst_rate: %w", err)
	}
	if defaultRate.IsNegative() {
		return nil, fmt.Errorf("invalid invoice.default_gst_rate: %s is negative", defaultRate)
	}
	cfg.Invoice = InvoiceConfig{
		DefaultGSTRate:   defaultRate,
		PricesIncludeTax: v.GetBool("invoice.prices_include_tax"),
		NumberTemplate:   v.GetString("invoice.number_template"),
		DefaultUnit:      v.GetString("invoice.default_unit"),
		Currency:         v.GetString("invoice.currency"),
	}

	cfg.Import = ImportConfig{
		MaxRows:       v.GetInt("import.max_rows"),
		MaxFileSizeMB: v.GetInt64("import.max_file_size_mb"),
	}

	cfg.Queue = QueueConfig{
		Enabled:          v.GetBool("queue.enabled"),
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
		LeaseSecs:        v.GetInt("queue.lease_secs"),
	}

	return cfg, nil
}

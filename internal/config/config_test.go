package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstinvoice/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "18", cfg.Invoice.DefaultGSTRate.String())
	assert.False(t, cfg.Invoice.PricesIncludeTax)
	assert.Equal(t, "{PREFIX}/{FY}/{SEQ4}", cfg.Invoice.NumberTemplate)
	assert.Equal(t, 5000, cfg.Import.MaxRows)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Len(t, cfg.CORS.AllowedOrigins, 3)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GSTINV_INVOICE_DEFAULT_GST_RATE", "12")
	t.Setenv("GSTINV_INVOICE_PRICES_INCLUDE_TAX", "true")
	t.Setenv("GSTINV_DB_PORT", "6543")
	t.Setenv("GSTINV_CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "12", cfg.Invoice.DefaultGSTRate.String())
	assert.True(t, cfg.Invoice.PricesIncludeTax)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoad_InvalidDefaultRate(t *testing.T) {
	t.Setenv("GSTINV_INVOICE_DEFAULT_GST_RATE", "eighteen")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("GSTINV_INVOICE_DEFAULT_GST_RATE", "-5")
	_, err = config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", db.DSN())
}

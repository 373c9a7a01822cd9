package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SHEETSTOCK_APP_NAME":           os.Getenv("SHEETSTOCK_APP_NAME"),
		"SHEETSTOCK_APP_ENV":            os.Getenv("SHEETSTOCK_APP_ENV"),
		"SHEETSTOCK_APP_PORT":           os.Getenv("SHEETSTOCK_APP_PORT"),
		"SHEETSTOCK_WORKBOOK_PATH":      os.Getenv("SHEETSTOCK_WORKBOOK_PATH"),
		"SHEETSTOCK_STORAGE_BUCKET":     os.Getenv("SHEETSTOCK_STORAGE_BUCKET"),
		"SHEETSTOCK_STORAGE_ACCESS_KEY": os.Getenv("SHEETSTOCK_STORAGE_ACCESS_KEY"),
		"SHEETSTOCK_STORAGE_SECRET_KEY": os.Getenv("SHEETSTOCK_STORAGE_SECRET_KEY"),
		"SHEETSTOCK_MAIL_HOST":          os.Getenv("SHEETSTOCK_MAIL_HOST"),
		"SHEETSTOCK_MAIL_FROM":          os.Getenv("SHEETSTOCK_MAIL_FROM"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "sheetstock-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "sheetstock.xlsx", cfg.Workbook.Path)
		assert.Equal(t, "Materials", cfg.Workbook.MaterialsTable)
		assert.Equal(t, "Stock", cfg.Workbook.SummaryTable)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.False(t, cfg.Storage.Enabled())
		assert.False(t, cfg.Mail.Enabled())
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHEETSTOCK_APP_PORT", "9090")
		os.Setenv("SHEETSTOCK_WORKBOOK_PATH", "/data/book.xlsx")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, "/data/book.xlsx", cfg.Workbook.Path)
	})

	t.Run("production defaults to json logs", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHEETSTOCK_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("storage bucket without credentials fails validation", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHEETSTOCK_STORAGE_BUCKET", "documents")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.access_key")
	})

	t.Run("storage fully configured is enabled", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHEETSTOCK_STORAGE_BUCKET", "documents")
		os.Setenv("SHEETSTOCK_STORAGE_ACCESS_KEY", "ak")
		os.Setenv("SHEETSTOCK_STORAGE_SECRET_KEY", "sk")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Storage.Enabled())
	})

	t.Run("mail enabled when host and from are set", func(t *testing.T) {
		clearEnv()
		os.Setenv("SHEETSTOCK_MAIL_HOST", "smtp.example.com")
		os.Setenv("SHEETSTOCK_MAIL_FROM", "noreply@example.com")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Mail.Enabled())
		assert.Equal(t, 587, cfg.Mail.Port)
	})
}

func TestWorkbookConfig_Tables(t *testing.T) {
	w := WorkbookConfig{
		MaterialsTable:   "Materials",
		PurchasesTable:   "Purchases",
		SalesTable:       "Sales",
		AdjustmentsTable: "Adjustments",
		SummaryTable:     "Stock",
	}

	assert.Equal(t, []string{"Materials", "Purchases", "Sales", "Adjustments", "Stock"}, w.Tables())
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	HTTP     HTTPConfig
	Workbook WorkbookConfig
	Storage  StorageConfig
	Mail     MailConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// WorkbookConfig locates the workbook file and names its sheets. The
// workbook is the system of record: every table lives in one sheet.
type WorkbookConfig struct {
	Path             string
	MaterialsTable   string
	PurchasesTable   string
	SalesTable       string
	AdjustmentsTable string
	SummaryTable     string
}

// Tables returns the full list of sheet names, used to bootstrap the workbook.
func (w *WorkbookConfig) Tables() []string {
	return []string{
		w.MaterialsTable,
		w.PurchasesTable,
		w.SalesTable,
		w.AdjustmentsTable,
		w.SummaryTable,
	}
}

// StorageConfig holds object storage settings for order documents. An empty
// bucket disables document storage (the stub implementation is used).
type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	UseSSL        bool
	UsePathStyle  bool
	PresignExpiry time.Duration
}

// Enabled reports whether object storage is configured.
func (s *StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

// MailConfig holds SMTP settings for notifications. Disabled unless a host
// is configured.
type MailConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	ReportRecipients []string
}

// Enabled reports whether mail delivery is configured.
func (m *MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with SHEETSTOCK_ prefix (e.g., SHEETSTOCK_WORKBOOK_PATH)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("SHEETSTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Workbook: WorkbookConfig{
			Path:             v.GetString("workbook.path"),
			MaterialsTable:   v.GetString("workbook.materials_table"),
			PurchasesTable:   v.GetString("workbook.purchases_table"),
			SalesTable:       v.GetString("workbook.sales_table"),
			AdjustmentsTable: v.GetString("workbook.adjustments_table"),
			SummaryTable:     v.GetString("workbook.summary_table"),
		},
		Storage: StorageConfig{
			Endpoint:      v.GetString("storage.endpoint"),
			Region:        v.GetString("storage.region"),
			Bucket:        v.GetString("storage.bucket"),
			AccessKey:     v.GetString("storage.access_key"),
			SecretKey:     v.GetString("storage.secret_key"),
			UseSSL:        v.GetBool("storage.use_ssl"),
			UsePathStyle:  v.GetBool("storage.use_path_style"),
			PresignExpiry: v.GetDuration("storage.presign_expiry"),
		},
		Mail: MailConfig{
			Host:             v.GetString("mail.host"),
			Port:             v.GetInt("mail.port"),
			Username:         v.GetString("mail.username"),
			Password:         v.GetString("mail.password"),
			From:             v.GetString("mail.from"),
			ReportRecipients: v.GetStringSlice("mail.report_recipients"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sheetstock-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1 MiB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10 MiB
	}
	if cfg.Workbook.Path == "" {
		cfg.Workbook.Path = "sheetstock.xlsx"
	}
	if cfg.Workbook.MaterialsTable == "" {
		cfg.Workbook.MaterialsTable = "Materials"
	}
	if cfg.Workbook.PurchasesTable == "" {
		cfg.Workbook.PurchasesTable = "Purchases"
	}
	if cfg.Workbook.SalesTable == "" {
		cfg.Workbook.SalesTable = "Sales"
	}
	if cfg.Workbook.AdjustmentsTable == "" {
		cfg.Workbook.AdjustmentsTable = "Adjustments"
	}
	if cfg.Workbook.SummaryTable == "" {
		cfg.Workbook.SummaryTable = "Stock"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignExpiry == 0 {
		cfg.Storage.PresignExpiry = 15 * time.Minute
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	seen := make(map[string]bool)
	for _, table := range c.Workbook.Tables() {
		if seen[table] {
			return fmt.Errorf("workbook sheet name %q is used by more than one table", table)
		}
		seen[table] = true
	}

	if c.Storage.Enabled() {
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage.access_key and storage.secret_key are required when storage.bucket is set")
		}
	}

	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Mail.Enabled() && c.Mail.Password == "" && c.Mail.Username != "" {
			return fmt.Errorf("mail.password is required in production when mail.username is set")
		}
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Fetch   FetchConfig   `yaml:"fetch" mapstructure:"fetch"`
	OCR     OCRConfig     `yaml:"ocr" mapstructure:"ocr"`
	Sheet   SheetConfig   `yaml:"sheet" mapstructure:"sheet"`
	Google  GoogleConfig  `yaml:"google" mapstructure:"google"`
	Notify  NotifyConfig  `yaml:"notify" mapstructure:"notify"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// SourcesConfig holds the CME daily bulletin report URLs.
type SourcesConfig struct {
	Section73URL string `yaml:"section73_url" mapstructure:"section73_url"`
	SwapsURL     string `yaml:"swaps_url" mapstructure:"swaps_url"`
}

// FetchConfig configures report downloads.
type FetchConfig struct {
	TempDir     string `yaml:"temp_dir" mapstructure:"temp_dir"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// OCRConfig configures PDF text extraction.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	PdfToTextPath string `yaml:"pdftotext_path" mapstructure:"pdftotext_path"`
	MistralKey    string `yaml:"mistral_api_key" mapstructure:"mistral_api_key"`
	MistralModel  string `yaml:"mistral_ocr_model" mapstructure:"mistral_ocr_model"`
}

// SheetConfig holds the tracking spreadsheet target and column labels.
type SheetConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	HeaderDate      string `yaml:"header_date" mapstructure:"header_date"`
	HeaderSection73 string `yaml:"header_section73" mapstructure:"header_section73"`
	HeaderSwaps     string `yaml:"header_swaps" mapstructure:"header_swaps"`
}

// Header returns the three column labels in sheet order.
func (s SheetConfig) Header() []string {
	return []string{s.HeaderDate, s.HeaderSection73, s.HeaderSwaps}
}

// GoogleConfig holds Google OAuth credentials for the Sheets API.
type GoogleConfig struct {
	RefreshToken string `yaml:"refresh_token" mapstructure:"refresh_token"`
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	TokensFile   string `yaml:"tokens_file" mapstructure:"tokens_file"`
}

// NotifyConfig configures failure push notifications.
type NotifyConfig struct {
	TopicURL string `yaml:"topic_url" mapstructure:"topic_url"`
	Email    string `yaml:"email" mapstructure:"email"`
	Priority string `yaml:"priority" mapstructure:"priority"`
}

// ServerConfig configures the trigger server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy variable names honored alongside the prefixed forms.
	_ = v.BindEnv("sheet.spreadsheet_id", "CME_SHEET_SPREADSHEET_ID", "CME_SPREADSHEET_ID")
	_ = v.BindEnv("google.refresh_token", "CME_GOOGLE_REFRESH_TOKEN", "GOOGLE_REFRESH_TOKEN")
	_ = v.BindEnv("google.client_id", "CME_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID")
	_ = v.BindEnv("google.client_secret", "CME_GOOGLE_CLIENT_SECRET", "GOOGLE_CLIENT_SECRET")
	_ = v.BindEnv("ocr.mistral_api_key", "CME_OCR_MISTRAL_API_KEY", "MISTRAL_API_KEY")

	// Defaults
	v.SetDefault("sources.section73_url", "https://www.cmegroup.com/daily_bulletin/current/Section73_Event_Contracts.pdf")
	v.SetDefault("sources.swaps_url", "https://www.cmegroup.com/daily_bulletin/preliminary_voi/Event_Contracts_Swap_based.pdf")
	v.SetDefault("fetch.temp_dir", filepath.Join(os.TempDir(), "cme-pdfs"))
	v.SetDefault("fetch.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("ocr.provider", "local")
	v.SetDefault("ocr.pdftotext_path", "pdftotext")
	v.SetDefault("ocr.mistral_ocr_model", "pixtral-large-latest")
	v.SetDefault("sheet.header_date", "Date")
	v.SetDefault("sheet.header_section73", "Event Contracts (PG 73)")
	v.SetDefault("sheet.header_swaps", "Event Contracts (Swaps)")
	v.SetDefault("google.tokens_file", defaultTokensFile())
	v.SetDefault("notify.topic_url", "https://ntfy.sh/cme-event-contracts-alerts")
	v.SetDefault("notify.email", "")
	v.SetDefault("notify.priority", "high")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

func defaultTokensFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".google_tokens.json"
	}
	return filepath.Join(home, ".google_tokens.json")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

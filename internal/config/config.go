package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	Sheets   SheetsConfig
	Mongo    MongoConfig
	WhatsApp WhatsAppConfig
	Company  CompanyConfig
	Summary  SummaryConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SheetsConfig contains configuration required to reach the Google
// spreadsheet holding the product catalog and the quotation table.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// MongoConfig holds settings for the MongoDB document archive.
type MongoConfig struct {
	URI    string
	DBName string
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API used
// for outbound notifications. Leaving AccessToken empty disables the channel.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	RecipientID   string
	BaseURL       string
	APIVersion    string
}

// CompanyConfig carries the issuer identity printed on every quotation PDF.
type CompanyConfig struct {
	Name    string
	TaxID   string
	Address string
}

// SummaryConfig holds the schedule of the weekly pipeline summary.
type SummaryConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		},
		Mongo: MongoConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "orcamentos"),
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			RecipientID:   os.Getenv("WHATSAPP_RECIPIENT_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
		},
		Company: CompanyConfig{
			Name:    getenvWithDefault("COMPANY_NAME", "RR INOX INDUSTRIA E COMERCIO LTDA"),
			TaxID:   getenvWithDefault("COMPANY_TAX_ID", "26.137.275/0001-65"),
			Address: getenvWithDefault("COMPANY_ADDRESS", "Avenida Betania, 900 - Jardim Betania - Sorocaba/SP - CEP 18071-590"),
		},
		Summary: SummaryConfig{
			CronSchedule: getenvWithDefault("SUMMARY_CRON_SCHEDULE", "0 8 * * 1"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. Every
// missing key is reported in a single error so operators can fix the whole
// environment in one pass.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	var missing []string

	if c.Sheets.CredentialsPath == "" {
		missing = append(missing, "GOOGLE_SHEETS_CREDENTIALS_PATH")
	}
	if c.Sheets.SpreadsheetID == "" {
		missing = append(missing, "GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if c.Mongo.URI == "" {
		missing = append(missing, "MONGODB_URI")
	}
	if c.Mongo.DBName == "" {
		missing = append(missing, "MONGODB_DB_NAME")
	}

	// WhatsApp is an optional channel, but a partially configured one is an
	// operator mistake rather than an intentional opt-out.
	if c.WhatsApp.AccessToken != "" {
		if c.WhatsApp.PhoneNumberID == "" {
			missing = append(missing, "WHATSAPP_PHONE_NUMBER_ID")
		}
		if c.WhatsApp.RecipientID == "" {
			missing = append(missing, "WHATSAPP_RECIPIENT_ID")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must not be empty")
	}
	if c.Summary.CronSchedule == "" {
		return errors.New("SUMMARY_CRON_SCHEDULE must not be empty")
	}

	return nil
}

// NotificationsEnabled reports whether outbound WhatsApp messages can be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.WhatsApp.AccessToken != "" && c.WhatsApp.PhoneNumberID != "" && c.WhatsApp.RecipientID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

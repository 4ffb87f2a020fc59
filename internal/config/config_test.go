package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEETS_SPREADSHEET_ID",
		"MONGODB_URI", "MONGODB_DB_NAME",
		"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_RECIPIENT_ID",
		"COMPANY_NAME", "SUMMARY_CRON_SCHEDULE",
	} {
		t.Setenv(key, "")
	}
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/secrets/sa.json")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
}

func TestLoadReportsEveryMissingKey(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)

	// All missing required keys are listed together.
	assert.Contains(t, err.Error(), "GOOGLE_SHEETS_CREDENTIALS_PATH")
	assert.Contains(t, err.Error(), "GOOGLE_SHEETS_SPREADSHEET_ID")
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "orcamentos", cfg.Mongo.DBName)
	assert.Equal(t, "0 8 * * 1", cfg.Summary.CronSchedule)
	assert.Equal(t, "RR INOX INDUSTRIA E COMERCIO LTDA", cfg.Company.Name)
	assert.False(t, cfg.NotificationsEnabled())
}

func TestLoadRejectsPartialWhatsAppConfig(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "token")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WHATSAPP_PHONE_NUMBER_ID")
	assert.Contains(t, err.Error(), "WHATSAPP_RECIPIENT_ID")
}

func TestLoadWithFullWhatsAppConfig(t *testing.T) {
	clearEnv(t)
	setRequiredEnv(t)
	t.Setenv("WHATSAPP_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")
	t.Setenv("WHATSAPP_RECIPIENT_ID", "456")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.NotificationsEnabled())
	assert.Equal(t, "https://graph.facebook.com", cfg.WhatsApp.BaseURL)
}

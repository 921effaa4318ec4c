package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "DATABASE_URL", "ITEM_PRICE", "REFERRAL_FEE", "WEBHOOK_VERIFY"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.AppEnv)
	require.False(t, cfg.UsesPostgres())
	require.Equal(t, "solidario.db", cfg.DatabaseDSN())
	require.Equal(t, DefaultItemPrice, cfg.ItemPrice)
	require.Equal(t, DefaultReferralFee, cfg.ReferralFee)
	require.True(t, cfg.WebhookVerify)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ITEM_PRICE", "1234.5")
	t.Setenv("WEBHOOK_VERIFY", "false")
	t.Setenv("SMTP_USER", "cuenta@example.com")
	t.Setenv("MAIL_FROM", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 1234.5, cfg.ItemPrice)
	require.False(t, cfg.WebhookVerify)
	require.Equal(t, "cuenta@example.com", cfg.MailFrom, "MAIL_FROM defaults to SMTP_USER")
}

func TestLoadConfigInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ITEM_PRICE", "gratis")
	t.Setenv("SMTP_PORT", "-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultItemPrice, cfg.ItemPrice)
	require.Equal(t, 587, cfg.SMTPPort)
}

func TestDatabaseDSNProductionTLS(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "production postgres without sslmode gets sslmode=require",
			cfg:  Config{AppEnv: "production", DatabaseURL: "postgres://u:p@host/db"},
			want: "postgres://u:p@host/db?sslmode=require",
		},
		{
			name: "production postgres with query params appends",
			cfg:  Config{AppEnv: "production", DatabaseURL: "postgres://u:p@host/db?application_name=pagos"},
			want: "postgres://u:p@host/db?application_name=pagos&sslmode=require",
		},
		{
			name: "explicit sslmode is left alone",
			cfg:  Config{AppEnv: "production", DatabaseURL: "postgres://u:p@host/db?sslmode=disable"},
			want: "postgres://u:p@host/db?sslmode=disable",
		},
		{
			name: "development DSN is untouched",
			cfg:  Config{AppEnv: "development", DatabaseURL: "postgres://u:p@host/db"},
			want: "postgres://u:p@host/db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.cfg.DatabaseDSN())
		})
	}
}

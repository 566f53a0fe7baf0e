package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8083", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "finanzas.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:8081", cfg.Ledger.BaseURL)
	assert.Equal(t, 3, cfg.Ledger.MaxAttempts)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("server.addr", ":9000")
	viper.Set("ledger.base_url", "http://ledger.internal:8081")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "http://ledger.internal:8081", cfg.Ledger.BaseURL)
}

func TestLoadRequiresLedgerURL(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("ledger.base_url", "")

	_, err := Load()
	assert.Error(t, err)
}

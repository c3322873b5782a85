package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8050", cfg.Addr)
	assert.Equal(t, BackendDirectory, cfg.Backend)
	assert.Equal(t, "data/exports", cfg.DataDir)
	assert.Equal(t, 100, cfg.TopAccounts)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RECORDS_BACKEND", BackendClickHouse)
	t.Setenv("CLICKHOUSE_TABLE", "tx_records")
	t.Setenv("TOP_ACCOUNTS", "50")

	cfg := Load()
	assert.Equal(t, BackendClickHouse, cfg.Backend)
	assert.Equal(t, "tx_records", cfg.ClickHouseTable)
	assert.Equal(t, 50, cfg.TopAccounts)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "Unknown backend", mutate: func(c *Config) { c.Backend = "postgres" }, wantErr: "invalid records backend"},
		{name: "Non-positive top accounts", mutate: func(c *Config) { c.TopAccounts = 0 }, wantErr: "top accounts"},
		{name: "Empty address", mutate: func(c *Config) { c.Addr = "" }, wantErr: "address"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

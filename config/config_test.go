package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("UPBIT_ACCESS_KEY", "uk")
	t.Setenv("UPBIT_SECRET_KEY", "us")
	t.Setenv("KORBIT_ACCESS_KEY", "kk")
	t.Setenv("KORBIT_SECRET_KEY", "ks")

	cfg, err := Load("", zap.NewNop())
	require.NoError(t, err)

	require.Equal(t, "uk", cfg.Upbit.Key)
	require.Equal(t, "us", cfg.Upbit.Secret)
	require.False(t, cfg.Upbit.Empty())
	require.False(t, cfg.Korbit.Empty())
	require.True(t, cfg.Bithumb.Empty())
	require.Equal(t, []string{"P", "ETHW", "ETHF"}, cfg.ExcludedCurrencies)
}

func TestLoadHoldingsFromEnv(t *testing.T) {
	t.Setenv("CRYPTO_BTC", "1.001830")
	t.Setenv("CRYPTO_SOL", "123.852")
	t.Setenv("CRYPTO_BROKEN", "not-a-number")

	cfg, err := Load("", zap.NewNop())
	require.NoError(t, err)

	require.Len(t, cfg.Holdings, 2, "invalid amounts are skipped with a warning")
	require.Equal(t, "BTC", cfg.Holdings[0].Symbol)
	require.True(t, cfg.Holdings[0].Amount.Equal(decimal.RequireFromString("1.001830")))
	require.Equal(t, "SOL", cfg.Holdings[1].Symbol)
}

func TestLoadYamlOverridesExclusions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("excluded_currencies: [ETHW, STAKEPT]\n"), 0o600))

	cfg, err := Load(path, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, []string{"ETHW", "STAKEPT"}, cfg.ExcludedCurrencies)
}

func TestLoadMissingYamlFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())
	require.Error(t, err)
}

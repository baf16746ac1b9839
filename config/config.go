// Package config resolves exchange credentials, external holdings and
// report settings. Core services never read the environment themselves;
// they receive the already-resolved values from here.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hanjoon/cexfolio/internal/domain"
)

// Config carries everything the binaries need to wire the services.
type Config struct {
	Upbit   domain.Credentials
	Bithumb domain.Credentials
	Coinone domain.Credentials
	Korbit  domain.Credentials

	// ExcludedCurrencies are hidden from nonzero-balance reports: fork
	// leftovers and point tokens no price source covers.
	ExcludedCurrencies []string

	// Holdings is the externally held portfolio from CRYPTO_* variables.
	Holdings []domain.Holding
}

var defaultExcluded = []string{"P", "ETHW", "ETHF"}

type fileConfig struct {
	ExcludedCurrencies []string `yaml:"excluded_currencies"`
}

// holdingPrefix marks environment variables that declare held amounts,
// e.g. CRYPTO_BTC=1.001830.
const holdingPrefix = "CRYPTO_"

// Load resolves credentials and holdings from the environment (a .env
// file is honored when present) and report settings from an optional YAML
// file.
func Load(path string, logger *zap.Logger) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Upbit:              credsFromEnv("UPBIT"),
		Bithumb:            credsFromEnv("BITHUMB"),
		Coinone:            credsFromEnv("COINONE"),
		Korbit:             credsFromEnv("KORBIT"),
		ExcludedCurrencies: defaultExcluded,
		Holdings:           holdingsFromEnv(logger),
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config file")
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, errors.Wrap(err, "parse config file")
		}
		if len(fc.ExcludedCurrencies) > 0 {
			cfg.ExcludedCurrencies = fc.ExcludedCurrencies
		}
	}
	return cfg, nil
}

func credsFromEnv(prefix string) domain.Credentials {
	return domain.Credentials{
		Key:    os.Getenv(prefix + "_ACCESS_KEY"),
		Secret: os.Getenv(prefix + "_SECRET_KEY"),
	}
}

func holdingsFromEnv(logger *zap.Logger) []domain.Holding {
	var holdings []domain.Holding
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(key, holdingPrefix) {
			continue
		}
		symbol := strings.TrimPrefix(key, holdingPrefix)
		amount, err := decimal.NewFromString(value)
		if err != nil {
			logger.Warn("skipping holding with invalid amount",
				zap.String("symbol", symbol), zap.String("value", value))
			continue
		}
		holdings = append(holdings, domain.Holding{Symbol: symbol, Amount: amount})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings
}

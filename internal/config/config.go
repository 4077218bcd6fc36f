package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service   ServiceConfig   `mapstructure:"service"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Rates     RatesConfig     `mapstructure:"rates"`
	Quotes    QuotesConfig    `mapstructure:"quotes"`
	Databases DatabasesConfig `mapstructure:"databases"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	APIToken string `mapstructure:"apiToken"`
	LogLevel string `mapstructure:"logLevel"`
}

type LedgerConfig struct {
	// BaseCurrency is the ledger's single cash currency (USDP by default)
	BaseCurrency string `mapstructure:"baseCurrency"`
}

type RatesConfig struct {
	// ProviderURL is the live exchange-rate endpoint; empty runs fallback-only
	ProviderURL string `mapstructure:"providerUrl"`
	// CacheTTLSeconds is how long a fetched rate is reused
	CacheTTLSeconds int `mapstructure:"cacheTtlSeconds"`
	// FetchTimeoutSeconds bounds one live fetch before falling back
	FetchTimeoutSeconds int `mapstructure:"fetchTimeoutSeconds"`
}

type QuotesConfig struct {
	// WindowSeconds is how long a confirmation quote stays valid
	WindowSeconds int `mapstructure:"windowSeconds"`
}

type DatabasesConfig struct {
	SQL SQLConfig `mapstructure:"sql"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// CacheTTL returns the rate cache TTL as a duration (zero means "use default")
func (r RatesConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// FetchTimeout returns the live-fetch timeout as a duration (zero means "use default")
func (r RatesConfig) FetchTimeout() time.Duration {
	return time.Duration(r.FetchTimeoutSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Service.Port == "" {
		cfg.Service.Port = "8080"
	}
	if cfg.Service.LogLevel == "" {
		cfg.Service.LogLevel = "info"
	}
	if cfg.Ledger.BaseCurrency == "" {
		cfg.Ledger.BaseCurrency = "USDP"
	}
}

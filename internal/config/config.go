package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultConfigFile = "dashboard.yaml"
	EnvPrefix         = "DASHBOARD_"
)

// flagKeys maps command-line flag names to config keys. Flags not listed
// here are not configuration.
var flagKeys = map[string]string{
	"host":       "server.host",
	"port":       "server.port",
	"csv":        "data.csv_file",
	"currency":   "data.currency",
	"table-rows": "data.table_row_limit",
	"log-level":  "logger.level",
	"log-format": "logger.format",
}

var listKeys = map[string]bool{
	"security.allowed_origins": true,
	"security.trusted_proxies": true,
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Logger   LoggerConfig   `koanf:"logger"`
	Security SecurityConfig `koanf:"security"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DataConfig struct {
	CSVFile string `koanf:"csv_file"`
	// Currency is the label printed in front of monetary values.
	Currency string `koanf:"currency"`
	// TableRowLimit caps the raw data table on the page; 0 shows every row.
	TableRowLimit int `koanf:"table_row_limit"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type SecurityConfig struct {
	EnableRateLimit bool     `koanf:"rate_limit_enabled"`
	RateLimitRPS    int      `koanf:"rate_limit_rps"`
	RateLimitBurst  int      `koanf:"rate_limit_burst"`
	AllowedOrigins  []string `koanf:"allowed_origins"`
	TrustedProxies  []string `koanf:"trusted_proxies"`
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":                 "localhost",
		"server.port":                 8084,
		"server.read_timeout":         10 * time.Second,
		"server.write_timeout":        10 * time.Second,
		"server.idle_timeout":         60 * time.Second,
		"server.shutdown_timeout":     30 * time.Second,
		"data.csv_file":               "supermarket_monthly_sales.csv",
		"data.currency":               "AED",
		"data.table_row_limit":        0,
		"logger.level":                "info",
		"logger.format":               "json",
		"security.rate_limit_enabled": true,
		"security.rate_limit_rps":     100,
		"security.rate_limit_burst":   10,
		"security.allowed_origins":    []string{"http://localhost:8084"},
		"security.trusted_proxies":    []string{"127.0.0.1"},
	}
}

// Load builds the configuration from, lowest precedence first: defaults,
// the YAML file (cfgFile, or ./dashboard.yaml when present), DASHBOARD_*
// environment variables and explicitly set flags. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// DASHBOARD_SERVER_READ_TIMEOUT -> server.read_timeout
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.Replace(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", ".", 1)
		if listKeys[key] {
			return key, strings.Split(value, ",")
		}
		return key, value
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Data.CSVFile == "" {
		return fmt.Errorf("CSV file path cannot be empty")
	}

	if strings.TrimSpace(c.Data.Currency) == "" {
		return fmt.Errorf("currency label cannot be empty")
	}

	if c.Data.TableRowLimit < 0 {
		return fmt.Errorf("table row limit cannot be negative")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	return nil
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

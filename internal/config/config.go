package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is used when CONFIG_PATH is not set.
	DefaultPath = "config/config.yaml"

	envConfigPath = "CONFIG_PATH"
	envProjectID  = "PORTFOLIO_PROJECT_ID"
	envPort       = "PORTFOLIO_PORT"
	envLogLevel   = "PORTFOLIO_LOG_LEVEL"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server        ServerConfig            `yaml:"server"`
	Logging       LoggingConfig           `yaml:"logging"`
	Swagger       SwaggerConfig           `yaml:"swagger"`
	App           AppConfig               `yaml:"app"`
	Wallet        WalletConfig            `yaml:"wallet"`
	Dashboard     DashboardConfig         `yaml:"dashboard"`
	Simulation    SimulationConfig        `yaml:"simulation"`
	TokenPriceSvc TokenPriceServiceConfig `yaml:"tokenPriceService"`
	Prices        []PriceOverride         `yaml:"prices"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port            string   `yaml:"port"`
	ReadTimeout     int      `yaml:"readTimeout"`
	WriteTimeout    int      `yaml:"writeTimeout"`
	IdleTimeout     int      `yaml:"idleTimeout"`
	ShutdownTimeout int      `yaml:"shutdownTimeout"`
	AllowedOrigins  []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	Development bool   `yaml:"development"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Path     string `yaml:"path"`
	SpecFile string `yaml:"specFile"`
}

// AppConfig is the metadata shown by the dashboard header.
type AppConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	Icon        string `yaml:"icon"`
}

// WalletConfig configures the wallet session.
type WalletConfig struct {
	ProjectID          string `yaml:"projectID"`
	AutoConnectAddress string `yaml:"autoConnectAddress"`
	AutoConnectChainID uint64 `yaml:"autoConnectChainID"`
}

// DashboardConfig holds configuration for the dashboard controller and its HTTP surface.
type DashboardConfig struct {
	FetchTimeoutMillis   int64 `yaml:"fetchTimeoutMillis"`
	RefreshRatePerMinute int   `yaml:"refreshRatePerMinute"`
	RefreshBurst         int   `yaml:"refreshBurst"`
}

// SimulationConfig controls the fixture-backed balance source.
// FetchDelayMillis is a pointer so an explicit 0 survives defaulting.
type SimulationConfig struct {
	FetchDelayMillis      *int64 `yaml:"fetchDelayMillis"`
	TokensFile            string `yaml:"tokensFile"`
	MaxNativeBalanceEther int64  `yaml:"maxNativeBalanceEther"`
}

// FetchDelay returns the simulated balance fetch latency.
func (s SimulationConfig) FetchDelay() time.Duration {
	if s.FetchDelayMillis == nil {
		return 0
	}
	return time.Duration(*s.FetchDelayMillis) * time.Millisecond
}

// TokenPriceServiceConfig holds configuration for the TokenPriceService.
type TokenPriceServiceConfig struct {
	CacheTTLMinutes        int `yaml:"cacheTTLMinutes"`
	RefreshIntervalSeconds int `yaml:"refreshIntervalSeconds"`
}

// PriceOverride replaces or adds one entry of the built-in price table.
type PriceOverride struct {
	Symbol    string `yaml:"symbol"`
	Price     string `yaml:"price"`
	Change24h string `yaml:"change24h"`
}

// Path returns the config file location, honouring CONFIG_PATH.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadEnv loads a .env file if present. A missing file is not an error.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	if err != nil {
		logrus.Debug("No .env file found, using process environment only")
	}
	return nil
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data: %v", err)
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv(envProjectID); v != "" {
		cfg.Wallet.ProjectID = v
		logrus.Infof("Wallet.ProjectID taken from %s", envProjectID)
	}
	if v := os.Getenv(envPort); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", envPort, v, err)
		}
		cfg.Server.Port = v
		logrus.Infof("Server.Port overridden by %s: %s", envPort, v)
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.Logging.Level = v
		logrus.Infof("Logging.Level overridden by %s: %s", envLogLevel, v)
	}
	return nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 5
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Swagger.Path == "" {
		cfg.Swagger.Path = "/swagger"
	}
	if cfg.Swagger.SpecFile == "" {
		cfg.Swagger.SpecFile = "docs/swagger.yaml"
	}

	if cfg.App.Name == "" {
		cfg.App.Name = "Web3 Portfolio Tracker"
	}
	if cfg.App.Description == "" {
		cfg.App.Description = "Track your crypto portfolio across multiple chains"
	}

	if cfg.Dashboard.FetchTimeoutMillis == 0 {
		cfg.Dashboard.FetchTimeoutMillis = 10000
		logrus.Infof("Dashboard.FetchTimeoutMillis not set, defaulting to %d ms", cfg.Dashboard.FetchTimeoutMillis)
	}
	if cfg.Dashboard.RefreshRatePerMinute == 0 {
		cfg.Dashboard.RefreshRatePerMinute = 30
	}
	if cfg.Dashboard.RefreshBurst == 0 {
		cfg.Dashboard.RefreshBurst = 3
	}

	if cfg.Simulation.FetchDelayMillis == nil {
		delay := int64(1500)
		cfg.Simulation.FetchDelayMillis = &delay
		logrus.Infof("Simulation.FetchDelayMillis not set, defaulting to %d ms", delay)
	}
	if cfg.Simulation.MaxNativeBalanceEther == 0 {
		cfg.Simulation.MaxNativeBalanceEther = 10
	}

	if cfg.TokenPriceSvc.CacheTTLMinutes == 0 {
		cfg.TokenPriceSvc.CacheTTLMinutes = 60 // Default to 1 hour
		logrus.Infof("CacheTTLMinutes for TokenPriceSvc not set, defaulting to %d minutes", cfg.TokenPriceSvc.CacheTTLMinutes)
	}
	if cfg.TokenPriceSvc.RefreshIntervalSeconds == 0 && cfg.TokenPriceSvc.CacheTTLMinutes > 0 {
		// Cached quotes must be reloaded before they expire.
		cfg.TokenPriceSvc.RefreshIntervalSeconds = min(300, cfg.TokenPriceSvc.CacheTTLMinutes*60/2)
	}
}

// Validate reports settings that cannot be defaulted.
func (cfg *Config) Validate() error {
	if d := cfg.Simulation.FetchDelayMillis; d != nil && *d < 0 {
		return fmt.Errorf("simulation.fetchDelayMillis must not be negative, got %d", *d)
	}
	ttlSeconds := cfg.TokenPriceSvc.CacheTTLMinutes * 60
	if ttlSeconds <= 0 {
		return fmt.Errorf("tokenPriceService.cacheTTLMinutes must be positive, got %d", cfg.TokenPriceSvc.CacheTTLMinutes)
	}
	if refresh := cfg.TokenPriceSvc.RefreshIntervalSeconds; refresh <= 0 || refresh >= ttlSeconds {
		return fmt.Errorf("tokenPriceService.refreshIntervalSeconds must be positive and shorter than the %ds cache TTL, got %d",
			ttlSeconds, refresh)
	}
	if cfg.Simulation.MaxNativeBalanceEther < 0 {
		return fmt.Errorf("simulation.maxNativeBalanceEther must not be negative, got %d", cfg.Simulation.MaxNativeBalanceEther)
	}
	for i, p := range cfg.Prices {
		if strings.TrimSpace(p.Symbol) == "" {
			return fmt.Errorf("prices[%d]: symbol is required", i)
		}
		if p.Price == "" {
			return fmt.Errorf("prices[%d] (%s): price is required", i, p.Symbol)
		}
	}
	if cfg.Wallet.ProjectID == "" {
		logrus.Warn("Wallet.ProjectID is empty; wallet connection will run without a project id")
	}
	return nil
}

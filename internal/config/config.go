package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/viper"

	"github.com/mmcdole/streamscout/internal/domain"
)

const defaultTMDBURL = "https://api.themoviedb.org/3"

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	User    UserConfig    `mapstructure:"user"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	URL   string `mapstructure:"url"`   // API base URL
	Token string `mapstructure:"token"` // Bearer token (env: TMDB_BEARER_TOKEN)
}

// UserConfig holds region and subscription preferences
type UserConfig struct {
	Region        string   `mapstructure:"region"`        // e.g. "DK", "US"
	Subscriptions []string `mapstructure:"subscriptions"` // StreamingService values
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			URL: defaultTMDBURL,
		},
		User: UserConfig{
			Region: "DK",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "streamscout", "streamscout.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "streamscout", "streamscout.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "streamscout")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "streamscout")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "streamscout", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "streamscout", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("STREAMSCOUT")
	viper.AutomaticEnv()

	// The token keeps its historical env name
	_ = viper.BindEnv("tmdb.token", "TMDB_BEARER_TOKEN")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names
	viper.Set("tmdb.url", cfg.TMDB.URL)
	viper.Set("tmdb.token", cfg.TMDB.Token)

	viper.Set("user.region", cfg.User.Region)
	viper.Set("user.subscriptions", cfg.User.Subscriptions)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if a region has been chosen
func (c *Config) IsConfigured() bool {
	return c.User.Region != ""
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}

// ClearCache removes all cached data
func ClearCache() error {
	cachePath := defaultCachePath()
	if err := os.RemoveAll(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// SubscribedServices converts the stored subscription strings to
// typed services, dropping values no longer recognized.
func (c *Config) SubscribedServices() []domain.StreamingService {
	services := make([]domain.StreamingService, 0, len(c.User.Subscriptions))
	for _, s := range c.User.Subscriptions {
		if svc, ok := domain.ParseService(s); ok {
			services = append(services, svc)
		}
	}
	return services
}

// Handle is a shared, mutable view of the user settings. The TUI writes
// through it and the repository reads fresh values on every call,
// satisfying domain.ConfigSource.
type Handle struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewHandle wraps a loaded config
func NewHandle(cfg *Config) *Handle {
	return &Handle{cfg: cfg}
}

// Region returns the current region code
func (h *Handle) Region() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg.User.Region
}

// Subscriptions returns the current subscribed services
func (h *Handle) Subscriptions() []domain.StreamingService {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cfg.SubscribedServices()
}

// Update applies fn to the config under the write lock and persists it
func (h *Handle) Update(fn func(*Config)) error {
	h.mu.Lock()
	fn(h.cfg)
	cfg := *h.cfg
	h.mu.Unlock()
	return SaveConfig(&cfg)
}

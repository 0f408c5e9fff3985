package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/todonaut/todonaut/pkg/cache"
	"github.com/todonaut/todonaut/pkg/request/httpclient"
)

// AppConfig is the full application configuration tree.
type AppConfig struct {
	App       App             `mapstructure:"app"`
	APIServer APIServerConfig `mapstructure:"apiserver"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Store     StoreConfig     `mapstructure:"store"`
}

type App struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
}

type APIServerConfig struct {
	Host string     `mapstructure:"host"`
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	AllowedMethods []string `mapstructure:"allowedMethods"`
	AllowedHeaders []string `mapstructure:"allowedHeaders"`
}

// UpstreamConfig points at the identity/todo API and tunes its HTTP client.
type UpstreamConfig struct {
	URL            string                             `mapstructure:"url"`
	ConnectionPool httpclient.ConnectionPoolConfig    `mapstructure:"connectionPool"`
	Resiliency     httpclient.HystrixResiliencyConfig `mapstructure:"resiliency"`
}

// StoreConfig selects the snapshot backend. Backend "file" persists to
// DataDir/todos.json; "cache" persists through the configured cache.
type StoreConfig struct {
	Backend string        `mapstructure:"backend"`
	DataDir string        `mapstructure:"dataDir"`
	Cache   *cache.Config `mapstructure:"cache"`
}

// GetConfig loads configuration from the config directory (TODONAUT_CONFIG_DIR,
// default ./config) with TODONAUT_* environment overrides. A missing config
// file is fine; defaults cover local development.
func GetConfig() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("appconfig")
	v.SetConfigType("yaml")

	configDir := os.Getenv("TODONAUT_CONFIG_DIR")
	if configDir == "" {
		configDir = "./config"
	}
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("TODONAUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "todonaut")
	v.SetDefault("app.environment", "local")
	v.SetDefault("app.logLevel", "debug")

	v.SetDefault("apiserver.host", "0.0.0.0")
	v.SetDefault("apiserver.port", 8080)
	v.SetDefault("apiserver.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("apiserver.cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("apiserver.cors.allowedHeaders", []string{"Origin", "Content-Type", "Accept"})

	v.SetDefault("upstream.url", "https://dummyjson.com")

	v.SetDefault("store.backend", "file")
	v.SetDefault("store.dataDir", ".data")
}

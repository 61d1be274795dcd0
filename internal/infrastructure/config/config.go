package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Log          LogConfig
	HTTP         HTTPConfig
	Auth         AuthConfig
	ContentStore ContentStoreConfig
	Orders       OrdersConfig
	Carrier      CarrierConfig
	Activity     ActivityConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
}

// AuthConfig holds dashboard API authentication settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

// ContentStoreConfig holds the headless content store connection settings
type ContentStoreConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// OrdersConfig holds the order system connection settings
type OrdersConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// CarrierConfig holds the shipping carrier connection settings
type CarrierConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
}

// ActivityConfig holds the activity-log sink settings
type ActivityConfig struct {
	SinkURL string
	Timeout time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with PANEL_ prefix (e.g., PANEL_ORDERS_CONSUMERSECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("PANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
		},
		ContentStore: ContentStoreConfig{
			BaseURL:  v.GetString("contentstore.base_url"),
			APIToken: v.GetString("contentstore.api_token"),
			Timeout:  v.GetDuration("contentstore.timeout"),
		},
		Orders: OrdersConfig{
			BaseURL:        v.GetString("orders.base_url"),
			ConsumerKey:    v.GetString("orders.consumer_key"),
			ConsumerSecret: v.GetString("orders.consumer_secret"),
			Timeout:        v.GetDuration("orders.timeout"),
		},
		Carrier: CarrierConfig{
			BaseURL:       v.GetString("carrier.base_url"),
			APIKey:        v.GetString("carrier.api_key"),
			WebhookSecret: v.GetString("carrier.webhook_secret"),
			Timeout:       v.GetDuration("carrier.timeout"),
		},
		Activity: ActivityConfig{
			SinkURL: v.GetString("activity.sink_url"),
			Timeout: v.GetDuration("activity.timeout"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "panel-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB, webhook bodies are small
	}
	if cfg.Auth.Issuer == "" {
		cfg.Auth.Issuer = "panel-backend"
	}
	if cfg.ContentStore.BaseURL == "" {
		cfg.ContentStore.BaseURL = "http://localhost:1337/api"
	}
	if cfg.ContentStore.Timeout == 0 {
		cfg.ContentStore.Timeout = 10 * time.Second
	}
	if cfg.Orders.BaseURL == "" {
		cfg.Orders.BaseURL = "http://localhost:8090/wp-json/wc/v3"
	}
	if cfg.Orders.Timeout == 0 {
		cfg.Orders.Timeout = 10 * time.Second
	}
	if cfg.Carrier.Timeout == 0 {
		cfg.Carrier.Timeout = 10 * time.Second
	}
	if cfg.Activity.Timeout == 0 {
		cfg.Activity.Timeout = 3 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.App.Env == "production" {
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required in production")
		}
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 characters in production")
		}
		if c.ContentStore.APIToken == "" {
			return fmt.Errorf("contentstore.api_token is required in production")
		}
		if c.Orders.ConsumerKey == "" || c.Orders.ConsumerSecret == "" {
			return fmt.Errorf("orders.consumer_key and orders.consumer_secret are required in production")
		}
		if c.Carrier.WebhookSecret == "" {
			return fmt.Errorf("carrier.webhook_secret is required in production")
		}
	}
	if !strings.HasPrefix(c.ContentStore.BaseURL, "http") {
		return fmt.Errorf("contentstore.base_url must be an http(s) URL")
	}
	if !strings.HasPrefix(c.Orders.BaseURL, "http") {
		return fmt.Errorf("orders.base_url must be an http(s) URL")
	}
	return nil
}

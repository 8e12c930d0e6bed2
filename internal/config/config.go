// Package config loads and validates the server configuration from an
// optional YAML file and the environment. Validation failures surface as
// initialization errors; the process does not start without a usable
// configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"n8n-mcp-server/internal/n8n"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Environment variable names recognized next to the config file.
const (
	EnvAPIURL          = "N8N_API_URL"
	EnvAPIKey          = "N8N_API_KEY"
	EnvWebhookUsername = "N8N_WEBHOOK_USERNAME"
	EnvWebhookPassword = "N8N_WEBHOOK_PASSWORD"
	EnvDebug           = "DEBUG"
)

// Config holds the configuration for the server. The webhook credentials
// are optional at startup; the webhook tool checks them at the point of use.
type Config struct {
	APIURL          string `mapstructure:"api_url" validate:"required,url"`
	APIKey          string `mapstructure:"api_key" validate:"required"`
	WebhookUsername string `mapstructure:"webhook_username"`
	WebhookPassword string `mapstructure:"webhook_password"`
	Debug           bool   `mapstructure:"debug"`
}

// envNames maps struct fields to the environment variable reported in
// validation messages.
var envNames = map[string]string{
	"APIURL": EnvAPIURL,
	"APIKey": EnvAPIKey,
}

// Load reads configuration from the given file (or ./config.yaml when empty,
// if present) with environment variables taking precedence, then validates
// it.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, n8n.NewInitializationError(fmt.Sprintf("Failed to read config file %s: %v", configFile, err))
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		// A config file is optional; env vars alone are enough.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, n8n.NewInitializationError(fmt.Sprintf("Failed to read config file: %v", err))
			}
		}
	}

	v.SetDefault("api_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("webhook_username", "")
	v.SetDefault("webhook_password", "")
	v.SetDefault("debug", false)

	_ = v.BindEnv("api_url", EnvAPIURL)
	_ = v.BindEnv("api_key", EnvAPIKey)
	_ = v.BindEnv("webhook_username", EnvWebhookUsername)
	_ = v.BindEnv("webhook_password", EnvWebhookPassword)
	_ = v.BindEnv("debug", EnvDebug)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, n8n.NewInitializationError(fmt.Sprintf("Failed to parse configuration: %v", err))
	}

	cfg.APIURL = strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/")

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return n8n.NewInitializationError(fmt.Sprintf("Invalid configuration: %v", err))
	}
	first := verrs[0]
	name := envNames[first.StructField()]
	if name == "" {
		name = first.StructField()
	}
	if first.Tag() == "required" {
		return n8n.NewInitializationError(fmt.Sprintf("Missing required environment variable: %s", name))
	}
	return n8n.NewInitializationError(fmt.Sprintf("Invalid URL format for %s: %v", name, first.Value()))
}

// ClientConfig converts the configuration into the gateway's connection
// settings.
func (c *Config) ClientConfig() n8n.ClientConfig {
	return n8n.ClientConfig{
		BaseURL:         c.APIURL,
		APIKey:          c.APIKey,
		WebhookUsername: c.WebhookUsername,
		WebhookPassword: c.WebhookPassword,
		Debug:           c.Debug,
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Upstream services
	Linear  LinearConfig
	Todoist TodoistConfig

	// Link store
	Database DatabaseConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
	// TrustedProxies may set X-Forwarded-For; the webhook IP allow-list relies on it.
	TrustedProxies []string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type LinearConfig struct {
	APIKey string
	// FinalStateID is the workflow state an issue moves to when its task is completed.
	FinalStateID string
	// AssigneeID limits task creation to issues assigned to this user. Empty relays all issues.
	AssigneeID        string
	WebhookSecret     string
	CompletionComment string
}

type TodoistConfig struct {
	APIKey       string
	ProjectID    string
	ClientSecret string
}

type DatabaseConfig struct {
	Path string
}

type WebhookConfig struct {
	Enabled         bool
	AllowedIPs      []string
	RateLimitPerMin int
	ProcessTimeout  time.Duration
}

// Load loads configuration using Viper.
// A .env file in the working directory is applied to the process environment first.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.TrustedProxies = splitList(viper.GetString("http_server.trusted_proxies"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Linear (LINEAR_API_KEY resolves through the env key replacer)
	cfg.Linear.APIKey = viper.GetString("linear.api_key")
	cfg.Linear.FinalStateID = viper.GetString("linear.final_state_id")
	cfg.Linear.AssigneeID = viper.GetString("linear.assignee_id")
	cfg.Linear.WebhookSecret = viper.GetString("linear.webhook_secret")
	cfg.Linear.CompletionComment = viper.GetString("linear.completion_comment")

	// Todoist
	cfg.Todoist.APIKey = viper.GetString("todoist.api_key")
	cfg.Todoist.ProjectID = viper.GetString("todoist.project_id")
	cfg.Todoist.ClientSecret = viper.GetString("todoist.client_secret")
	if project := viper.GetString("todoist_project"); project != "" {
		cfg.Todoist.ProjectID = project
	}

	cfg.Database.Path = viper.GetString("database.path")

	// Webhooks
	cfg.Webhook.Enabled = viper.GetBool("webhook.enabled")
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")
	cfg.Webhook.ProcessTimeout = viper.GetDuration("webhook.process_timeout")
	cfg.Webhook.AllowedIPs = splitList(viper.GetString("webhook.allowed_ips"))

	return cfg, nil
}

// Validate reports the first missing setting the service cannot start without.
func (c *Config) Validate() error {
	if c.Linear.APIKey == "" {
		return errors.New("linear.api_key (LINEAR_API_KEY) is required")
	}
	if c.Todoist.APIKey == "" {
		return errors.New("todoist.api_key (TODOIST_API_KEY) is required")
	}
	if c.Todoist.ProjectID == "" {
		return errors.New("todoist.project_id (TODOIST_PROJECT) is required")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}

	if c.Webhook.Enabled {
		if c.Linear.FinalStateID == "" {
			return errors.New("linear.final_state_id is required when webhooks are enabled")
		}
		if c.Linear.WebhookSecret == "" {
			return errors.New("linear.webhook_secret is required when webhooks are enabled")
		}
		if c.Todoist.ClientSecret == "" {
			return errors.New("todoist.client_secret is required when webhooks are enabled")
		}
		if c.Webhook.RateLimitPerMin < 0 {
			return fmt.Errorf("webhook.rate_limit_per_min must not be negative (0 disables), got %d", c.Webhook.RateLimitPerMin)
		}
		if c.Webhook.ProcessTimeout < 0 {
			return fmt.Errorf("webhook.process_timeout must not be negative, got %s", c.Webhook.ProcessTimeout)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("linear.completion_comment", "Completed in Todoist")
	viper.SetDefault("database.path", "data/relay.db")
	viper.SetDefault("webhook.enabled", true)
	viper.SetDefault("webhook.rate_limit_per_min", 60)
	viper.SetDefault("webhook.process_timeout", "30s")
}

// splitList splits a comma separated value; viper does not parse arrays from env reliably.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// gitpoap-bot specifics
	GitPOAP GitPOAPConfig
	GitHub  GitHubConfig
	Sentry  SentryConfig
	Slack   SlackConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GitPOAPConfig points at the claims API.
type GitPOAPConfig struct {
	APIURL    string
	BotHandle string
}

// GitHubConfig holds GitHub App credentials.
type GitHubConfig struct {
	AppID          int64
	PrivateKeyPath string
	InstallationID int64
}

type SentryConfig struct {
	DSN string
}

type SlackConfig struct {
	WebhookURL string
}

type WebhookConfig struct {
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
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
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Claims API
	cfg.GitPOAP.APIURL = viper.GetString("gitpoap.api_url")
	cfg.GitPOAP.BotHandle = viper.GetString("gitpoap.bot_handle")
	if apiURL := viper.GetString("api_url"); apiURL != "" {
		cfg.GitPOAP.APIURL = apiURL
	}

	// GitHub App
	cfg.GitHub.AppID = viper.GetInt64("github.app_id")
	cfg.GitHub.PrivateKeyPath = viper.GetString("github.private_key_path")
	cfg.GitHub.InstallationID = viper.GetInt64("github.installation_id")
	if appID := viper.GetInt64("github_app_id"); appID != 0 {
		cfg.GitHub.AppID = appID
	}
	if keyPath := viper.GetString("github_private_key_path"); keyPath != "" {
		cfg.GitHub.PrivateKeyPath = keyPath
	}
	if installID := viper.GetInt64("github_installation_id"); installID != 0 {
		cfg.GitHub.InstallationID = installID
	}

	// Error reporting
	cfg.Sentry.DSN = viper.GetString("sentry.dsn")
	if dsn := viper.GetString("sentry_dsn"); dsn != "" {
		cfg.Sentry.DSN = dsn
	}

	// Slack notifications
	cfg.Slack.WebhookURL = viper.GetString("slack.webhook_url")
	if slackURL := viper.GetString("slack_webhook_url"); slackURL != "" {
		cfg.Slack.WebhookURL = slackURL
	}

	// Webhooks
	cfg.Webhook.Secret = viper.GetString("webhook.secret")
	if webhookSecret := viper.GetString("webhook_secret"); webhookSecret != "" {
		cfg.Webhook.Secret = webhookSecret
	}
	cfg.Webhook.RateLimitPerMin = viper.GetInt("webhook.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("webhook.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Webhook.AllowedIPs = ips

	if cfg.GitPOAP.APIURL == "" {
		return nil, fmt.Errorf("API_URL is required")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("gitpoap.bot_handle", "gitpoap-bot")
	viper.SetDefault("webhook.rate_limit_per_min", 60)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gitpoap-bot/config"
	"gitpoap-bot/internal/bot"
	"gitpoap-bot/internal/httpserver"
	"gitpoap-bot/internal/webhook"
	"gitpoap-bot/pkg/githubapp"
	"gitpoap-bot/pkg/gitpoap"
	"gitpoap-bot/pkg/log"
	"gitpoap-bot/pkg/report"
	"gitpoap-bot/pkg/slack"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting gitpoap-bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "GitPOAP API URL: %s", cfg.GitPOAP.APIURL)

	// 3. Error reporting
	reporter, err := report.Init(report.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Environment.Name,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize error reporting: ", err)
		return
	}
	defer reporter.Flush(2 * time.Second)

	// 4. GitHub App client
	privateKey, err := os.ReadFile(cfg.GitHub.PrivateKeyPath)
	if err != nil {
		logger.Error(ctx, "Failed to read GitHub App private key: ", err)
		return
	}

	jwtGen, err := githubapp.NewJWTGenerator(strconv.FormatInt(cfg.GitHub.AppID, 10), privateKey)
	if err != nil {
		logger.Error(ctx, "Failed to initialize GitHub App JWT generator: ", err)
		return
	}

	ghClient, err := githubapp.NewClient(ctx, jwtGen, cfg.GitHub.InstallationID)
	if err != nil {
		logger.Error(ctx, "Failed to initialize GitHub client: ", err)
		return
	}

	// 5. GitPOAP claims client
	claimsClient, err := gitpoap.New(cfg.GitPOAP.APIURL, jwtGen)
	if err != nil {
		logger.Error(ctx, "Failed to initialize GitPOAP client: ", err)
		return
	}

	// 6. Slack notifier (optional)
	var notifier slack.Notifier
	if cfg.Slack.WebhookURL != "" {
		notifier = slack.New(cfg.Slack.WebhookURL)
		logger.Info(ctx, "Slack notifications enabled")
	} else {
		logger.Warn(ctx, "SLACK_WEBHOOK_URL not set, Slack notifications disabled")
	}

	// 7. Bot use case
	botUC := bot.New(claimsClient, ghClient, ghClient, ghClient, notifier, reporter, logger, cfg.GitPOAP.BotHandle)

	// 8. Webhook delivery handler
	webhookHandler := webhook.NewHandler(botUC, webhook.SecurityConfig{
		Secret:          cfg.Webhook.Secret,
		AllowedIPs:      cfg.Webhook.AllowedIPs,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	}, reporter, logger)

	// 9. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		WebhookHandler: webhookHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

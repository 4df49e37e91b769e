package webhook

import (
	"gitpoap-bot/internal/bot"
	pkgLog "gitpoap-bot/pkg/log"
	"gitpoap-bot/pkg/report"
)

type Handler struct {
	botUC    bot.UseCase
	security *SecurityValidator
	parser   *GitHubWebhookParser
	reporter report.Reporter
	l        pkgLog.Logger
}

func NewHandler(
	botUC bot.UseCase,
	securityConfig SecurityConfig,
	reporter report.Reporter,
	l pkgLog.Logger,
) *Handler {
	return &Handler{
		botUC:    botUC,
		security: NewSecurityValidator(securityConfig),
		parser:   NewGitHubParser(),
		reporter: reporter,
		l:        l,
	}
}

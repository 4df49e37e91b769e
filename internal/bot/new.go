package bot

import (
	"gitpoap-bot/pkg/gitpoap"
	pkgLog "gitpoap-bot/pkg/log"
	"gitpoap-bot/pkg/report"
	"gitpoap-bot/pkg/slack"
)

func New(
	claims gitpoap.API,
	users UserResolver,
	perms PermissionChecker,
	comments Commenter,
	notifier slack.Notifier,
	reporter report.Reporter,
	l pkgLog.Logger,
	botHandle string,
) UseCase {
	if botHandle == "" {
		botHandle = DefaultBotHandle
	}

	return &usecase{
		claims:    claims,
		users:     users,
		perms:     perms,
		comments:  comments,
		notifier:  notifier,
		reporter:  reporter,
		l:         l,
		botHandle: botHandle,
	}
}

type usecase struct {
	claims    gitpoap.API
	users     UserResolver
	perms     PermissionChecker
	comments  Commenter
	notifier  slack.Notifier
	reporter  report.Reporter
	l         pkgLog.Logger
	botHandle string
}

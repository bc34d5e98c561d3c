package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nomadia/site-messages/internal/config"
	"github.com/nomadia/site-messages/internal/content"
	httpapi "github.com/nomadia/site-messages/internal/http"
	"github.com/nomadia/site-messages/internal/i18n"
	"github.com/nomadia/site-messages/internal/log"
	"github.com/nomadia/site-messages/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.LogLevel, cfg.LogFormat).With("service", cfg.ServiceName)

	documents, err := content.Open(cfg.MessagesDir)
	if err != nil {
		logger.Error("failed to open message documents", "error", err)
		os.Exit(1)
	}
	loader := i18n.NewLoader(i18n.NewFSSource(documents), cfg.Mode(), logger)
	missing := i18n.NewMissingLog(cfg.Development(), i18n.WithMissingLogger(logger))

	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for _, locale := range i18n.Locales() {
		catalog := loader.LoadAll(baseCtx, locale)
		logger.Info("catalog checked", "locale", locale, "keys", len(catalog), "mode", loader.Mode())
	}

	server := httpapi.New(cfg.HTTPAddr(), logger)
	server.Mount(httpapi.NewMessagesHandler(loader, missing, cfg.Locale(), cfg.Development(), logger))
	if cfg.Development() {
		var notifier httpapi.ReportNotifier
		if cfg.TelegramEnabled() {
			tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
			if err != nil {
				logger.Error("failed to init telegram notifier", "error", err)
				os.Exit(1)
			}
			notifier = tg
		}
		server.Mount(httpapi.NewDebugHandler(missing, notifier, logger))
	}
	server.SetReady(true)

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown requested", "signal", sig.String())
	case err := <-errCh:
		logger.Error("http server stopped", "error", err)
	}

	cancel()
	server.SetReady(false)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	if missing.Len() > 0 {
		logger.Warn("missing translations recorded during this run", "count", missing.Len())
	}
}

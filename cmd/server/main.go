// cmd/server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mundolaboral-api/internal/catalog"
	"mundolaboral-api/internal/common/config"
	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/mail"
	"mundolaboral-api/internal/common/observability"
	"mundolaboral-api/internal/server"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting mundolaboral-api...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger now that the configured level and format are known.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	cat, err := catalog.Load()
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	zapLog.Info("Catalog loaded",
		zap.Int("jobs", len(cat.Jobs())),
		zap.Int("visas", len(cat.Visas())),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mailer mail.Mailer
	switch cfg.Mail.Provider {
	case "ses":
		sesMailer, err := mail.NewSESMailer(ctx, cfg.Mail, log)
		if err != nil {
			zapLog.Fatal("ses mailer init failed", zap.Error(err))
		}
		mailer = sesMailer
		zapLog.Info("Mail transport ready", zap.String("provider", "ses"), zap.String("region", cfg.Mail.SES.Region))
	default:
		mailer = mail.NewSMTPMailer(cfg.Mail, log)
		zapLog.Info("Mail transport ready", zap.String("provider", "smtp"), zap.String("host", cfg.Mail.SMTP.Host))
	}

	srv := server.New(server.Dependencies{
		Config:  cfg,
		Logger:  log,
		Catalog: cat,
		Mailer:  mailer,
		Metrics: obs,
	})

	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}

	zapLog.Info("Shutdown complete")
}

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/auth"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/checkout"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/commission"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/config"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/db"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/dialer"
	httpapi "github.com/Abubakar4101/call-center-crm-sub000/internal/http"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/mail"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/reminder"
	"github.com/Abubakar4101/call-center-crm-sub000/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	var out io.Writer = os.Stderr
	if cfg.LogFile != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
		}
	}
	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", "crm-backend").
		Logger()
	log.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
			rdb = nil
		}
	}

	disk, err := storage.NewDisk(cfg.UploadDir, cfg.MaxUploadSizeMB<<20)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init upload dir")
	}

	var checkoutAdapter checkout.Adapter
	if cfg.StripeSecretKey == "" {
		checkoutAdapter = checkout.MockAdapter{}
		logger.Info().Msg("using mock checkout adapter")
	} else {
		checkoutAdapter = checkout.StripeAdapter{
			SecretKey:  cfg.StripeSecretKey,
			SuccessURL: cfg.CheckoutSuccessURL,
			CancelURL:  cfg.CheckoutCancelURL,
		}
	}

	var mailer mail.Mailer
	if cfg.SMTPHost == "" {
		mailer = mail.LogMailer{Logger: logger}
		logger.Info().Msg("using log-only mailer")
	} else {
		mailer = mail.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.MailFrom,
		}
	}

	deps := httpapi.Deps{
		Store:    store,
		Disk:     disk,
		Auth:     auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		Sessions: dialer.NewRegistry(),
		Bridge: &dialer.Bridge{
			ProviderOrigin: cfg.ProviderOrigin,
			Metrics:        store,
			Logger:         logger,
		},
		Invoicer: &commission.Invoicer{
			Checkout: checkoutAdapter,
			Mailer:   mailer,
			Store:    store,
			Logger:   logger,
		},
		Redis: rdb,
	}

	sched := &reminder.Scheduler{
		Store:    store,
		Mailer:   mailer,
		Interval: cfg.ReminderInterval,
		Horizon:  cfg.ReminderHorizon,
		Logger:   logger,
	}
	go sched.Run(ctx)

	router := httpapi.Router(cfg, deps, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}

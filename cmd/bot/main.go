package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/picktoss-bot/internal/api"
	"github.com/aliskhannn/picktoss-bot/internal/clock"
	"github.com/aliskhannn/picktoss-bot/internal/config"
	"github.com/aliskhannn/picktoss-bot/internal/delivery/telegram"
	"github.com/aliskhannn/picktoss-bot/internal/domain/entities"
	"github.com/aliskhannn/picktoss-bot/internal/infra/cache"
	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres"
	"github.com/aliskhannn/picktoss-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/picktoss-bot/internal/logger"
	"github.com/aliskhannn/picktoss-bot/internal/service"
	"github.com/aliskhannn/picktoss-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("bot stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	rdb, err := cache.NewClient(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() { _ = rdb.Close() }()

	// Initialize repositories and services.
	transactor := postgres.NewTransactor(pool)
	playRepo := repository.NewPlayRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)

	apiClient := api.NewClient(api.Config{
		BaseURL:        cfg.API.BaseURL,
		AccessToken:    cfg.API.AccessToken,
		Timeout:        cfg.API.Timeout,
		MaxRetries:     cfg.API.MaxRetries,
		RetryBaseDelay: cfg.API.RetryBaseDelay,
	}, lg)

	historyService := service.NewHistoryService(transactor, playRepo)
	quizService := service.NewQuizService(
		apiClient,
		historyService,
		storage.NewQuizStorage(),
		clock.System(),
		service.SessionConfig{
			IntroDuration:  cfg.Quiz.IntroDuration,
			RevealDelay:    cfg.Quiz.RevealDelay,
			TickResolution: cfg.Quiz.TickResolution,
		},
		lg,
	)
	defer quizService.Shutdown()

	keyPointService := service.NewKeyPointService(
		apiClient,
		cache.NewJSON[*entities.KeyPoints](rdb, "key-points", cfg.Redis.TTL),
		cache.NewJSON[[]entities.Category](rdb, "categories", cfg.Redis.TTL),
		clock.System(),
		service.PollConfig{
			Interval: cfg.Pick.PollInterval,
			Timeout:  cfg.Pick.PollTimeout,
		},
		lg,
	)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, lg)
	dailyService := service.NewDailyQuizService(apiClient, subscriptionRepo, service.DailyConfig{
		Schedule:      cfg.Daily.Schedule,
		MaxConcurrent: cfg.Daily.MaxConcurrent,
	}, lg)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "quiz", Description: "Solve today's quiz"},
		{Command: "repository", Description: "Browse your categories and documents"},
		{Command: "pick", Description: "Show AI picks of a document (usage: /pick 42)"},
		{Command: "history", Description: "Show your recent plays"},
		{Command: "subscribe", Description: "Get the daily quiz announcement"},
		{Command: "unsubscribe", Description: "Stop the daily quiz announcement"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		quizService,
		keyPointService,
		historyService,
		subscriptionService,
		storage.NewAnnouncementStorage(),
		storage.NewWatchStorage(),
	)
	dailyService.SetNotifier(handler)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx, updates)
	})
	g.Go(func() error {
		return dailyService.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		lg.Info("shutdown signal received")
		bot.StopReceivingUpdates()
		return nil
	})

	return g.Wait()
}

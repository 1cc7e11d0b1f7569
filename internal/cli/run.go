package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/guessyear/internal/catalog"
	"github.com/KirkDiggler/guessyear/internal/common/uuid"
	"github.com/KirkDiggler/guessyear/internal/handlers/discord"
	"github.com/KirkDiggler/guessyear/internal/media"
	"github.com/KirkDiggler/guessyear/internal/metrics"
	"github.com/KirkDiggler/guessyear/internal/playercache"
	"github.com/KirkDiggler/guessyear/internal/repositories/event"
	"github.com/KirkDiggler/guessyear/internal/repositories/player"
	gameService "github.com/KirkDiggler/guessyear/internal/services/game"
	"github.com/KirkDiggler/guessyear/internal/services/messaging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the Discord bot",
		RunE:  runE,
	}
}

// runE backs both "run" and the bare root command
func runE(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateBot(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	return runBot(ctx)
}

// runBot wires the bot, blocks until ctx is done and then flushes players
func runBot(ctx context.Context) error {
	redisClient, err := newRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// Initialize repositories
	eventRepo, err := event.NewRedis(&event.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create event repository: %w", err)
	}

	playerRepo, err := player.NewRedis(&player.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		return fmt.Errorf("failed to create player repository: %w", err)
	}

	// The bot does not start without its events
	events, err := catalog.Load(ctx, eventRepo)
	if err != nil {
		return fmt.Errorf("failed to load event catalog: %w", err)
	}
	zlog.Info("event catalog loaded", zap.Int("events", events.Len()))

	m := metrics.New()
	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsServer, err = metrics.NewServer(&metrics.ServerConfig{
			Addr:    cfg.MetricsAddr,
			Metrics: m,
			Logger:  zlog,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		metricsServer.Start()
	}

	playerCache, err := playercache.New(&playercache.Config{
		Policy:     playercache.Policy(cfg.PlayerPersistence),
		PlayerRepo: playerRepo,
	})
	if err != nil {
		return fmt.Errorf("failed to create player cache: %w", err)
	}

	uuidGenerator := uuid.New()

	gameSvc, err := gameService.New(&gameService.Config{
		Catalog:       events,
		PlayerCache:   playerCache,
		PlayerRepo:    playerRepo,
		UUIDGenerator: uuidGenerator,
		Metrics:       m,
		Logger:        zlog.Named("game"),
	})
	if err != nil {
		return fmt.Errorf("failed to create game service: %w", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return fmt.Errorf("failed to create messaging service: %w", err)
	}

	resolver, err := media.NewResolver(cfg.ResourcesDir)
	if err != nil {
		return fmt.Errorf("failed to create media resolver: %w", err)
	}

	responder, err := discord.NewResponder(&discord.ResponderConfig{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Media:            resolver,
		MinYear:          cfg.GuessMinYear,
		MaxYear:          cfg.GuessMaxYear,
		Logger:           zlog.Named("responder"),
	})
	if err != nil {
		return fmt.Errorf("failed to create responder: %w", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Responder:     responder,
		UUIDGenerator: uuidGenerator,
		Logger:        zlog.Named("discord"),
	})
	if err != nil {
		return fmt.Errorf("failed to create Discord bot: %w", err)
	}

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start Discord bot: %w", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	<-ctx.Done()
	zlog.Info("shutting down")

	// Stop returns once running handlers are done, so the flush sees their writes
	if err := bot.Stop(); err != nil {
		zlog.Error("error stopping bot", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Flush failures are reported once, the process exits either way
	if _, err := gameSvc.Shutdown(shutdownCtx); err != nil {
		zlog.Error("failed to persist players", zap.Error(err))
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			zlog.Error("error stopping metrics server", zap.Error(err))
		}
	}

	zlog.Info("bot has been shut down")
	return nil
}

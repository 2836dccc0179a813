package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humoyunmirzo-code/tgbot/internal/catalog"
	"github.com/humoyunmirzo-code/tgbot/internal/config"
	"github.com/humoyunmirzo-code/tgbot/internal/engine"
	"github.com/humoyunmirzo-code/tgbot/internal/handler"
	"github.com/humoyunmirzo-code/tgbot/internal/health"
	"github.com/humoyunmirzo-code/tgbot/internal/kafka"
	"github.com/humoyunmirzo-code/tgbot/internal/middleware"
	"github.com/humoyunmirzo-code/tgbot/internal/notify"
	"github.com/humoyunmirzo-code/tgbot/internal/repository/postgres"
	"github.com/humoyunmirzo-code/tgbot/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const janitorInterval = 10 * time.Minute

var rootCmd = &cobra.Command{
	Use:           "servicebot",
	Short:         "Telegram bot collecting appliance service requests",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBot,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBot(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting service bot", zap.String("env", cfg.AppEnv))

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	sessions, closeSessions, err := newSessionRepo(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize session store", zap.Error(err))
		return err
	}
	defer closeSessions()

	// Service catalog
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("Failed to load catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
		return err
	}
	logger.Info("Catalog loaded",
		zap.Int("appliances", len(cat.Appliances())),
		zap.Int("regions", len(cat.Regions())),
	)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Bot handler failed", fields...)
		},
	})
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return err
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Ticket event stream
	producer := kafka.NewProducer(kafka.ParseBrokers(cfg.Kafka.Brokers), cfg.Kafka.TicketTopic, logger)
	defer producer.Close()
	if producer.Enabled() {
		logger.Info("Ticket events enabled", zap.String("topic", cfg.Kafka.TicketTopic))
	}

	// Initialize services
	userService := service.NewUserService(userRepo)
	submitter := service.NewSubmitter(cat, notify.NewTelegramSink(bot, logger), producer, logger)
	intakeService := service.NewIntakeService(sessions, engine.New(cat), submitter, logger)
	janitorService := service.NewJanitorService(sessions, cfg.Session.IdleTimeout, logger)

	// Initialize handler
	bot.Use(
		middleware.RequireSender(logger),
		middleware.EnsureUser(userService, logger),
	)
	h := handler.NewHandler(bot, intakeService, userService, cat, cfg.ImagesDir, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start session janitor in background
	go runJanitorJob(ctx, janitorService, logger)

	// Health endpoints
	if cfg.HealthAddr != "" {
		router := health.NewRouter("servicebot", map[string]health.Check{
			"postgres": db.PingContext,
			"sessions": func(ctx context.Context) error {
				_, err := sessions.Count(ctx)
				return err
			},
		}, logger)
		srv := health.NewServer(cfg.HealthAddr, router, logger)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Error("Health server stopped", zap.Error(err))
			}
		}()
	}

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// runJanitorJob periodically expires abandoned sessions
func runJanitorJob(ctx context.Context, janitor *service.JanitorService, logger *zap.Logger) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session janitor stopped")
			return
		case <-ticker.C:
			if _, err := janitor.SweepIdleSessions(ctx); err != nil {
				logger.Error("Failed to run scheduled session sweep", zap.Error(err))
			}
		}
	}
}

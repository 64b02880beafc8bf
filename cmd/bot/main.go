// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/spf13/cobra"

	"github.com/edgard/genbot/internal/bot"
	"github.com/edgard/genbot/internal/bot/handlers"
	"github.com/edgard/genbot/internal/bot/tasks"
	"github.com/edgard/genbot/internal/config"
	"github.com/edgard/genbot/internal/database"
	"github.com/edgard/genbot/internal/generation"
	"github.com/edgard/genbot/internal/logger"
	"github.com/edgard/genbot/internal/telegram"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "genbot",
		Short:         "Telegram bot for conversational text, image, and speech generation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "./config.yaml", "Path to configuration file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot and block until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBot(ctx, configPath)
		},
	}

	var confirmed bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the bot's database file",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !confirmed {
				return errors.New("refusing to delete the database without --yes")
			}
			return clearDatabase(configPath)
		},
	}
	clearCmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm database deletion")

	root.AddCommand(runCmd, clearCmd)
	return root
}

// runBot wires all components together and runs the orchestrator until ctx
// is cancelled.
func runBot(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", configPath, "error", err)
		return err
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return err
	}
	defer database.CloseDB(db)

	store := database.NewStore(db, log, database.ChatDefaults{
		Intro:    cfg.Generation.DefaultIntro,
		Provider: cfg.Generation.DefaultProvider,
		Voice:    cfg.Generation.DefaultVoice,
	})

	generator, err := generation.NewClient(cfg.Generation, log)
	if err != nil {
		log.Error("Failed to initialize generation client", "error", err)
		return err
	}

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Store:     store,
		Generator: generator,
		ChatLocks: handlers.NewChatLocker(),
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return err
	}

	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return err
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return err
	}
	if err := telegram.SetMyCommands(ctx, tg, log, cmdHandlers); err != nil {
		log.Error("Failed to publish command menu", "error", err)
		return err
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return err
	}

	app := bot.NewBot(log, cfg, db, store, generator, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return runErr
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return nil
}

// clearDatabase removes the configured database file, dropping all chat
// records and pending actions.
func clearDatabase(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	path := database.ExtractDBNameFromPath(cfg.Database.Path)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No database file at %s, nothing to do.\n", path)
			return nil
		}
		return fmt.Errorf("failed to remove database file: %w", err)
	}

	fmt.Printf("Removed database file %s.\n", path)
	return nil
}

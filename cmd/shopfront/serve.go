package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/shopfront"
	httpadapter "github.com/aretw0/shopfront/internal/adapters/http"
	"github.com/aretw0/shopfront/internal/adapters/telegram"
	"github.com/aretw0/shopfront/internal/config"
	"github.com/aretw0/shopfront/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot and the ops HTTP server",
	Long:  `Starts the conversation engine against Redis, long-polls Telegram for updates, and serves /healthz and /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if cfg.Telegram.Token == "" {
			fmt.Println("Error: telegram token is not configured (TG_BOT_TOKEN)")
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		bot, err := shopfront.New(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing shopfront: %v\n", err)
			os.Exit(1)
		}
		defer bot.Close()

		startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := bot.Ping(startupCtx); err != nil {
			cancel()
			fmt.Printf("Error reaching session store: %v\n", err)
			os.Exit(1)
		}
		cancel()

		tg := telegram.NewClient(cfg.Telegram.Token, telegram.WithLogger(logger))
		poller := telegram.NewPoller(tg, bot.Engine, logger)

		ops := &http.Server{
			Addr:    cfg.Ops.Addr,
			Handler: httpadapter.NewHandler(bot.Registry, bot.Ping),
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		group, ctx := errgroup.WithContext(ctx)

		group.Go(func() error {
			logger.Info("polling telegram for updates")
			return poller.Run(ctx)
		})

		group.Go(func() error {
			logger.Info("ops server listening", "addr", ops.Addr)
			if err := ops.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		group.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return ops.Shutdown(shutdownCtx)
		})

		if err := group.Wait(); err != nil && err != context.Canceled {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Shopfront stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/shopfront"
	"github.com/aretw0/shopfront/internal/adapters/terminal"
	"github.com/aretw0/shopfront/internal/config"
	"github.com/aretw0/shopfront/internal/logging"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Drive the conversation from the terminal",
	Long:  `Runs the engine against an in-memory session store and the configured commerce backend, reading turns from stdin. Button presses are simulated by number.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		if !terminal.Interactive() {
			fmt.Println("chat requires an interactive terminal")
			os.Exit(1)
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))

		bot, err := shopfront.NewLocal(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing shopfront: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		session := terminal.New(bot.Engine, "local-chat", os.Stdin, os.Stdout)
		if err := session.Run(ctx); err != nil && err != io.EOF && err != context.Canceled {
			fmt.Printf("Chat error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tgdesk/ticketbot"
	"github.com/tgdesk/ticketbot/config"
	"github.com/tgdesk/ticketbot/logging"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticketbot",
		Short: "Telegram ticket workflow bot",
		Long:  `Ticketbot collects service requests field by field in private chats and posts them as trackable ticket messages with lifecycle buttons.`,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		token      string
		adminID    int64
		dataDir    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadFromFile(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				cfg = loaded
			}
			if token != "" {
				cfg.Token = token
			}
			if adminID != 0 {
				cfg.AdminID = adminID
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}

			logging.Init(cfg.LogLevel(), cfg.LogFormat, nil)

			bot, err := ticketbot.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := bot.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()
			bot.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file (JSON or YAML)")
	cmd.Flags().StringVar(&token, "token", "", "bot token (overrides config)")
	cmd.Flags().Int64Var(&adminID, "admin-id", 0, "admin user id (overrides config)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "data directory (overrides config)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show ticketbot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ticketbot v%s\n", version)
		},
	}
}

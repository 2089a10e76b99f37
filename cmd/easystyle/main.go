package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/easy-style/internal/common"
	"github.com/Veraticus/easy-style/internal/config"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "easystyle",
		Short: "👗 AI styling assistant",
		Long: `easystyle: restyle a photo from a short prompt, find matching products,
and turn the ones you like into purchase requests.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/easystyle/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "database path (default: "+config.DefaultDatabasePath+")")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("database.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(styleCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(purchasesCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if err := config.Prepare(viper.GetViper(), cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}
	if err := setupLogging(cfg.Logging); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	appConfig = cfg
	return nil
}

func setupLogging(cfg config.LoggingConfig) error {
	level, err := common.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	return common.SetupLogger(level, cfg.Format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "easystyle %s\n", version)
		},
	}
}

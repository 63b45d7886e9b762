package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	"ainewsdaily/db"
	"ainewsdaily/internal/cache"
	"ainewsdaily/internal/config"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "newsroom",
	Short: "Daily AI newspaper generation job",
	Long: `newsroom drafts the day's AI news, illustrates and narrates it, uploads the
media and stores the edition.

Example usage:
  newsroom generate                  # Edition for today
  newsroom generate --date 2026-03-02
  newsroom sweep                     # Only apply the retention window
  newsroom clear --yes               # Empty news and daily_metadata`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd, sweepCmd, clearCmd)
}

func initConfig() error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	config.LoadEnvFiles()

	var err error
	cfg, err = config.Load()
	return err
}

func connectDB(ctx context.Context) *sql.DB {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	conn, err := db.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	return conn
}

// editionCache is disabled, not fatal, when Redis is unreachable.
func editionCache(ctx context.Context) *cache.EditionCache {
	rdb, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, skipping cache invalidation", "error", err)
		rdb = nil
	}
	return cache.NewEditionCache(rdb, cache.DefaultTTL)
}

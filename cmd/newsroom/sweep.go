package main

import (
	"log"
	"time"

	"ainewsdaily/internal/pipeline"
	"ainewsdaily/internal/repository"

	"github.com/spf13/cobra"
)

var sweepInclusive bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete news and daily metadata outside the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireDatabase(); err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		ctx := cmd.Context()

		conn := connectDB(ctx)
		defer conn.Close()

		policy := pipeline.Policy{Days: cfg.RetentionDays, Inclusive: sweepInclusive}
		pipeline.Sweep(ctx, repository.NewNewsRepository(conn), policy, time.Now())

		if _, err := editionCache(ctx).Invalidate(ctx); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepInclusive, "inclusive", false, "also delete rows exactly at the cutoff")
}

package main

import (
	"errors"
	"fmt"
	"log"

	"ainewsdaily/internal/pipeline"
	"ainewsdaily/internal/repository"

	"github.com/spf13/cobra"
)

var confirmClear bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every news item and daily metadata row",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmClear {
			return errors.New("refusing to clear without --yes")
		}

		if err := cfg.RequireDatabase(); err != nil {
			log.Fatalf("error loading config: %v", err)
		}

		ctx := cmd.Context()

		conn := connectDB(ctx)
		defer conn.Close()

		if _, err := pipeline.Clear(ctx, repository.NewNewsRepository(conn)); err != nil {
			return fmt.Errorf("error clearing tables: %w", err)
		}

		if _, err := editionCache(ctx).Invalidate(ctx); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&confirmClear, "yes", false, "confirm deletion of all rows")
}

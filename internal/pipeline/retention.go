package pipeline

import (
	"context"
	"log/slog"
	"time"
)

const DefaultRetentionDays = 7

// Policy decides which rows the sweep removes: created_at before now minus
// Days, or on that cutoff too when Inclusive is set.
type Policy struct {
	Days      int
	Inclusive bool
}

func (p Policy) Cutoff(now time.Time) time.Time {
	days := p.Days
	if days <= 0 {
		days = DefaultRetentionDays
	}
	return now.UTC().AddDate(0, 0, -days)
}

type SweepResult struct {
	News     int64
	Metadata int64
}

// Sweep deletes expired news and daily metadata. Each table is swept
// independently; a failure is logged and the other table still runs.
func Sweep(ctx context.Context, store Sweeper, policy Policy, now time.Time) SweepResult {
	var result SweepResult
	cutoff := policy.Cutoff(now)

	n, err := store.DeleteNewsOlderThan(ctx, cutoff, policy.Inclusive)
	if err != nil {
		slog.Error("retention sweep failed", "table", "news", "cutoff", cutoff, "error", err)
	} else {
		result.News = n
	}

	m, err := store.DeleteDailyMetadataOlderThan(ctx, cutoff, policy.Inclusive)
	if err != nil {
		slog.Error("retention sweep failed", "table", "daily_metadata", "cutoff", cutoff, "error", err)
	} else {
		result.Metadata = m
	}

	slog.Info("retention sweep finished", "cutoff", cutoff, "inclusive", policy.Inclusive, "news", result.News, "daily_metadata", result.Metadata)
	return result
}

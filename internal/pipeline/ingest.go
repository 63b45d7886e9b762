package pipeline

import (
	"context"
	"log/slog"

	"ainewsdaily/internal/model"
)

// Writer persists generated rows. Failures are logged and reported back as
// false so the run keeps going.
type Writer struct {
	store NewsStore
}

func NewWriter(store NewsStore) *Writer {
	return &Writer{store: store}
}

func (w *Writer) InsertNews(ctx context.Context, item *model.NewsItem) bool {
	if err := w.store.InsertNews(ctx, item); err != nil {
		slog.Error("news insert failed", "title", item.Title, "error", err)
		return false
	}

	slog.Info("news inserted", "id", item.ID, "title", item.Title, "relevance", item.RelevanceScore)
	return true
}

func (w *Writer) InsertDailyMetadata(ctx context.Context, meta *model.DailyMetadata) bool {
	inserted, err := w.store.InsertDailyMetadata(ctx, meta)
	if err != nil {
		slog.Error("daily metadata insert failed", "date", meta.Date, "error", err)
		return false
	}

	if !inserted {
		slog.Warn("daily metadata already exists, keeping the first one", "date", meta.Date)
		return false
	}

	return true
}

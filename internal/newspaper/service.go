// Package newspaper reads editions from the store and lays them out as the
// pages of a daily newspaper.
package newspaper

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"ainewsdaily/internal/metrics"
	"ainewsdaily/internal/model"
)

type NewsReader interface {
	GetNewsSince(ctx context.Context, since time.Time) ([]model.NewsItem, error)
	GetNewsByID(ctx context.Context, id string) (*model.NewsItem, error)
	GetDailyMetadata(ctx context.Context, date string) (*model.DailyMetadata, error)
}

type EditionCache interface {
	Get(ctx context.Context, view string) ([]model.Edition, bool)
	Set(ctx context.Context, view string, editions []model.Edition)
}

const (
	DefaultRecentDays  = 7
	DefaultArchiveDays = 15
)

// Service is the read side. Store failures never surface as errors from the
// edition windows; callers get an empty slice and render fallback content.
type Service struct {
	store       NewsReader
	cache       EditionCache
	recentDays  int
	archiveDays int
	now         func() time.Time
}

func NewService(store NewsReader, cache EditionCache, recentDays, archiveDays int) *Service {
	if recentDays <= 0 {
		recentDays = DefaultRecentDays
	}
	if archiveDays <= 0 {
		archiveDays = DefaultArchiveDays
	}
	return &Service{
		store:       store,
		cache:       cache,
		recentDays:  recentDays,
		archiveDays: archiveDays,
		now:         time.Now,
	}
}

func (s *Service) Today(ctx context.Context) []model.Edition {
	return s.window(ctx, "today", 1)
}

func (s *Service) Recent(ctx context.Context, days int) []model.Edition {
	if days <= 0 {
		days = s.recentDays
	}
	return s.window(ctx, "recent:"+strconv.Itoa(days), days)
}

func (s *Service) Archive(ctx context.Context) []model.Edition {
	return s.window(ctx, "archive:"+strconv.Itoa(s.archiveDays), s.archiveDays)
}

// Since is the start of the window covering the last days calendar days,
// today included.
func Since(now time.Time, days int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}

func (s *Service) window(ctx context.Context, view string, days int) []model.Edition {
	if s.cache != nil {
		if editions, ok := s.cache.Get(ctx, view); ok {
			metrics.EditionReads.WithLabelValues(view, "cache").Inc()
			return editions
		}
	}

	items, err := s.store.GetNewsSince(ctx, Since(s.now(), days))
	if err != nil {
		slog.Error("error fetching editions", "view", view, "error", err)
		metrics.EditionReads.WithLabelValues(view, "empty").Inc()
		return []model.Edition{}
	}

	editions := model.GroupByDate(items)
	if len(editions) == 0 {
		metrics.EditionReads.WithLabelValues(view, "empty").Inc()
		return []model.Edition{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, view, editions)
	}
	metrics.EditionReads.WithLabelValues(view, "store").Inc()
	return editions
}

// Item returns nil, nil when the item does not exist or was swept.
func (s *Service) Item(ctx context.Context, id string) (*model.NewsItem, error) {
	return s.store.GetNewsByID(ctx, id)
}

func (s *Service) Podcast(ctx context.Context, date string) (*model.DailyMetadata, error) {
	return s.store.GetDailyMetadata(ctx, date)
}

// Newspaper assembles today's paper: the newest recent edition up front and
// the rest of the archive window behind it.
func (s *Service) Newspaper(ctx context.Context) Newspaper {
	now := s.now().UTC()
	recent := s.Recent(ctx, s.recentDays)
	archive := s.Archive(ctx)

	var podcast *model.DailyMetadata
	if current, ok := latest(FilterDisplayable(recent)); ok {
		meta, err := s.Podcast(ctx, current.Date)
		if err != nil {
			slog.Warn("error fetching podcast", "date", current.Date, "error", err)
		}
		podcast = meta
	}

	return Build(recent, archive, podcast, now)
}

// Package pipeline runs the daily generation job: retention sweep, drafting,
// media synthesis, publication and ingestion, strictly in sequence.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/pkg/feeds"
	"ainewsdaily/pkg/llm"
)

type NewsStore interface {
	InsertNews(ctx context.Context, item *model.NewsItem) error
	InsertDailyMetadata(ctx context.Context, meta *model.DailyMetadata) (bool, error)
	Sweeper
}

type Sweeper interface {
	DeleteNewsOlderThan(ctx context.Context, cutoff time.Time, inclusive bool) (int64, error)
	DeleteDailyMetadataOlderThan(ctx context.Context, cutoff time.Time, inclusive bool) (int64, error)
}

type HeadlineSource interface {
	Fetch(ctx context.Context, limit int) ([]feeds.Headline, error)
}

type Publisher interface {
	Publish(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context) (int, error)
}

type Report struct {
	Generated int
	Inserted  int
	Failed    int
	Images    int
	Audio     int
	Podcast   bool
	Metadata  bool
	Swept     SweepResult
}

func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generated", r.Generated),
		slog.Int("inserted", r.Inserted),
		slog.Int("failed", r.Failed),
		slog.Int("images", r.Images),
		slog.Int("audio", r.Audio),
		slog.Bool("podcast", r.Podcast),
		slog.Bool("daily_metadata", r.Metadata),
		slog.Int64("swept_news", r.Swept.News),
		slog.Int64("swept_daily_metadata", r.Swept.Metadata),
	)
}

type Pipeline struct {
	store       NewsStore
	generator   *Generator
	media       *Synthesizer
	writer      *Writer
	completer   llm.Completer
	cache       CacheInvalidator
	policy      Policy
	callTimeout time.Duration
	runTimeout  time.Duration
	now         func() time.Time
}

type Options struct {
	Store       NewsStore
	Completer   llm.Completer
	Headlines   HeadlineSource
	Media       *Synthesizer
	Cache       CacheInvalidator
	Policy      Policy
	CallTimeout time.Duration
	RunTimeout  time.Duration
}

func New(opts Options) *Pipeline {
	return &Pipeline{
		store:       opts.Store,
		generator:   NewGenerator(opts.Completer, opts.Headlines, opts.CallTimeout),
		media:       opts.Media,
		writer:      NewWriter(opts.Store),
		completer:   opts.Completer,
		cache:       opts.Cache,
		policy:      opts.Policy,
		callTimeout: opts.CallTimeout,
		runTimeout:  opts.RunTimeout,
		now:         time.Now,
	}
}

// Run produces the edition for target. Provider and store failures are soft;
// the only error returned is the run's own deadline or cancellation.
func (p *Pipeline) Run(ctx context.Context, target time.Time) (Report, error) {
	ctx, cancel := withCallTimeout(ctx, p.runTimeout)
	defer cancel()

	target = target.UTC()
	var report Report

	slog.Info("generation run started", "target", target.Format(model.DateLayout), "model", p.completer.Name())

	report.Swept = Sweep(ctx, p.store, p.policy, p.now())

	drafts, err := p.generator.Generate(ctx, target)
	if err != nil {
		slog.Error("news generation failed", "error", err)
	}
	report.Generated = len(drafts)

	if len(drafts) == 0 {
		slog.Warn("no news items generated, nothing to ingest", "target", target.Format(model.DateLayout))
	}

	for _, d := range drafts {
		if ctx.Err() != nil {
			break
		}

		item := model.NewsItem{
			Title:          d.Title,
			Summary:        d.Summary,
			Content:        d.Summary,
			RelevanceScore: d.RelevanceScore.Clamp(),
			OriginalURL:    d.OriginalURL,
			CreatedAt:      target,
		}

		item.ImageURL = p.media.Illustrate(ctx, d.Title)
		if item.ImageURL != "" {
			report.Images++
		}

		item.AudioURL = p.media.Narrate(ctx, d)
		if item.AudioURL != "" {
			report.Audio++
		}

		if p.writer.InsertNews(ctx, &item) {
			report.Inserted++
		} else {
			report.Failed++
		}
	}

	if len(drafts) > 0 && ctx.Err() == nil {
		p.podcast(ctx, target, drafts, &report)
	}

	if p.cache != nil {
		if removed, err := p.cache.Invalidate(ctx); err != nil {
			slog.Warn("edition cache invalidation failed", "error", err)
		} else {
			slog.Info("edition cache invalidated", "keys", removed)
		}
	}

	slog.Info("generation run finished", "report", report)
	return report, ctx.Err()
}

func (p *Pipeline) podcast(ctx context.Context, target time.Time, drafts []llm.NewsDraft, report *Report) {
	callCtx, cancel := withCallTimeout(ctx, p.callTimeout)
	script, err := llm.WritePodcastScript(callCtx, p.completer, target, drafts)
	cancel()
	if err != nil {
		slog.Error("podcast script failed", "error", err)
		return
	}

	meta := &model.DailyMetadata{
		Date:          target.Format(model.DateLayout),
		PodcastScript: script,
		PodcastURL:    p.media.Podcast(ctx, script),
		CreatedAt:     target,
	}
	report.Podcast = meta.PodcastURL != ""
	report.Metadata = p.writer.InsertDailyMetadata(ctx, meta)
}

type Clearer interface {
	ClearNews(ctx context.Context) (int64, error)
	ClearDailyMetadata(ctx context.Context) (int64, error)
}

// Clear empties the news and daily_metadata tables.
func Clear(ctx context.Context, store Clearer) (SweepResult, error) {
	var result SweepResult

	news, err := store.ClearNews(ctx)
	if err != nil {
		return result, err
	}
	result.News = news

	meta, err := store.ClearDailyMetadata(ctx)
	if err != nil {
		return result, err
	}
	result.Metadata = meta

	slog.Info("tables cleared", "news", news, "daily_metadata", meta)
	return result, nil
}

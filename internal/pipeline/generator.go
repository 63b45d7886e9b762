package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"ainewsdaily/pkg/feeds"
	"ainewsdaily/pkg/llm"
)

const headlineLimit = 20

// Generator drafts an edition's news items, highest relevance first.
type Generator struct {
	completer   llm.Completer
	headlines   HeadlineSource
	callTimeout time.Duration
}

func NewGenerator(completer llm.Completer, headlines HeadlineSource, callTimeout time.Duration) *Generator {
	return &Generator{completer: completer, headlines: headlines, callTimeout: callTimeout}
}

func (g *Generator) Generate(ctx context.Context, target time.Time) ([]llm.NewsDraft, error) {
	brief := llm.Brief{Date: target, Headlines: g.grounding(ctx)}

	callCtx, cancel := withCallTimeout(ctx, g.callTimeout)
	defer cancel()

	drafts, err := llm.DraftNews(callCtx, g.completer, brief)
	if err != nil {
		return nil, err
	}

	SortByRelevance(drafts)

	slog.Info("news drafted", "model", g.completer.Name(), "count", len(drafts), "grounding", len(brief.Headlines))
	return drafts, nil
}

// grounding is best effort: no feeds or failed feeds give an empty list.
func (g *Generator) grounding(ctx context.Context) []string {
	if g.headlines == nil {
		return nil
	}

	callCtx, cancel := withCallTimeout(ctx, g.callTimeout)
	defer cancel()

	headlines, err := g.headlines.Fetch(callCtx, headlineLimit)
	if err != nil {
		slog.Warn("headline grounding unavailable", "error", err)
		return nil
	}

	return headlineLines(headlines)
}

func headlineLines(headlines []feeds.Headline) []string {
	lines := make([]string, 0, len(headlines))
	for _, h := range headlines {
		lines = append(lines, h.String())
	}
	return lines
}

// SortByRelevance orders drafts by descending score. Ties keep the model's order.
func SortByRelevance(drafts []llm.NewsDraft) {
	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].RelevanceScore > drafts[j].RelevanceScore
	})
}

func withCallTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

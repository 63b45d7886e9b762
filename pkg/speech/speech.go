package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrAllProvidersFailed = errors.New("all speech providers failed")

// Provider turns narration text into MP3 audio.
type Provider interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Name() string
}

// Chain tries its providers in order and returns the first non-empty audio.
type Chain struct {
	providers []Provider
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

func (c *Chain) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, ">")
}

func (c *Chain) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty narration")
	}

	var errs []error
	for _, p := range c.providers {
		audio, err := p.Synthesize(ctx, text)
		if err == nil && len(audio) == 0 {
			err = fmt.Errorf("empty audio")
		}
		if err != nil {
			slog.Warn("speech provider failed", "provider", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return audio, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}

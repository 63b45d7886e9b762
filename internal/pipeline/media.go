package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"ainewsdaily/internal/segment"
	"ainewsdaily/pkg/llm"
	"ainewsdaily/pkg/speech"
	"ainewsdaily/pkg/storage"
)

const maxImageBytes = 20 << 20

// Synthesizer produces and publishes the media for news items and the
// podcast. Every method returns an empty URL instead of an error; a missing
// image or audio never stops an item.
type Synthesizer struct {
	images      llm.ImageGenerator
	voice       speech.Provider
	publisher   Publisher
	namer       *storage.Namer
	httpClient  *http.Client
	callTimeout time.Duration
}

func NewSynthesizer(images llm.ImageGenerator, voice speech.Provider, publisher Publisher, namer *storage.Namer, callTimeout time.Duration) *Synthesizer {
	return &Synthesizer{
		images:      images,
		voice:       voice,
		publisher:   publisher,
		namer:       namer,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		callTimeout: callTimeout,
	}
}

// Illustrate returns the published image URL, the model's temporary URL when
// publishing fails, or "" when no image could be generated.
func (s *Synthesizer) Illustrate(ctx context.Context, title string) string {
	callCtx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	tempURL, err := s.images.GenerateImage(callCtx, llm.ImagePrompt(title))
	if err != nil {
		slog.Error("image generation failed", "title", title, "error", err)
		return ""
	}

	data, contentType, err := s.download(callCtx, tempURL)
	if err != nil {
		slog.Warn("image download failed, keeping temporary url", "title", title, "error", err)
		return tempURL
	}

	url, err := s.publisher.Publish(callCtx, data, s.namer.NewsImage(imageExt(contentType)), contentType)
	if err != nil {
		slog.Warn("image upload failed, keeping temporary url", "title", title, "error", err)
		return tempURL
	}

	return url
}

// Narrate voices the item's lead and analysis, without the priority,
// recommendation and source markers.
func (s *Synthesizer) Narrate(ctx context.Context, draft llm.NewsDraft) string {
	text := segment.Parse(draft.Summary, draft.OriginalURL).Narrative()
	if text == "" {
		text = draft.Title
	}

	return s.publishSpeech(ctx, text, s.namer.NewsAudio(), "title", draft.Title)
}

func (s *Synthesizer) Podcast(ctx context.Context, script string) string {
	return s.publishSpeech(ctx, script, s.namer.Podcast(), "kind", "podcast")
}

func (s *Synthesizer) publishSpeech(ctx context.Context, text, filename string, logKey, logValue string) string {
	callCtx, cancel := withCallTimeout(ctx, s.callTimeout)
	defer cancel()

	audio, err := s.voice.Synthesize(callCtx, text)
	if err != nil {
		slog.Error("speech synthesis failed", logKey, logValue, "error", err)
		return ""
	}

	url, err := s.publisher.Publish(callCtx, audio, filename, storage.ContentTypeMP3)
	if err != nil {
		slog.Error("audio upload failed", logKey, logValue, "error", err)
		return ""
	}

	return url
}

func (s *Synthesizer) download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("image request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("image read: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("image is empty")
	}

	contentType := storage.ContentTypePNG
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && strings.HasPrefix(mt, "image/") {
		contentType = mt
	}

	return data, contentType, nil
}

func imageExt(contentType string) string {
	switch contentType {
	case storage.ContentTypeJPEG:
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}

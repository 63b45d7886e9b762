package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	elevenLabsBaseURL = "https://api.elevenlabs.io/v1"
	DefaultVoiceID    = "7QQzpAyzlKTVrRzQJmTE"
	elevenLabsModel   = "eleven_multilingual_v2"
)

type ElevenLabsClient struct {
	apiKey     string
	voiceID    string
	httpClient *http.Client
}

func NewElevenLabsClient(apiKey, voiceID string) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	return &ElevenLabsClient{
		apiKey:     apiKey,
		voiceID:    voiceID,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (c *ElevenLabsClient) Name() string {
	return "ElevenLabs"
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(elRequest{
		Text:    text,
		ModelID: elevenLabsModel,
		VoiceSettings: elVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("elevenlabs encode: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", elevenLabsBaseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs read: %w", err)
	}

	return audio, nil
}

type elRequest struct {
	Text          string          `json:"text"`
	ModelID       string          `json:"model_id"`
	VoiceSettings elVoiceSettings `json:"voice_settings"`
}

type elVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

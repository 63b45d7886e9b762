package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAISpeech struct {
	client *openai.Client
}

func NewOpenAISpeech(apiKey string, opts ...option.RequestOption) *OpenAISpeech {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(2)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAISpeech{client: &client}
}

func (s *OpenAISpeech) Name() string {
	return "OpenAI TTS"
}

func (s *OpenAISpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModelTTS1,
		Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech error: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai speech read: %w", err)
	}

	return audio, nil
}

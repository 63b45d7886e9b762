package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/openai/openai-go/option"
)

func TestOpenAISpeechSynthesize(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	s := NewOpenAISpeech("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	audio, err := s.Synthesize(context.Background(), "Hola")

	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "/audio/speech", gotPath)
	assert.Equal(t, "tts-1", gotBody["model"])
	assert.Equal(t, "alloy", gotBody["voice"])
	assert.Equal(t, "Hola", gotBody["input"])
}

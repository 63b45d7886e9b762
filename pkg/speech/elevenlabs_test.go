package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func newTestElevenLabs(t *testing.T, handler http.HandlerFunc) *ElevenLabsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewElevenLabsClient("test-key", "")
	client.httpClient = srv.Client()
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestElevenLabsSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody elRequest

	client := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-audio"))
	})

	audio, err := client.Synthesize(context.Background(), "Buenos días")

	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("ID3-audio"), audio)
	assert.Equal(t, "/v1/text-to-speech/"+DefaultVoiceID, gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Buenos días", gotBody.Text)
	assert.Equal(t, "eleven_multilingual_v2", gotBody.ModelID)
	assert.Equal(t, 0.5, gotBody.VoiceSettings.Stability)
	assert.Equal(t, 0.75, gotBody.VoiceSettings.SimilarityBoost)
}

func TestElevenLabsSynthesize_ErrorStatus(t *testing.T) {
	client := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	})

	audio, err := client.Synthesize(context.Background(), "Buenos días")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(audio))
}

func TestOpenAISpeechFallback(t *testing.T) {
	failing := newTestElevenLabs(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	secondary := &fakeProvider{name: "OpenAI TTS", audio: []byte("mp3")}
	audio, err := NewChain(failing, secondary).Synthesize(context.Background(), "texto")

	assert.Equal(t, nil, err)
	assert.Equal(t, []byte("mp3"), audio)
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"ainewsdaily/internal/model"
	"ainewsdaily/internal/newspaper"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(ctx context.Context) error {
	return f.err
}

func newTestPageRouter(t *testing.T, service NewspaperService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := LoadTemplates()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", NewPageHandler(service).GetNewspaper)
	return r
}

func TestGetNewspaper(t *testing.T) {
	item := testItem(newsID)
	paper := newspaper.Build(
		[]model.Edition{{Date: "2026-03-10", News: []model.NewsItem{item}}},
		nil,
		&model.DailyMetadata{Date: "2026-03-10", PodcastURL: "https://cdn.example.com/media/podcast_1.mp3"},
		testNow,
	)

	w := serve(newTestPageRouter(t, &fakeService{paper: paper}), "GET", "/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "OpenAI presenta un nuevo modelo"))
	assert.Equal(t, true, strings.Contains(body, "martes, 10 de marzo"))
	assert.Equal(t, true, strings.Contains(body, "podcast_1.mp3"))
	assert.Equal(t, true, strings.Contains(body, `data-mode="speech"`))
	assert.Equal(t, true, strings.Contains(body, "band-alert"))
	assert.Equal(t, true, strings.Contains(body, "Evaluar la migración."))
	assert.Equal(t, false, strings.Contains(body, "Prioridad: ALTA"))
}

func TestGetNewspaper_Placeholder(t *testing.T) {
	paper := newspaper.Build(nil, nil, nil, testNow)

	w := serve(newTestPageRouter(t, &fakeService{paper: paper}), "GET", "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "Bienvenido a Noticias IA Diarias"))
	assert.Equal(t, true, strings.Contains(w.Body.String(), "No hay noticias en la hemeroteca"))
}

func TestGetHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", NewHealthHandler(&fakePinger{}).GetHealth)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/health").Code)

	r = gin.New()
	r.GET("/health", NewHealthHandler(&fakePinger{err: errors.New("down")}).GetHealth)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, "GET", "/health").Code)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/internal/newspaper"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

const (
	newsID  = "0b6f7c7e-1c2d-4e5f-8a9b-0c1d2e3f4a5b"
	otherID = "9d8c7b6a-5f4e-4d3c-8b2a-190817161514"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

type fakeService struct {
	today   []model.Edition
	recent  []model.Edition
	days    int
	item    *model.NewsItem
	podcast *model.DailyMetadata
	paper   newspaper.Newspaper
	err     error
}

func (f *fakeService) Today(ctx context.Context) []model.Edition {
	return f.today
}

func (f *fakeService) Recent(ctx context.Context, days int) []model.Edition {
	f.days = days
	return f.recent
}

func (f *fakeService) Item(ctx context.Context, id string) (*model.NewsItem, error) {
	if f.item != nil && f.item.ID != id {
		return nil, f.err
	}
	return f.item, f.err
}

func (f *fakeService) Podcast(ctx context.Context, date string) (*model.DailyMetadata, error) {
	return f.podcast, f.err
}

func (f *fakeService) Newspaper(ctx context.Context) newspaper.Newspaper {
	return f.paper
}

func testItem(id string) model.NewsItem {
	return model.NewsItem{
		ID:             id,
		Title:          "OpenAI presenta un nuevo modelo",
		Summary:        "El modelo mejora el razonamiento. Llega a todos los usuarios. Se espera competencia.\nPrioridad: ALTA\nRecomendación: Evaluar la migración.",
		ImageURL:       "https://cdn.example.com/media/news-image-1.png",
		OriginalURL:    "https://openai.com/blog/model",
		RelevanceScore: 9,
		CreatedAt:      testNow,
	}
}

func newTestNewsRouter(service NewspaperService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewNewsHandler(service)
	r.GET("/editions/today", h.GetToday)
	r.GET("/editions", h.GetEditions)
	r.GET("/archive", h.GetArchive)
	r.GET("/news/:id", h.GetNews)
	r.GET("/news/:id/audio", h.GetNewsAudio)
	r.GET("/podcast/:date", h.GetPodcast)
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetToday(t *testing.T) {
	hidden := testItem(otherID)
	hidden.ImageURL = ""
	service := &fakeService{today: []model.Edition{{Date: "2026-03-10", News: []model.NewsItem{testItem(newsID), hidden}}}}

	w := serve(newTestNewsRouter(service), "GET", "/editions/today")

	assert.Equal(t, http.StatusOK, w.Code)

	var res EditionsResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 1, len(res.Editions))
	assert.Equal(t, "martes, 10 de marzo", res.Editions[0].Label)
	assert.Equal(t, 1, len(res.Editions[0].News))
	assert.Equal(t, newsID, res.Editions[0].News[0].ID)
}

func TestGetToday_Empty(t *testing.T) {
	w := serve(newTestNewsRouter(&fakeService{}), "GET", "/editions/today")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"editions":[]}`, w.Body.String())
}

func TestGetEditions_DaysClamped(t *testing.T) {
	service := &fakeService{}
	r := newTestNewsRouter(service)

	serve(r, "GET", "/editions?days=3")
	assert.Equal(t, 3, service.days)

	serve(r, "GET", "/editions?days=90")
	assert.Equal(t, 15, service.days)

	serve(r, "GET", "/editions?days=abc")
	assert.Equal(t, 7, service.days)

	serve(r, "GET", "/editions?days=-2")
	assert.Equal(t, 1, service.days)
}

func TestGetArchive(t *testing.T) {
	service := &fakeService{paper: newspaper.Newspaper{
		Date: "2026-03-10",
		Archive: []newspaper.ArchiveDay{{
			Date:    "2026-03-09",
			Label:   "lunes, 9 de marzo",
			Entries: []newspaper.IndexEntry{{ID: otherID, Title: "Ayer", Relevance: 6, Band: "MED"}},
		}},
	}}

	w := serve(newTestNewsRouter(service), "GET", "/archive")

	assert.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Current string               `json:"current"`
		Days    []ArchiveDayResponse `json:"days"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, "2026-03-10", res.Current)
	assert.Equal(t, 1, len(res.Days))
	assert.Equal(t, "MED", res.Days[0].Entries[0].Band)
}

func TestGetNews(t *testing.T) {
	item := testItem(newsID)
	w := serve(newTestNewsRouter(&fakeService{item: &item}), "GET", "/news/"+newsID)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ArticleResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, newsID, res.ID)
	assert.Equal(t, "ALERT", string(res.Band))
	assert.Equal(t, "HIGH", string(res.Segments.Priority))
	assert.Equal(t, "El modelo mejora el razonamiento. Llega a todos los usuarios.", res.Segments.Lead)
	assert.Equal(t, "Se espera competencia.", res.Segments.Analysis)
	assert.Equal(t, "Evaluar la migración.", res.Segments.Recommendation)
	assert.Equal(t, []string{"https://openai.com/blog/model"}, res.Segments.Sources)
	assert.Equal(t, "speech", res.Playback.Mode)
	assert.Equal(t, "es-ES", res.Playback.Lang)
}

func TestGetNews_InvalidID(t *testing.T) {
	w := serve(newTestNewsRouter(&fakeService{}), "GET", "/news/mock-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNews_NotFound(t *testing.T) {
	w := serve(newTestNewsRouter(&fakeService{}), "GET", "/news/"+newsID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNews_NotDisplayable(t *testing.T) {
	item := testItem(newsID)
	item.OriginalURL = ""

	w := serve(newTestNewsRouter(&fakeService{item: &item}), "GET", "/news/"+newsID)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNews_DBError(t *testing.T) {
	w := serve(newTestNewsRouter(&fakeService{err: errors.New("DB down")}), "GET", "/news/"+newsID)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetNewsAudio(t *testing.T) {
	item := testItem(newsID)
	item.AudioURL = "https://cdn.example.com/media/news-audio-1.mp3"

	w := serve(newTestNewsRouter(&fakeService{item: &item}), "GET", "/news/"+newsID+"/audio")

	assert.Equal(t, http.StatusOK, w.Code)

	var res PlaybackResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, "audio", res.Mode)
	assert.Equal(t, item.AudioURL, res.URL)
}

func TestGetPodcast(t *testing.T) {
	service := &fakeService{podcast: &model.DailyMetadata{
		Date:          "2026-03-10",
		PodcastURL:    "https://cdn.example.com/media/podcast_1.mp3",
		PodcastScript: "Hola.",
		CreatedAt:     testNow,
	}}

	w := serve(newTestNewsRouter(service), "GET", "/podcast/2026-03-10")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "podcast_1.mp3"))
}

func TestGetPodcast_Errors(t *testing.T) {
	r := newTestNewsRouter(&fakeService{})

	assert.Equal(t, http.StatusBadRequest, serve(r, "GET", "/podcast/yesterday").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, "GET", "/podcast/2026-03-10").Code)
}

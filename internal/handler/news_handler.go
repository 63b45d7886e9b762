package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/internal/newspaper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NewspaperService interface {
	Today(ctx context.Context) []model.Edition
	Recent(ctx context.Context, days int) []model.Edition
	Item(ctx context.Context, id string) (*model.NewsItem, error)
	Podcast(ctx context.Context, date string) (*model.DailyMetadata, error)
	Newspaper(ctx context.Context) newspaper.Newspaper
}

const maxWindowDays = newspaper.DefaultArchiveDays

type NewsHandler struct {
	service NewspaperService
}

func NewNewsHandler(service NewspaperService) *NewsHandler {
	return &NewsHandler{service: service}
}

func (h *NewsHandler) GetToday(c *gin.Context) {
	editions := newspaper.FilterDisplayable(h.service.Today(c.Request.Context()))
	c.JSON(http.StatusOK, toEditionsResponse(editions))
}

func (h *NewsHandler) GetEditions(c *gin.Context) {
	days := clamp(getQueryInt("days", newspaper.DefaultRecentDays, c), 1, maxWindowDays)

	editions := newspaper.FilterDisplayable(h.service.Recent(c.Request.Context(), days))
	c.JSON(http.StatusOK, toEditionsResponse(editions))
}

func (h *NewsHandler) GetArchive(c *gin.Context) {
	paper := h.service.Newspaper(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"days":    toArchiveResponse(paper.Archive),
		"current": paper.Date,
	})
}

func (h *NewsHandler) GetNews(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(newspaper.NewArticle(*item)))
}

func (h *NewsHandler) GetNewsAudio(c *gin.Context) {
	item, ok := h.lookup(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toPlaybackResponse(newspaper.NewArticle(*item).Playback))
}

func (h *NewsHandler) GetPodcast(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
		return
	}

	meta, err := h.service.Podcast(c.Request.Context(), date)
	if err != nil {
		slog.Error("error fetching podcast", "date", date, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if meta == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No podcast for this date"})
		return
	}

	c.JSON(http.StatusOK, toPodcastResponse(*meta))
}

// lookup writes the error response itself and reports false when the item
// cannot be shown.
func (h *NewsHandler) lookup(c *gin.Context) (*model.NewsItem, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
		return nil, false
	}

	item, err := h.service.Item(c.Request.Context(), id)
	if err != nil {
		slog.Error("error fetching news item", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	if item == nil || !newspaper.Displayable(*item) {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		return nil, false
	}

	return item, true
}

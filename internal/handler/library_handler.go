package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"ainewsdaily/internal/bookmark"
	"ainewsdaily/internal/metrics"
	"ainewsdaily/internal/middleware"
	"ainewsdaily/internal/model"
	"ainewsdaily/internal/newspaper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxFolderName = 100

type LibraryStore interface {
	CreateFolder(ctx context.Context, folder *model.Folder) error
	GetFolders(ctx context.Context, userID string) ([]model.Folder, error)
	GetFolder(ctx context.Context, userID, folderID string) (*model.Folder, error)
	SaveNews(ctx context.Context, saved *model.SavedNews) (bool, error)
	GetSavedNews(ctx context.Context, userID string) ([]model.SavedNews, error)
}

type NewsFinder interface {
	Item(ctx context.Context, id string) (*model.NewsItem, error)
}

type LibraryHandler struct {
	repository LibraryStore
	news       NewsFinder
}

func NewLibraryHandler(repository LibraryStore, news NewsFinder) *LibraryHandler {
	return &LibraryHandler{repository: repository, news: news}
}

func (h *LibraryHandler) GetFolders(c *gin.Context) {
	folders, err := h.repository.GetFolders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		slog.Error("error fetching folders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		res = append(res, toFolderResponse(f, 0))
	}

	c.JSON(http.StatusOK, gin.H{"root": newspaper.GeneralFolder, "folders": res})
}

func (h *LibraryHandler) CreateFolder(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Folder name is required"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxFolderName {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder name"})
		return
	}

	folder := &model.Folder{Name: name, UserID: middleware.UserID(c)}
	if err := h.repository.CreateFolder(c.Request.Context(), folder); err != nil {
		slog.Error("error creating folder", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toFolderResponse(*folder, 0))
}

func (h *LibraryHandler) GetLibrary(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	folderID := c.Query("folder")

	if folderID != "" {
		folder, ok := h.ownFolder(c, folderID)
		if !ok {
			return
		}
		folderID = folder.ID
	}

	folders, err := h.repository.GetFolders(ctx, userID)
	if err != nil {
		slog.Error("error fetching folders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	saved, err := h.repository.GetSavedNews(ctx, userID)
	if err != nil {
		slog.Error("error fetching saved news", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toLibraryResponse(newspaper.BuildLibrary(folders, saved, folderID)))
}

// SaveNews bookmarks an item. A second save of the same item is reported as
// saved with already_saved set, not as an error.
func (h *LibraryHandler) SaveNews(c *gin.Context) {
	ctx := c.Request.Context()

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "news_id is required"})
		return
	}

	if _, err := uuid.Parse(req.NewsID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid news id"})
		return
	}

	item, err := h.news.Item(ctx, req.NewsID)
	if err != nil {
		slog.Error("error fetching news item", "id", req.NewsID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		return
	}

	if req.FolderID != "" {
		if _, ok := h.ownFolder(c, req.FolderID); !ok {
			return
		}
	}

	inserted, err := h.repository.SaveNews(ctx, &model.SavedNews{
		UserID:   middleware.UserID(c),
		NewsID:   req.NewsID,
		FolderID: req.FolderID,
	})

	outcome := bookmark.Inserted
	switch {
	case err != nil:
		outcome = bookmark.Failed
	case !inserted:
		outcome = bookmark.Duplicate
	}
	m := bookmark.Settle(req.FolderID, outcome)
	metrics.BookmarkSaves.WithLabelValues(outcomeLabel(outcome)).Inc()

	res := SaveResponse{State: string(m.State()), AlreadySaved: m.AlreadySaved(), FolderID: m.FolderID()}

	switch outcome {
	case bookmark.Failed:
		slog.Error("error saving news", "news_id", req.NewsID, "error", err)
		c.JSON(http.StatusInternalServerError, res)
	case bookmark.Duplicate:
		c.JSON(http.StatusOK, res)
	default:
		c.JSON(http.StatusCreated, res)
	}
}

func outcomeLabel(o bookmark.Outcome) string {
	switch o {
	case bookmark.Inserted:
		return "inserted"
	case bookmark.Duplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

func (h *LibraryHandler) ownFolder(c *gin.Context, folderID string) (*model.Folder, bool) {
	if _, err := uuid.Parse(folderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
		return nil, false
	}

	folder, err := h.repository.GetFolder(c.Request.Context(), middleware.UserID(c), folderID)
	if err != nil {
		slog.Error("error fetching folder", "folder_id", folderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	if folder == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
		return nil, false
	}

	return folder, true
}

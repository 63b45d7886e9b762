package handler

import (
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/internal/newspaper"
	"ainewsdaily/internal/segment"
)

type NewsItemResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	ImageURL       string `json:"image_url"`
	AudioURL       string `json:"audio_url,omitempty"`
	OriginalURL    string `json:"original_url"`
	RelevanceScore int    `json:"relevance_score"`
	CreatedAt      string `json:"created_at"`
}

type EditionResponse struct {
	Date  string             `json:"date"`
	Label string             `json:"label"`
	News  []NewsItemResponse `json:"news"`
}

type EditionsResponse struct {
	Editions []EditionResponse `json:"editions"`
}

type PlaybackResponse struct {
	Mode string `json:"mode"`
	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`
	Lang string `json:"lang,omitempty"`
}

type ArticleResponse struct {
	NewsItemResponse
	Band     segment.Priority `json:"band"`
	Segments segment.Segments `json:"segments"`
	Playback PlaybackResponse `json:"playback"`
}

type IndexEntryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Relevance int    `json:"relevance"`
	Band      string `json:"band"`
	Page      int    `json:"page,omitempty"`
}

type ArchiveDayResponse struct {
	Date    string               `json:"date"`
	Label   string               `json:"label"`
	Entries []IndexEntryResponse `json:"entries"`
}

type PodcastResponse struct {
	Date          string `json:"date"`
	PodcastURL    string `json:"podcast_url,omitempty"`
	PodcastScript string `json:"podcast_script"`
	CreatedAt     string `json:"created_at"`
}

type FolderResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Count     int    `json:"count"`
}

type ClippingResponse struct {
	ID       string `json:"id"`
	NewsID   string `json:"news_id"`
	FolderID string `json:"folder_id,omitempty"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Swept    bool   `json:"swept"`
}

type LibraryResponse struct {
	Title     string             `json:"title"`
	FolderID  string             `json:"folder_id,omitempty"`
	Folders   []FolderResponse   `json:"folders"`
	Clippings []ClippingResponse `json:"clippings"`
}

type CreateFolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type SaveRequest struct {
	NewsID   string `json:"news_id" binding:"required"`
	FolderID string `json:"folder_id"`
}

type SaveResponse struct {
	State        string `json:"state"`
	AlreadySaved bool   `json:"already_saved"`
	FolderID     string `json:"folder_id,omitempty"`
}

func toNewsItemResponse(n model.NewsItem) NewsItemResponse {
	return NewsItemResponse{
		ID:             n.ID,
		Title:          n.Title,
		Summary:        n.Summary,
		ImageURL:       n.ImageURL,
		AudioURL:       n.AudioURL,
		OriginalURL:    n.OriginalURL,
		RelevanceScore: n.RelevanceScore,
		CreatedAt:      n.CreatedAt.Format(time.RFC3339),
	}
}

func toEditionsResponse(editions []model.Edition) EditionsResponse {
	res := EditionsResponse{Editions: make([]EditionResponse, 0, len(editions))}
	for _, e := range editions {
		news := make([]NewsItemResponse, len(e.News))
		for i, n := range e.News {
			news[i] = toNewsItemResponse(n)
		}
		res.Editions = append(res.Editions, EditionResponse{Date: e.Date, Label: newspaper.DateLabel(e.Date), News: news})
	}
	return res
}

func toPlaybackResponse(p newspaper.Playback) PlaybackResponse {
	return PlaybackResponse{Mode: string(p.Mode), URL: p.URL, Text: p.Text, Lang: p.Lang}
}

func toArticleResponse(a newspaper.Article) ArticleResponse {
	return ArticleResponse{
		NewsItemResponse: toNewsItemResponse(a.Item),
		Band:             a.Band,
		Segments:         a.Segments,
		Playback:         toPlaybackResponse(a.Playback),
	}
}

func toIndexEntryResponse(e newspaper.IndexEntry) IndexEntryResponse {
	return IndexEntryResponse{ID: e.ID, Title: e.Title, Relevance: e.Relevance, Band: string(e.Band), Page: e.Page}
}

func toArchiveResponse(days []newspaper.ArchiveDay) []ArchiveDayResponse {
	res := make([]ArchiveDayResponse, 0, len(days))
	for _, d := range days {
		entries := make([]IndexEntryResponse, len(d.Entries))
		for i, e := range d.Entries {
			entries[i] = toIndexEntryResponse(e)
		}
		res = append(res, ArchiveDayResponse{Date: d.Date, Label: d.Label, Entries: entries})
	}
	return res
}

func toPodcastResponse(m model.DailyMetadata) PodcastResponse {
	return PodcastResponse{
		Date:          m.Date,
		PodcastURL:    m.PodcastURL,
		PodcastScript: m.PodcastScript,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}

func toFolderResponse(f model.Folder, count int) FolderResponse {
	return FolderResponse{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt.Format(time.RFC3339), Count: count}
}

func toLibraryResponse(lib newspaper.Library) LibraryResponse {
	res := LibraryResponse{
		Title:     lib.Title,
		FolderID:  lib.FolderID,
		Folders:   make([]FolderResponse, 0, len(lib.Folders)),
		Clippings: make([]ClippingResponse, 0, len(lib.Clippings)),
	}
	for _, f := range lib.Folders {
		res.Folders = append(res.Folders, toFolderResponse(f.Folder, f.Count))
	}
	for _, c := range lib.Clippings {
		res.Clippings = append(res.Clippings, ClippingResponse{
			ID:       c.SavedID,
			NewsID:   c.NewsID,
			FolderID: c.FolderID,
			Title:    c.Title,
			Date:     c.Date,
			Swept:    c.Swept,
		})
	}
	return res
}

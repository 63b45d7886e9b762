package newspaper

import (
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/internal/segment"
)

type PageKind string

const (
	PageCover     PageKind = "cover"
	PageIndex     PageKind = "index"
	PageArticle   PageKind = "article"
	PageArchive   PageKind = "archive"
	PageLibrary   PageKind = "library"
	PageBackCover PageKind = "back_cover"
)

const (
	placeholderID    = "mock-1"
	placeholderTitle = "Bienvenido a Noticias IA Diarias"
	placeholderBody  = "Esta es una demostración de la aplicación Noticias IA Diarias. Una vez conectado a la base de datos y poblado con resúmenes generados, tus noticias diarias aparecerán aquí."
	placeholderImage = "https://images.unsplash.com/photo-1677442136019-21780ecad995"
	placeholderURL   = "https://github.com/simongpa11/AINews"
)

type Article struct {
	Item     model.NewsItem
	Segments segment.Segments
	Band     segment.Priority
	Playback Playback
	Page     int
}

type IndexEntry struct {
	ID        string
	Title     string
	Relevance int
	Band      segment.Priority
	Page      int
}

type ArchiveDay struct {
	Date    string
	Label   string
	Entries []IndexEntry
}

type Page struct {
	Number  int
	Kind    PageKind
	Article *Article
}

type Newspaper struct {
	Date        string
	DateLabel   string
	Placeholder bool
	Podcast     *model.DailyMetadata
	Index       []IndexEntry
	Articles    []Article
	Archive     []ArchiveDay
	Pages       []Page
}

// PlaceholderEdition stands in for an empty store so the paper always has
// something to show.
func PlaceholderEdition(now time.Time) model.Edition {
	now = now.UTC()
	return model.Edition{
		Date: now.Format(model.DateLayout),
		News: []model.NewsItem{{
			ID:             placeholderID,
			Title:          placeholderTitle,
			Summary:        placeholderBody,
			RelevanceScore: 10,
			ImageURL:       placeholderImage,
			OriginalURL:    placeholderURL,
			CreatedAt:      now,
		}},
	}
}

// NewArticle segments an item and resolves how it plays. Band follows the
// relevance score, the same as the archive entries; the summary's own
// priority token stays in Segments.
func NewArticle(item model.NewsItem) Article {
	seg := segment.Parse(item.Summary, item.OriginalURL)
	return Article{
		Item:     item,
		Segments: seg,
		Band:     segment.BandForScore(item.RelevanceScore),
		Playback: ResolvePlayback(item, seg),
	}
}

// Build lays out the paper. The newest displayable recent edition becomes the
// front section; older editions within the archive window go to the archive
// page. With nothing displayable the placeholder edition is used.
func Build(recent, archive []model.Edition, podcast *model.DailyMetadata, now time.Time) Newspaper {
	recent = FilterDisplayable(recent)
	archive = FilterDisplayable(archive)

	var paper Newspaper
	current, ok := latest(recent)
	if !ok {
		current = PlaceholderEdition(now)
		paper.Placeholder = true
		podcast = nil
	}

	paper.Date = current.Date
	paper.DateLabel = DateLabel(current.Date)
	paper.Podcast = podcast

	paper.Pages = append(paper.Pages, Page{Kind: PageCover}, Page{Kind: PageIndex})
	for _, item := range current.News {
		article := NewArticle(item)
		article.Page = len(paper.Pages) + 1
		paper.Articles = append(paper.Articles, article)
		paper.Index = append(paper.Index, IndexEntry{
			ID:        item.ID,
			Title:     item.Title,
			Relevance: item.RelevanceScore,
			Band:      article.Band,
			Page:      article.Page,
		})
		paper.Pages = append(paper.Pages, Page{Kind: PageArticle})
	}

	paper.Archive = archiveDays(archive, current.Date)
	paper.Pages = append(paper.Pages, Page{Kind: PageArchive}, Page{Kind: PageLibrary}, Page{Kind: PageBackCover})

	for i := range paper.Pages {
		paper.Pages[i].Number = i + 1
	}
	for i := range paper.Articles {
		paper.Pages[paper.Articles[i].Page-1].Article = &paper.Articles[i]
	}

	return paper
}

// archiveDays lists the editions other than the front one, newest first.
func archiveDays(editions []model.Edition, exclude string) []ArchiveDay {
	var days []ArchiveDay
	for i := len(editions) - 1; i >= 0; i-- {
		e := editions[i]
		if e.Date == exclude {
			continue
		}
		day := ArchiveDay{Date: e.Date, Label: DateLabel(e.Date)}
		for _, item := range e.News {
			day.Entries = append(day.Entries, IndexEntry{
				ID:        item.ID,
				Title:     item.Title,
				Relevance: item.RelevanceScore,
				Band:      segment.BandForScore(item.RelevanceScore),
			})
		}
		days = append(days, day)
	}
	return days
}

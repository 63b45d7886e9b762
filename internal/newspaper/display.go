package newspaper

import (
	"strings"

	"ainewsdaily/internal/model"
	"ainewsdaily/internal/segment"
)

// Displayable reports whether item can be shown: it needs a title, an
// image, its stored source URL and a lead.
func Displayable(item model.NewsItem) bool {
	if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.ImageURL) == "" {
		return false
	}
	if strings.TrimSpace(item.OriginalURL) == "" {
		return false
	}
	return segment.Parse(item.Summary, item.OriginalURL).Lead != ""
}

// FilterDisplayable drops items that cannot be shown and editions left empty.
func FilterDisplayable(editions []model.Edition) []model.Edition {
	out := make([]model.Edition, 0, len(editions))
	for _, e := range editions {
		var news []model.NewsItem
		for _, item := range e.News {
			if Displayable(item) {
				news = append(news, item)
			}
		}
		if len(news) > 0 {
			out = append(out, model.Edition{Date: e.Date, News: news})
		}
	}
	return out
}

func latest(editions []model.Edition) (model.Edition, bool) {
	if len(editions) == 0 {
		return model.Edition{}, false
	}
	best := editions[0]
	for _, e := range editions[1:] {
		if e.Date > best.Date {
			best = e
		}
	}
	return best, true
}

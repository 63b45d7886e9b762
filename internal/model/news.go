package model

import "time"

const DateLayout = "2006-01-02"

type NewsItem struct {
	ID             string
	Title          string
	Summary        string
	Content        string
	ImageURL       string
	AudioURL       string
	RelevanceScore int
	OriginalURL    string
	CreatedAt      time.Time
}

// Date is the UTC calendar date the item belongs to.
func (n NewsItem) Date() string {
	return n.CreatedAt.UTC().Format(DateLayout)
}

type DailyMetadata struct {
	ID            int64
	Date          string
	PodcastURL    string
	PodcastScript string
	CreatedAt     time.Time
}

// Edition is the set of news items published under one calendar date.
type Edition struct {
	Date string
	News []NewsItem
}

// GroupByDate splits items into editions keyed by the UTC calendar date of
// CreatedAt. Editions keep the order in which their first item appears.
func GroupByDate(items []NewsItem) []Edition {
	var editions []Edition
	index := make(map[string]int)

	for _, item := range items {
		date := item.Date()
		i, ok := index[date]
		if !ok {
			i = len(editions)
			index[date] = i
			editions = append(editions, Edition{Date: date})
		}
		editions[i].News = append(editions[i].News, item)
	}

	return editions
}

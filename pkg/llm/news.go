package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	MinNewsItems = 3
	MaxNewsItems = 8
	minScore     = 1
	maxScore     = 10
)

type NewsDraft struct {
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	RelevanceScore Score  `json:"relevance_score"`
	OriginalURL    string `json:"original_url"`
}

// Score is a relevance score that tolerates models answering "8" or 8.5.
// Anything unreadable decodes to 0 so one bad item never fails the batch;
// Clamp lifts it to the minimum.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) {
		*s = 0
		return nil
	}

	f = math.Max(minScore-1, math.Min(maxScore+1, f))
	*s = Score(math.Round(f))
	return nil
}

// Clamp keeps the score inside 1-10.
func (s Score) Clamp() int {
	switch {
	case int(s) < minScore:
		return minScore
	case int(s) > maxScore:
		return maxScore
	default:
		return int(s)
	}
}

// Brief is the editorial input for one edition.
type Brief struct {
	Date      time.Time
	Headlines []string
}

func (b Brief) userPrompt() string {
	var grounding string
	if len(b.Headlines) > 0 {
		var sb strings.Builder
		sb.WriteString("\nTitulares recientes que puedes usar como punto de partida:\n")
		for _, h := range b.Headlines {
			sb.WriteString(fmt.Sprintf("- %s\n", h))
		}
		grounding = sb.String()
	}

	return fmt.Sprintf(newsUserPrompt, formatDate(b.Date), MinNewsItems, MaxNewsItems, MinNewsItems+1, grounding)
}

// DraftNews asks c for the edition's news items. A response without a
// news_items array yields no drafts and no error.
func DraftNews(ctx context.Context, c Completer, brief Brief) ([]NewsDraft, error) {
	content, err := c.Complete(ctx, newsSystemPrompt, brief.userPrompt())
	if err != nil {
		return nil, err
	}

	return parseNewsDrafts(content)
}

func parseNewsDrafts(content string) ([]NewsDraft, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		NewsItems []NewsDraft `json:"news_items"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, content: %s", err, content)
	}

	drafts := make([]NewsDraft, 0, len(parsed.NewsItems))
	for _, d := range parsed.NewsItems {
		d.Title = strings.TrimSpace(d.Title)
		d.Summary = strings.TrimSpace(d.Summary)
		d.OriginalURL = strings.TrimSpace(d.OriginalURL)
		if d.Title == "" {
			continue
		}
		d.RelevanceScore = Score(d.RelevanceScore.Clamp())
		drafts = append(drafts, d)
	}

	return drafts, nil
}

// WritePodcastScript asks c for a narration covering every draft.
func WritePodcastScript(ctx context.Context, c Completer, date time.Time, drafts []NewsDraft) (string, error) {
	var sb strings.Builder
	for i, d := range drafts {
		sb.WriteString(fmt.Sprintf("%d. %s\n%s\n\n", i+1, d.Title, d.Summary))
	}

	content, err := c.Complete(ctx, podcastSystemPrompt, fmt.Sprintf(podcastUserPrompt, formatDate(date), sb.String()))
	if err != nil {
		return "", err
	}

	return parsePodcastScript(content)
}

func parsePodcastScript(content string) (string, error) {
	cleaned := cleanJSONResponse(content)

	var parsed struct {
		Script string `json:"script"`
	}

	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		// Plain prose is still a usable script.
		if text := strings.TrimSpace(content); text != "" && !strings.HasPrefix(text, "{") {
			return text, nil
		}
		return "", fmt.Errorf("failed to parse podcast response: %w", err)
	}

	script := strings.TrimSpace(parsed.Script)
	if script == "" {
		return "", fmt.Errorf("empty podcast script")
	}

	return script, nil
}

// ImagePrompt is the illustration prompt for a news title.
func ImagePrompt(title string) string {
	return fmt.Sprintf(imagePrompt, title)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

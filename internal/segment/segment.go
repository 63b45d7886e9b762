// Package segment splits the free-text summary of a news item into the parts
// the newspaper renders: priority badge, recommendation, source list, lead and
// analysis.
//
// The summary grammar accepts English and Spanish labels in any order:
//
//	Priority: | Prioridad:                 LOW MED HIGH ALERT (or BAJA MEDIA ALTA ALERTA)
//	Recommendation: | Recommended action:
//	Recomendación: | Acción recomendada:    free text up to the next priority/source label
//	Source: | Sources: | Fuente: | Fuentes: comma separated absolute URLs
//
// Everything that is not a label span is narrative body.
package segment

import (
	"regexp"
	"sort"
	"strings"
)

type Priority string

const (
	PriorityLow   Priority = "LOW"
	PriorityMed   Priority = "MED"
	PriorityHigh  Priority = "HIGH"
	PriorityAlert Priority = "ALERT"
)

var levels = map[string]Priority{
	"low":    PriorityLow,
	"baja":   PriorityLow,
	"med":    PriorityMed,
	"medium": PriorityMed,
	"media":  PriorityMed,
	"high":   PriorityHigh,
	"alta":   PriorityHigh,
	"alert":  PriorityAlert,
	"alerta": PriorityAlert,
}

const (
	priorityLabel       = `(?:priority|prioridad)`
	recommendationLabel = `(?:recommended action|recommendation|recomendaci[oó]n|acci[oó]n recomendada)`
	sourceLabel         = `(?:sources?|fuentes?)`
	urlPattern          = `https?://[^\s,]+`

	// Labels may come wrapped in markdown emphasis: **Prioridad:** ALTA.
	labelStart = `(?:[*_]+|\b)`
	labelEnd   = `[*_]*\s*:\s*[*_]*\s*`
)

var (
	priorityRe = regexp.MustCompile(`(?i)` + labelStart + priorityLabel + labelEnd +
		`(alerta|alert|medium|media|med|high|alta|baja|low)(?:[*_]+|\b)`)

	recommendationRe = regexp.MustCompile(`(?is)` + labelStart + recommendationLabel + labelEnd +
		`(.*?)\s*(?:` + labelStart + `(?:` + priorityLabel + `|` + sourceLabel + `)[*_]*\s*:|\z)`)

	// The URL list is optional so a bare source label is still removed.
	sourcesRe = regexp.MustCompile(`(?i)` + labelStart + sourceLabel + labelEnd +
		`(` + urlPattern + `(?:\s*,\s*` + urlPattern + `)*)?`)

	sentenceRe    = regexp.MustCompile(`(?s).+?[.!?]+(?:\s+|\z)`)
	inlineSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe  = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
)

// leadSentences is how many sentences make up the lead.
const leadSentences = 2

type Segments struct {
	Priority       Priority `json:"priority"`
	Recommendation string   `json:"recommendation"`
	Sources        []string `json:"sources"`
	Body           string   `json:"body"`
	Lead           string   `json:"lead"`
	Analysis       string   `json:"analysis"`
}

type span struct {
	start, end int
}

// Parse segments a stored summary. originalURL is the item's own source and is
// always first in Sources when non-empty. Parse is a pure function of its input.
func Parse(summary, originalURL string) Segments {
	seg := Segments{Priority: PriorityMed}
	var spans []span

	if m := priorityRe.FindStringSubmatchIndex(summary); m != nil {
		seg.Priority = levels[strings.ToLower(summary[m[2]:m[3]])]
		spans = append(spans, span{m[0], m[1]})
	}

	if m := recommendationRe.FindStringSubmatchIndex(summary); m != nil {
		seg.Recommendation = strings.TrimSpace(strings.Trim(summary[m[2]:m[3]], "*_ "))
		spans = append(spans, span{m[0], m[3]})
	}

	var listed []string
	if m := sourceMatch(summary); m != nil {
		if m[2] >= 0 {
			listed = splitURLs(summary[m[2]:m[3]])
		}
		spans = append(spans, span{m[0], m[1]})
	}
	seg.Sources = mergeSources(originalURL, listed)

	seg.Body = cleanup(removeSpans(summary, spans))
	seg.Lead, seg.Analysis = splitLead(seg.Body)

	return seg
}

// Narrative returns the text meant to be read aloud: lead followed by analysis.
func (s Segments) Narrative() string {
	if s.Analysis == "" {
		return s.Lead
	}
	return s.Lead + " " + s.Analysis
}

// BandForScore maps a relevance score (1-10) to its priority band.
func BandForScore(score int) Priority {
	switch {
	case score >= 9:
		return PriorityAlert
	case score >= 7:
		return PriorityHigh
	case score >= 4:
		return PriorityMed
	default:
		return PriorityLow
	}
}

// sourceMatch prefers the first source label that lists URLs over a bare one.
func sourceMatch(summary string) []int {
	all := sourcesRe.FindAllStringSubmatchIndex(summary, -1)
	for _, m := range all {
		if m[2] >= 0 {
			return m
		}
	}
	if len(all) > 0 {
		return all[0]
	}
	return nil
}

func splitURLs(list string) []string {
	var urls []string
	for _, part := range strings.Split(list, ",") {
		u := strings.TrimRight(strings.TrimSpace(part), ".;)*")
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func mergeSources(originalURL string, listed []string) []string {
	sources := make([]string, 0, len(listed)+1)
	seen := make(map[string]bool)

	add := func(u string) {
		key := strings.TrimRight(u, "/")
		if u == "" || seen[key] {
			return
		}
		seen[key] = true
		sources = append(sources, u)
	}

	add(strings.TrimSpace(originalURL))
	for _, u := range listed {
		add(u)
	}

	return sources
}

func removeSpans(text string, spans []span) string {
	if len(spans) == 0 {
		return text
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var sb strings.Builder
	pos := 0
	for _, s := range spans {
		if s.start > pos {
			sb.WriteString(text[pos:s.start])
		}
		if s.end > pos {
			pos = s.end
		}
	}
	sb.WriteString(text[pos:])

	return sb.String()
}

func cleanup(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = inlineSpaceRe.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func sentences(body string) []string {
	var out []string
	end := 0
	for _, loc := range sentenceRe.FindAllStringIndex(body, -1) {
		if s := normalize(body[loc[0]:loc[1]]); s != "" {
			out = append(out, s)
		}
		end = loc[1]
	}
	if rest := normalize(body[end:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

func splitLead(body string) (lead, analysis string) {
	parts := sentences(body)
	if len(parts) == 0 {
		return body, ""
	}
	if len(parts) <= leadSentences {
		return strings.Join(parts, " "), ""
	}
	return strings.Join(parts[:leadSentences], " "), strings.Join(parts[leadSentences:], " ")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

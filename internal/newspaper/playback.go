package newspaper

import (
	"ainewsdaily/internal/metrics"
	"ainewsdaily/internal/model"
	"ainewsdaily/internal/segment"
)

type PlaybackMode string

const (
	PlaybackAudio       PlaybackMode = "audio"
	PlaybackSpeech      PlaybackMode = "speech"
	PlaybackUnavailable PlaybackMode = "unavailable"

	SpeechLang = "es-ES"
)

// Playback tells the page how to voice an article: the stored audio file,
// browser speech synthesis of Text, or nothing.
type Playback struct {
	Mode PlaybackMode
	URL  string
	Text string
	Lang string
}

func ResolvePlayback(item model.NewsItem, seg segment.Segments) Playback {
	var p Playback
	switch {
	case item.AudioURL != "":
		p = Playback{Mode: PlaybackAudio, URL: item.AudioURL}
	case seg.Narrative() != "":
		p = Playback{Mode: PlaybackSpeech, Text: seg.Narrative(), Lang: SpeechLang}
	default:
		p = Playback{Mode: PlaybackUnavailable}
	}

	metrics.PlaybackResolutions.WithLabelValues(string(p.Mode)).Inc()
	return p
}

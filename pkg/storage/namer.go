package storage

import (
	"fmt"
	"sync"
	"time"
)

// Namer produces timestamped object names. Timestamps are milliseconds and
// strictly increase per Namer, so two uploads in the same millisecond never
// collide.
type Namer struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewNamer() *Namer {
	return &Namer{now: time.Now}
}

func (n *Namer) next() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	ts := n.now().UnixMilli()
	if ts <= n.last {
		ts = n.last + 1
	}
	n.last = ts
	return ts
}

func (n *Namer) NewsImage(ext string) string {
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("news-image-%d.%s", n.next(), ext)
}

func (n *Namer) NewsAudio() string {
	return fmt.Sprintf("news-audio-%d.mp3", n.next())
}

func (n *Namer) Podcast() string {
	return fmt.Sprintf("podcast_%d.mp3", n.next())
}

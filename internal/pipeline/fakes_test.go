package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"ainewsdaily/internal/model"
	"ainewsdaily/pkg/feeds"
)

type deleteCall struct {
	table     string
	cutoff    time.Time
	inclusive bool
}

type fakeStore struct {
	mu        sync.Mutex
	news      []model.NewsItem
	metadata  []model.DailyMetadata
	deletes   []deleteCall
	insertErr map[string]error
	deleteErr error
	metaDup   bool
}

func (f *fakeStore) InsertNews(ctx context.Context, item *model.NewsItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.insertErr[item.Title]; err != nil {
		return err
	}
	item.ID = "id-" + item.Title
	f.news = append(f.news, *item)
	return nil
}

func (f *fakeStore) InsertDailyMetadata(ctx context.Context, meta *model.DailyMetadata) (bool, error) {
	if f.metaDup {
		return false, nil
	}
	f.metadata = append(f.metadata, *meta)
	return true, nil
}

func (f *fakeStore) DeleteNewsOlderThan(ctx context.Context, cutoff time.Time, inclusive bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, deleteCall{"news", cutoff, inclusive})
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}

	var removed int64
	kept := f.news[:0]
	for _, item := range f.news {
		if olderThan(item.CreatedAt, cutoff, inclusive) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	f.news = kept
	return removed, nil
}

func (f *fakeStore) DeleteDailyMetadataOlderThan(ctx context.Context, cutoff time.Time, inclusive bool) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, deleteCall{"daily_metadata", cutoff, inclusive})

	var removed int64
	kept := f.metadata[:0]
	for _, meta := range f.metadata {
		if olderThan(meta.CreatedAt, cutoff, inclusive) {
			removed++
			continue
		}
		kept = append(kept, meta)
	}
	f.metadata = kept
	return removed, nil
}

// olderThan matches the repository's created_at < $1, or <= $1 when inclusive.
func olderThan(createdAt, cutoff time.Time, inclusive bool) bool {
	if inclusive {
		return !createdAt.After(cutoff)
	}
	return createdAt.Before(cutoff)
}

func (f *fakeStore) ClearNews(ctx context.Context) (int64, error) {
	n := int64(len(f.news))
	f.news = nil
	return n, nil
}

func (f *fakeStore) ClearDailyMetadata(ctx context.Context) (int64, error) {
	n := int64(len(f.metadata))
	f.metadata = nil
	return n, nil
}

// fakeCompleter answers calls in order with the queued responses.
type fakeCompleter struct {
	responses []string
	err       error
	users     []string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.users = append(f.users, user)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("no response queued")
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r, nil
}

func (f *fakeCompleter) Name() string {
	return "fake-model"
}

type fakeHeadlines struct {
	headlines []feeds.Headline
	err       error
}

func (f *fakeHeadlines) Fetch(ctx context.Context, limit int) ([]feeds.Headline, error) {
	return f.headlines, f.err
}

type fakeImages struct {
	url    string
	err    error
	prompt string
}

func (f *fakeImages) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.url, f.err
}

type fakeVoice struct {
	err   error
	texts []string
}

func (f *fakeVoice) Name() string {
	return "fake-voice"
}

func (f *fakeVoice) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3:" + text), nil
}

type published struct {
	filename    string
	contentType string
	size        int
}

type fakePublisher struct {
	err   error
	files []published
}

func (f *fakePublisher) Publish(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.files = append(f.files, published{filename, contentType, len(data)})
	return "https://cdn.example.com/media/" + filename, nil
}

type fakeCache struct {
	calls int
	err   error
}

func (f *fakeCache) Invalidate(ctx context.Context) (int, error) {
	f.calls++
	return 3, f.err
}

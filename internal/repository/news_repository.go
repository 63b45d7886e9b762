package repository

import (
	"context"
	"database/sql"
	"time"

	"ainewsdaily/internal/model"
)

type NewsRepository struct {
	db *sql.DB
}

func NewNewsRepository(db *sql.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// InsertNews stores item and fills in its id and creation time. A zero
// CreatedAt lets the database stamp the row.
func (r *NewsRepository) InsertNews(ctx context.Context, item *model.NewsItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO news(title, summary, content, image_url, audio_url, relevance_score, original_url, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, COALESCE($8, now()))
		RETURNING id, created_at
	`, item.Title, item.Summary, nullString(item.Content), nullString(item.ImageURL), nullString(item.AudioURL),
		item.RelevanceScore, nullString(item.OriginalURL), nullTime(item.CreatedAt)).Scan(&item.ID, &item.CreatedAt)
}

// InsertDailyMetadata returns false when the date already has a row.
func (r *NewsRepository) InsertDailyMetadata(ctx context.Context, meta *model.DailyMetadata) (bool, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO daily_metadata(date, podcast_url, podcast_script, created_at)
		VALUES($1, $2, $3, COALESCE($4, now()))
		ON CONFLICT (date) DO NOTHING
		RETURNING id, created_at
	`, meta.Date, nullString(meta.PodcastURL), meta.PodcastScript, nullTime(meta.CreatedAt)).Scan(&meta.ID, &meta.CreatedAt)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// DeleteNewsOlderThan removes rows created before cutoff, or at cutoff too when
// inclusive is set.
func (r *NewsRepository) DeleteNewsOlderThan(ctx context.Context, cutoff time.Time, inclusive bool) (int64, error) {
	query := `DELETE FROM news WHERE created_at < $1`
	if inclusive {
		query = `DELETE FROM news WHERE created_at <= $1`
	}
	return r.exec(ctx, query, cutoff)
}

func (r *NewsRepository) DeleteDailyMetadataOlderThan(ctx context.Context, cutoff time.Time, inclusive bool) (int64, error) {
	query := `DELETE FROM daily_metadata WHERE created_at < $1`
	if inclusive {
		query = `DELETE FROM daily_metadata WHERE created_at <= $1`
	}
	return r.exec(ctx, query, cutoff)
}

func (r *NewsRepository) ClearNews(ctx context.Context) (int64, error) {
	return r.exec(ctx, `DELETE FROM news`)
}

func (r *NewsRepository) ClearDailyMetadata(ctx context.Context) (int64, error) {
	return r.exec(ctx, `DELETE FROM daily_metadata`)
}

// GetNewsSince returns items created at or after since, by calendar day and
// then by relevance.
func (r *NewsRepository) GetNewsSince(ctx context.Context, since time.Time) ([]model.NewsItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, summary, content, image_url, audio_url, relevance_score, original_url, created_at
		FROM news
		WHERE created_at >= $1
		ORDER BY (created_at AT TIME ZONE 'UTC')::date ASC, relevance_score DESC, created_at ASC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.NewsItem
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *NewsRepository) GetNewsByID(ctx context.Context, id string) (*model.NewsItem, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, summary, content, image_url, audio_url, relevance_score, original_url, created_at
		FROM news
		WHERE id = $1
	`, id)

	item, err := scanNews(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *NewsRepository) GetDailyMetadata(ctx context.Context, date string) (*model.DailyMetadata, error) {
	var meta model.DailyMetadata
	var podcastURL, script sql.NullString
	var day time.Time

	err := r.db.QueryRowContext(ctx, `
		SELECT id, date, podcast_url, podcast_script, created_at
		FROM daily_metadata
		WHERE date = $1
	`, date).Scan(&meta.ID, &day, &podcastURL, &script, &meta.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	meta.Date = day.Format(model.DateLayout)
	meta.PodcastURL = podcastURL.String
	meta.PodcastScript = script.String

	return &meta, nil
}

func (r *NewsRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNews(s scanner) (model.NewsItem, error) {
	var item model.NewsItem
	var content, imageURL, audioURL, originalURL sql.NullString

	err := s.Scan(&item.ID, &item.Title, &item.Summary, &content, &imageURL, &audioURL,
		&item.RelevanceScore, &originalURL, &item.CreatedAt)
	if err != nil {
		return item, err
	}

	item.Content = content.String
	item.ImageURL = imageURL.String
	item.AudioURL = audioURL.String
	item.OriginalURL = originalURL.String

	return item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

package repository

import (
	"context"
	"database/sql"
	"errors"

	"ainewsdaily/internal/model"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type LibraryRepository struct {
	db *sql.DB
}

func NewLibraryRepository(db *sql.DB) *LibraryRepository {
	return &LibraryRepository{db: db}
}

func (r *LibraryRepository) CreateFolder(ctx context.Context, folder *model.Folder) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO folders(name, user_id)
		VALUES($1, $2)
		RETURNING id, created_at
	`, folder.Name, folder.UserID).Scan(&folder.ID, &folder.CreatedAt)
}

func (r *LibraryRepository) GetFolders(ctx context.Context, userID string) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, user_id, created_at
		FROM folders
		WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []model.Folder
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.UserID, &f.CreatedAt); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return folders, nil
}

func (r *LibraryRepository) GetFolder(ctx context.Context, userID, folderID string) (*model.Folder, error) {
	var f model.Folder
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, user_id, created_at
		FROM folders
		WHERE id = $1 AND user_id = $2
	`, folderID, userID).Scan(&f.ID, &f.Name, &f.UserID, &f.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &f, nil
}

// SaveNews bookmarks a news item. It returns false, without error, when the
// user already saved that item.
func (r *LibraryRepository) SaveNews(ctx context.Context, saved *model.SavedNews) (bool, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO saved_news(user_id, news_id, folder_id)
		VALUES($1, $2, $3)
		RETURNING id, created_at
	`, saved.UserID, saved.NewsID, nullString(saved.FolderID)).Scan(&saved.ID, &saved.CreatedAt)

	if IsUniqueViolation(err) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// GetSavedNews lists a user's bookmarks, newest first. News is nil when the
// item has already been swept.
func (r *LibraryRepository) GetSavedNews(ctx context.Context, userID string) ([]model.SavedNews, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.user_id, s.news_id, s.folder_id, s.created_at,
			n.id, n.title, n.summary, n.content, n.image_url, n.audio_url, n.relevance_score, n.original_url, n.created_at
		FROM saved_news s
		LEFT JOIN news n ON n.id = s.news_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []model.SavedNews
	for rows.Next() {
		var s model.SavedNews
		var folderID sql.NullString
		var newsID, title, summary, content, imageURL, audioURL, originalURL sql.NullString
		var score sql.NullInt64
		var createdAt sql.NullTime

		err := rows.Scan(&s.ID, &s.UserID, &s.NewsID, &folderID, &s.CreatedAt,
			&newsID, &title, &summary, &content, &imageURL, &audioURL, &score, &originalURL, &createdAt)
		if err != nil {
			return nil, err
		}

		s.FolderID = folderID.String
		if newsID.Valid {
			s.News = &model.NewsItem{
				ID:             newsID.String,
				Title:          title.String,
				Summary:        summary.String,
				Content:        content.String,
				ImageURL:       imageURL.String,
				AudioURL:       audioURL.String,
				RelevanceScore: int(score.Int64),
				OriginalURL:    originalURL.String,
				CreatedAt:      createdAt.Time,
			}
		}

		saved = append(saved, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return saved, nil
}

func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

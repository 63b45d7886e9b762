package model

import "time"

type Folder struct {
	ID        string
	Name      string
	UserID    string
	CreatedAt time.Time
}

type SavedNews struct {
	ID        string
	UserID    string
	NewsID    string
	FolderID  string
	CreatedAt time.Time
	News      *NewsItem
}

package newspaper

import (
	"time"

	"ainewsdaily/internal/model"
)

const (
	UnknownTitle    = "Título Desconocido"
	GeneralFolder   = "General (Sin Carpeta)"
	LibraryRootName = "Mis Recortes"
)

type FolderCard struct {
	Folder model.Folder
	Count  int
}

type Clipping struct {
	SavedID  string
	NewsID   string
	FolderID string
	Title    string
	SavedAt  time.Time
	Date     string
	Swept    bool
}

// Library is one level of a user's clippings: the root shows folders plus
// unsorted clippings, a folder shows only its own.
type Library struct {
	Title     string
	FolderID  string
	Folders   []FolderCard
	Clippings []Clipping
}

func BuildLibrary(folders []model.Folder, saved []model.SavedNews, folderID string) Library {
	lib := Library{Title: LibraryRootName, FolderID: folderID}

	if folderID == "" {
		counts := make(map[string]int)
		for _, s := range saved {
			if s.FolderID != "" {
				counts[s.FolderID]++
			}
		}
		for _, f := range folders {
			lib.Folders = append(lib.Folders, FolderCard{Folder: f, Count: counts[f.ID]})
		}
	} else {
		for _, f := range folders {
			if f.ID == folderID {
				lib.Title = f.Name
			}
		}
	}

	for _, s := range saved {
		if s.FolderID != folderID {
			continue
		}
		lib.Clippings = append(lib.Clippings, toClipping(s))
	}

	return lib
}

func toClipping(s model.SavedNews) Clipping {
	c := Clipping{
		SavedID:  s.ID,
		NewsID:   s.NewsID,
		FolderID: s.FolderID,
		Title:    UnknownTitle,
		SavedAt:  s.CreatedAt,
		Date:     ShortDate(s.CreatedAt),
		Swept:    s.News == nil,
	}
	if s.News != nil && s.News.Title != "" {
		c.Title = s.News.Title
	}
	return c
}

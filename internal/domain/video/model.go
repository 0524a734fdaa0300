package video

import (
	"errors"
	"strings"
	"time"
)

// Max length constants.
const (
	MaxTitleLength    = 200
	MaxOpponentLength = 200
	MaxNoteLength     = 2000
	MaxFolderName     = 100
	MaxURLLength      = 2048
)

// Folder groups match videos (e.g. per season or tournament).
type Folder struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Validate checks if the Folder has valid data.
// PRE: Folder struct is populated
// POST: Returns nil if valid, error otherwise
func (f *Folder) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("folder name cannot be empty")
	}
	if len(f.Name) > MaxFolderName {
		return errors.New("folder name cannot exceed 100 characters")
	}
	return nil
}

// MatchVideo is metadata for one recorded match. VideoURL is either an
// external http(s) link or a storage path served by this app; the
// compression/upload pipeline itself lives in the mobile client.
type MatchVideo struct {
	ID        string
	MemberID  string
	Title     string
	MatchDate string // YYYY-MM-DD
	Opponent  string
	VideoURL  string
	Note      string
	FolderID  string // empty means unfiled
	CreatedAt time.Time
}

// Validate checks if the MatchVideo has valid data.
// PRE: MatchVideo struct is populated
// POST: Returns nil if valid, error otherwise
func (v *MatchVideo) Validate() error {
	if v.MemberID == "" {
		return errors.New("video must be associated with a member")
	}
	if strings.TrimSpace(v.Title) == "" {
		return errors.New("video title cannot be empty")
	}
	if len(v.Title) > MaxTitleLength {
		return errors.New("video title cannot exceed 200 characters")
	}
	if _, err := time.Parse("2006-01-02", v.MatchDate); err != nil {
		return errors.New("match date must be YYYY-MM-DD")
	}
	if len(v.Opponent) > MaxOpponentLength {
		return errors.New("opponent cannot exceed 200 characters")
	}
	if len(v.VideoURL) > MaxURLLength {
		return errors.New("video URL cannot exceed 2048 characters")
	}
	if len(v.Note) > MaxNoteLength {
		return errors.New("note cannot exceed 2000 characters")
	}
	return nil
}

// IsExternal reports whether the video URL points outside our storage.
// INVARIANT: MatchVideo fields are not mutated
func (v *MatchVideo) IsExternal() bool {
	return strings.HasPrefix(v.VideoURL, "http://") || strings.HasPrefix(v.VideoURL, "https://")
}

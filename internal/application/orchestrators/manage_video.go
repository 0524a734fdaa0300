package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"clubhouse/internal/domain/video"
)

// VideoStoreForManage defines the store interface needed by the video orchestrators.
type VideoStoreForManage interface {
	GetFolderByID(ctx context.Context, id string) (video.Folder, error)
	SaveFolder(ctx context.Context, f video.Folder) error
	DeleteFolder(ctx context.Context, id string) error
	GetVideoByID(ctx context.Context, id string) (video.MatchVideo, error)
	SaveVideo(ctx context.Context, v video.MatchVideo) error
	DeleteVideo(ctx context.Context, id string) error
}

// AddVideoInput carries input for the add video orchestrator.
type AddVideoInput struct {
	MemberID  string
	Title     string
	MatchDate string
	Opponent  string
	VideoURL  string
	Note      string
	FolderID  string
}

// ManageVideoDeps holds dependencies for the video orchestrators.
type ManageVideoDeps struct {
	VideoStore VideoStoreForManage
	GenerateID func() string
	Now        func() time.Time
}

var (
	ErrVideoNotFound  = errors.New("match video not found")
	ErrFolderNotFound = errors.New("video folder not found")
	ErrNotVideoOwner  = errors.New("match video belongs to another member")
)

// ExecuteAddVideo registers a match video in the library.
// PRE: input passes video validation; FolderID, when set, refers to an existing folder
// POST: Video is persisted
func ExecuteAddVideo(ctx context.Context, input AddVideoInput, deps ManageVideoDeps) (video.MatchVideo, error) {
	if input.FolderID != "" {
		if _, err := deps.VideoStore.GetFolderByID(ctx, input.FolderID); err != nil {
			return video.MatchVideo{}, ErrFolderNotFound
		}
	}

	v := video.MatchVideo{
		ID:        deps.GenerateID(),
		MemberID:  input.MemberID,
		Title:     input.Title,
		MatchDate: input.MatchDate,
		Opponent:  input.Opponent,
		VideoURL:  input.VideoURL,
		Note:      input.Note,
		FolderID:  input.FolderID,
		CreatedAt: deps.Now(),
	}
	if err := v.Validate(); err != nil {
		return video.MatchVideo{}, err
	}
	if err := deps.VideoStore.SaveVideo(ctx, v); err != nil {
		return video.MatchVideo{}, err
	}

	slog.Info("video_event", "event", "video_added", "video_id", v.ID, "member_id", input.MemberID)
	return v, nil
}

// ExecuteMoveVideo files a video into a folder, or unfiles it when
// folderID is empty.
// PRE: VideoID refers to a video owned by memberID
// POST: Video carries the new folder assignment
func ExecuteMoveVideo(ctx context.Context, videoID string, folderID string, memberID string, deps ManageVideoDeps) (video.MatchVideo, error) {
	v, err := deps.VideoStore.GetVideoByID(ctx, videoID)
	if err != nil {
		return video.MatchVideo{}, ErrVideoNotFound
	}
	if v.MemberID != memberID {
		return video.MatchVideo{}, ErrNotVideoOwner
	}
	if folderID != "" {
		if _, err := deps.VideoStore.GetFolderByID(ctx, folderID); err != nil {
			return video.MatchVideo{}, ErrFolderNotFound
		}
	}

	v.FolderID = folderID
	if err := deps.VideoStore.SaveVideo(ctx, v); err != nil {
		return video.MatchVideo{}, err
	}

	slog.Info("video_event", "event", "video_moved", "video_id", videoID, "folder_id", folderID)
	return v, nil
}

// ExecuteDeleteVideo removes a video from the library.
// PRE: VideoID refers to a video owned by memberID, or isStaff is true
// POST: Video is removed
func ExecuteDeleteVideo(ctx context.Context, videoID string, memberID string, isStaff bool, deps ManageVideoDeps) error {
	v, err := deps.VideoStore.GetVideoByID(ctx, videoID)
	if err != nil {
		return ErrVideoNotFound
	}
	if v.MemberID != memberID && !isStaff {
		return ErrNotVideoOwner
	}
	if err := deps.VideoStore.DeleteVideo(ctx, videoID); err != nil {
		return err
	}

	slog.Info("video_event", "event", "video_deleted", "video_id", videoID, "by", memberID)
	return nil
}

// ExecuteCreateFolder creates a video folder.
// PRE: input passes folder validation
// POST: Folder is persisted
func ExecuteCreateFolder(ctx context.Context, name string, deps ManageVideoDeps) (video.Folder, error) {
	f := video.Folder{
		ID:        deps.GenerateID(),
		Name:      name,
		CreatedAt: deps.Now(),
	}
	if err := f.Validate(); err != nil {
		return video.Folder{}, err
	}
	if err := deps.VideoStore.SaveFolder(ctx, f); err != nil {
		return video.Folder{}, err
	}

	slog.Info("video_event", "event", "folder_created", "folder_id", f.ID, "name", name)
	return f, nil
}

// ExecuteDeleteFolder removes a folder. Videos filed in it stay in the
// library and become unfiled.
// PRE: folderID refers to an existing folder
// POST: Folder is removed
func ExecuteDeleteFolder(ctx context.Context, folderID string, deps ManageVideoDeps) error {
	if _, err := deps.VideoStore.GetFolderByID(ctx, folderID); err != nil {
		return ErrFolderNotFound
	}
	if err := deps.VideoStore.DeleteFolder(ctx, folderID); err != nil {
		return err
	}

	slog.Info("video_event", "event", "folder_deleted", "folder_id", folderID)
	return nil
}

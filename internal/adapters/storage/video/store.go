package video

import (
	"context"

	domain "clubhouse/internal/domain/video"
)

// Store persists video Folder and MatchVideo state.
type Store interface {
	GetFolderByID(ctx context.Context, id string) (domain.Folder, error)
	SaveFolder(ctx context.Context, value domain.Folder) error
	DeleteFolder(ctx context.Context, id string) error
	ListFolders(ctx context.Context) ([]domain.Folder, error)

	GetVideoByID(ctx context.Context, id string) (domain.MatchVideo, error)
	SaveVideo(ctx context.Context, value domain.MatchVideo) error
	DeleteVideo(ctx context.Context, id string) error
	ListVideos(ctx context.Context, filter ListFilter) ([]domain.MatchVideo, error)
	ListVideosByMemberID(ctx context.Context, memberID string) ([]domain.MatchVideo, error)
	ListVideosByFolderID(ctx context.Context, folderID string) ([]domain.MatchVideo, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
}

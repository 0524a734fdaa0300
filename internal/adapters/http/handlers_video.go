package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	videoStore "clubhouse/internal/adapters/storage/video"
	"clubhouse/internal/application/listutil"
	"clubhouse/internal/application/orchestrators"
	videoDomain "clubhouse/internal/domain/video"
)

// resolvePlaybackURL passes external URLs through and maps stored file
// paths onto the local media route served from the static dir.
func resolvePlaybackURL(videoURL string) string {
	if strings.HasPrefix(videoURL, "http://") || strings.HasPrefix(videoURL, "https://") {
		return videoURL
	}
	return "/media/" + strings.TrimPrefix(videoURL, "/")
}

func videoJSON(v videoDomain.MatchVideo) map[string]any {
	return map[string]any{
		"id":          v.ID,
		"memberId":    v.MemberID,
		"title":       v.Title,
		"matchDate":   v.MatchDate,
		"opponent":    v.Opponent,
		"videoUrl":    v.VideoURL,
		"playbackUrl": resolvePlaybackURL(v.VideoURL),
		"note":        v.Note,
		"folderId":    v.FolderID,
		"createdAt":   v.CreatedAt.Format(time.RFC3339),
	}
}

// handleListVideos returns match videos, optionally scoped to a folder.
func handleListVideos(w http.ResponseWriter, r *http.Request) {
	var (
		videos []videoDomain.MatchVideo
		err    error
	)
	fp := listutil.ParseFilterParams(r.URL.Query(), []string{"folder"})
	if folderID := fp.Filters["folder"]; folderID != "" {
		videos, err = stores.VideoStore.ListVideosByFolderID(r.Context(), folderID)
	} else {
		limit, offset := pageFromRequest(r)
		videos, err = stores.VideoStore.ListVideos(r.Context(), videoStore.ListFilter{Limit: limit, Offset: offset})
	}
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoJSON(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": out})
}

// handleAddVideo registers a match video owned by the caller.
func handleAddVideo(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req struct {
		Title     string `json:"title"`
		MatchDate string `json:"matchDate"`
		Opponent  string `json:"opponent"`
		VideoURL  string `json:"videoUrl"`
		Note      string `json:"note"`
		FolderID  string `json:"folderId"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	v, err := orchestrators.ExecuteAddVideo(r.Context(), orchestrators.AddVideoInput{
		MemberID:  sess.MemberID,
		Title:     req.Title,
		MatchDate: req.MatchDate,
		Opponent:  req.Opponent,
		VideoURL:  req.VideoURL,
		Note:      req.Note,
		FolderID:  req.FolderID,
	}, videoDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrFolderNotFound) {
			badRequest(w, "folder not found")
			return
		}
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, videoJSON(v))
}

// handleMoveVideo reassigns a video to a folder (empty folderId unfiles it).
func handleMoveVideo(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req struct {
		FolderID string `json:"folderId"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	v, err := orchestrators.ExecuteMoveVideo(r.Context(), r.PathValue("id"), req.FolderID, sess.MemberID, videoDeps())
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrVideoNotFound):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrFolderNotFound):
			badRequest(w, "folder not found")
		case errors.Is(err, orchestrators.ErrNotVideoOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, videoJSON(v))
}

// handleDeleteVideo removes a video. Owners can delete their own, staff any.
func handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteDeleteVideo(r.Context(), r.PathValue("id"), sess.MemberID,
		middleware.IsStaff(r.Context()), videoDeps())
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrVideoNotFound):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrNotVideoOwner):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleListFolders returns every video folder.
func handleListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := stores.VideoStore.ListFolders(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]map[string]any, 0, len(folders))
	for _, f := range folders {
		out = append(out, map[string]any{
			"id":        f.ID,
			"name":      f.Name,
			"createdAt": f.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"folders": out})
}

// handleCreateFolder adds a video folder. Staff only.
func handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	f, err := orchestrators.ExecuteCreateFolder(r.Context(), req.Name, videoDeps())
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        f.ID,
		"name":      f.Name,
		"createdAt": f.CreatedAt.Format(time.RFC3339),
	})
}

// handleDeleteFolder removes a folder; its videos become unfiled. Staff only.
func handleDeleteFolder(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteFolder(r.Context(), r.PathValue("id"), videoDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrFolderNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func videoDeps() orchestrators.ManageVideoDeps {
	return orchestrators.ManageVideoDeps{
		VideoStore: stores.VideoStore,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

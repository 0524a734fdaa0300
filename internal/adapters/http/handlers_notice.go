package web

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
)

// renderMarkdown converts notice markdown to HTML. Raw HTML in the
// source is escaped by the renderer.
func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return buf.String()
}

// handleNoticeFeed returns notices newest first with the caller's read flags.
func handleNoticeFeed(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	limit, offset := pageFromRequest(r)

	result, err := projections.QueryGetNoticeFeed(r.Context(), projections.GetNoticeFeedQuery{
		MemberID: sess.MemberID,
		Limit:    limit,
		Offset:   offset,
	}, projections.GetNoticeFeedDeps{
		NoticeStore: stores.NoticeStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(result.Entries))
	for _, e := range result.Entries {
		out = append(out, map[string]any{
			"id":          e.Notice.ID,
			"type":        e.Notice.Type,
			"title":       e.Notice.Title,
			"content":     e.Notice.Content,
			"contentHtml": renderMarkdown(e.Notice.Content),
			"createdAt":   e.Notice.CreatedAt.Format(time.RFC3339),
			"read":        e.Read,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": out, "unread": result.Unread})
}

// handleCreateNotice publishes a notice. Staff only.
func handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	n, err := orchestrators.ExecuteCreateNotice(r.Context(), orchestrators.CreateNoticeInput{
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: sess.AccountID,
	}, noticeDeps())
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        n.ID,
		"type":      n.Type,
		"title":     n.Title,
		"content":   n.Content,
		"createdAt": n.CreatedAt.Format(time.RFC3339),
	})
}

// handleDeleteNotice removes a notice and its read marks. Staff only.
func handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteNotice(r.Context(), r.PathValue("id"), noticeDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrNoticeNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleMarkNoticeRead marks a notice as read by the caller.
func handleMarkNoticeRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteMarkNoticeRead(r.Context(), r.PathValue("id"), sess.MemberID, noticeDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrNoticeNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func noticeDeps() orchestrators.ManageNoticeDeps {
	return orchestrators.ManageNoticeDeps{
		NoticeStore: stores.NoticeStore,
		GenerateID:  generateID,
		Now:         timeNow,
	}
}

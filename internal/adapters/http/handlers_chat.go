package web

import (
	"errors"
	"net/http"
	"time"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/application/orchestrators"
	"clubhouse/internal/application/projections"
)

// handleListRooms returns every chat room with its latest message preview.
func handleListRooms(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryGetChatRooms(r.Context(), projections.GetChatRoomsQuery{}, projections.GetChatRoomsDeps{
		ChatStore:   stores.ChatStore,
		MemberStore: stores.MemberStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(result.Entries))
	for _, e := range result.Entries {
		out = append(out, map[string]any{
			"id":            e.Room.ID,
			"name":          e.Room.Name,
			"category":      e.Room.Category,
			"avatarUrl":     e.Room.AvatarURL,
			"preview":       e.Preview,
			"previewSender": e.PreviewSender,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": out})
}

// handleCreateRoom opens a new chat room. Staff only.
func handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Category  string `json:"category"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	room, err := orchestrators.ExecuteCreateRoom(r.Context(), orchestrators.CreateRoomInput{
		Name:      req.Name,
		Category:  req.Category,
		AvatarURL: req.AvatarURL,
	}, chatDeps())
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        room.ID,
		"name":      room.Name,
		"category":  room.Category,
		"avatarUrl": room.AvatarURL,
	})
}

// handleDeleteRoom removes a chat room and its messages. Staff only.
func handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteRoom(r.Context(), r.PathValue("id"), chatDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrRoomNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleChatTimeline returns the messages of one room, oldest first,
// decorated with sender names and read counts.
func handleChatTimeline(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())
	limit, offset := pageFromRequest(r)

	result, err := projections.QueryGetChatTimeline(r.Context(), projections.GetChatTimelineQuery{
		RoomID:   r.PathValue("id"),
		ViewerID: sess.MemberID,
		Limit:    limit,
		Offset:   offset,
	}, projections.GetChatTimelineDeps{
		ChatStore:   stores.ChatStore,
		MemberStore: stores.MemberStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(result.Entries))
	for _, e := range result.Entries {
		out = append(out, map[string]any{
			"id":         e.Message.ID,
			"senderId":   e.Message.SenderID,
			"senderName": e.SenderName,
			"content":    e.Message.Content,
			"createdAt":  e.Message.CreatedAt.Format(time.RFC3339),
			"readCount":  e.ReadCount,
			"mine":       e.Mine,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out})
}

// handleSendMessage posts a message to a room and pushes it to subscribers.
func handleSendMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	msg, err := orchestrators.ExecuteSendMessage(r.Context(), orchestrators.SendMessageInput{
		RoomID:   r.PathValue("id"),
		SenderID: sess.MemberID,
		Content:  req.Content,
	}, chatDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrRoomNotFound) {
			http.NotFound(w, r)
			return
		}
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        msg.ID,
		"roomId":    msg.RoomID,
		"senderId":  msg.SenderID,
		"content":   msg.Content,
		"createdAt": msg.CreatedAt.Format(time.RFC3339),
	})
}

// handleMarkMessageRead records a read receipt for the caller.
func handleMarkMessageRead(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteMarkMessageRead(r.Context(), r.PathValue("id"), sess.MemberID, chatDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrMessageNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDeleteMessage removes a message. Senders can delete their own,
// staff can delete any.
func handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireMember(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteDeleteMessage(r.Context(), r.PathValue("id"), sess.MemberID,
		middleware.IsStaff(r.Context()), chatDeps())
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrMessageNotFound):
			http.NotFound(w, r)
		case errors.Is(err, orchestrators.ErrNotSender):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			internalError(w, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func chatDeps() orchestrators.ChatDeps {
	return orchestrators.ChatDeps{
		ChatStore:  stores.ChatStore,
		Notifier:   hub,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

package web

import (
	"net/http"

	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/domain/account"
)

// registerRoutes wires the JSON API onto the mux. The Auth middleware
// runs on the outer chain; per-route guards enforce access here.
func registerRoutes(mux *http.ServeMux) {
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(account.RoleAdmin, account.RoleCoach)(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireRole(account.RoleAdmin)(h)
	}

	// Auth
	mux.HandleFunc("POST /api/login", handleLogin)
	mux.HandleFunc("POST /api/logout", handleLogout)
	mux.Handle("GET /api/me", authed(handleMe))
	mux.Handle("POST /api/change-password", authed(handleChangePassword))
	mux.Handle("POST /api/accounts", admin(handleCreateAccount))

	// Members
	mux.Handle("GET /api/members", authed(handleListMembers))

	// Schedule and attendance
	mux.Handle("GET /api/events", authed(handleListEvents))
	mux.Handle("GET /api/events/next", authed(handleNextEvent))
	mux.Handle("POST /api/events", staff(handleCreateEvent))
	mux.Handle("PUT /api/events/{id}", staff(handleUpdateEvent))
	mux.Handle("DELETE /api/events/{id}", staff(handleDeleteEvent))
	mux.Handle("POST /api/events/{id}/attendance", authed(handleRespondAttendance))
	mux.Handle("GET /api/events/{id}/attendance", authed(handleAttendanceSummary))
	mux.Handle("GET /api/attendance", authed(handleMyAttendance))

	// Clock and practice log
	mux.Handle("POST /api/clock/in", authed(handleClockIn))
	mux.Handle("POST /api/clock/out", authed(handleClockOut))
	mux.Handle("GET /api/clock/today", authed(handleClockToday))
	mux.Handle("GET /api/practice", authed(handleListPractice))
	mux.Handle("POST /api/practice", authed(handleSavePractice))
	mux.Handle("DELETE /api/practice/{id}", authed(handleDeletePractice))
	mux.Handle("GET /api/participation", authed(handleParticipationSummary))
	mux.Handle("GET /api/home", authed(handleHome))

	// Chat
	mux.Handle("GET /api/rooms", authed(handleListRooms))
	mux.Handle("POST /api/rooms", staff(handleCreateRoom))
	mux.Handle("DELETE /api/rooms/{id}", staff(handleDeleteRoom))
	mux.Handle("GET /api/rooms/{id}/messages", authed(handleChatTimeline))
	mux.Handle("POST /api/rooms/{id}/messages", authed(handleSendMessage))
	mux.Handle("GET /api/rooms/{id}/subscribe", authed(handleChatSubscribe))
	mux.Handle("POST /api/messages/{id}/read", authed(handleMarkMessageRead))
	mux.Handle("DELETE /api/messages/{id}", authed(handleDeleteMessage))

	// Video library
	mux.Handle("GET /api/videos", authed(handleListVideos))
	mux.Handle("POST /api/videos", authed(handleAddVideo))
	mux.Handle("PUT /api/videos/{id}/folder", authed(handleMoveVideo))
	mux.Handle("DELETE /api/videos/{id}", authed(handleDeleteVideo))
	mux.Handle("GET /api/folders", authed(handleListFolders))
	mux.Handle("POST /api/folders", staff(handleCreateFolder))
	mux.Handle("DELETE /api/folders/{id}", staff(handleDeleteFolder))

	// Absence reports
	mux.Handle("POST /api/absences", authed(handleReportAbsence))
	mux.Handle("GET /api/absences", staff(handleListAbsences))

	// Diagnostics
	mux.Handle("GET /api/perf", admin(handleRuntimeStats))

	// Notices
	mux.Handle("GET /api/notices", authed(handleNoticeFeed))
	mux.Handle("POST /api/notices", staff(handleCreateNotice))
	mux.Handle("DELETE /api/notices/{id}", staff(handleDeleteNotice))
	mux.Handle("POST /api/notices/{id}/read", authed(handleMarkNoticeRead))
}

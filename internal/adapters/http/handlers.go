package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"clubhouse/internal/adapters/http/middleware"
	memberStore "clubhouse/internal/adapters/storage/member"
	"clubhouse/internal/application/listutil"
	"clubhouse/internal/application/orchestrators"
)

// timeNow is swappable for tests.
var timeNow = time.Now

// mdRenderer renders notice bodies. No WithUnsafe: raw HTML in markdown
// input is escaped, which keeps stored content XSS-safe.
var mdRenderer = goldmark.New(goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()))

func generateID() string {
	return uuid.New().String()
}

// internalError logs the underlying error and returns a generic 500 so
// internals never leak to clients.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// strictDecode decodes a JSON body rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pageFromRequest translates page/per_page query params into a
// limit/offset pair for store list filters.
func pageFromRequest(r *http.Request) (limit, offset int) {
	pp := listutil.ParsePageParams(r.URL.Query())
	return pp.PerPage, pp.Offset()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err)
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

// handleLogin authenticates an account and issues a session cookie.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "メールアドレスまたはパスワードが正しくありません"})
		case errors.Is(err, orchestrators.ErrAccountLocked):
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "アカウントがロックされています。しばらくしてからお試しください"})
		default:
			internalError(w, err)
		}
		return
	}

	// Not every account has a member profile (admins may not).
	memberID := ""
	if m, err := stores.MemberStore.GetByAccountID(r.Context(), result.AccountID); err == nil {
		memberID = m.ID
	}

	token, err := sessions.Create(result.AccountID, memberID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"accountId": result.AccountID,
		"memberId":  memberID,
		"email":     result.Email,
		"role":      result.Role,
	})
}

// handleLogout clears the session.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMe returns the authenticated identity plus the member profile if one exists.
func handleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	resp := map[string]any{
		"accountId": sess.AccountID,
		"email":     sess.Email,
		"role":      sess.Role,
	}
	if sess.MemberID != "" {
		m, err := stores.MemberStore.GetByID(r.Context(), sess.MemberID)
		if err != nil {
			internalError(w, err)
			return
		}
		resp["member"] = map[string]any{
			"id":       m.ID,
			"name":     m.Name,
			"team":     m.Team,
			"position": m.Position,
			"number":   m.Number,
			"course":   m.Course,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleChangePassword rotates the caller's own password.
func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       sess.AccountID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, orchestrators.ChangePasswordDeps{
		AccountStore: stores.AccountStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrWrongPassword) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "現在のパスワードが正しくありません"})
			return
		}
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateAccount registers a new account with its member profile. Staff only.
func handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Name     string `json:"name"`
		Team     string `json:"team"`
		Position string `json:"position"`
		Number   int    `json:"number"`
		Course   string `json:"course"`
	}
	if err := strictDecode(r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	result, err := orchestrators.ExecuteCreateAccount(r.Context(), orchestrators.CreateAccountInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Team:     req.Team,
		Position: req.Position,
		Number:   req.Number,
		Course:   req.Course,
	}, orchestrators.CreateAccountDeps{
		AccountStore: stores.AccountStore,
		MemberStore:  stores.MemberStore,
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "このメールアドレスは既に登録されています"})
			return
		}
		badRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"accountId": result.AccountID,
		"memberId":  result.MemberID,
	})
}

// handleListMembers returns all member profiles.
func handleListMembers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageFromRequest(r)
	members, err := stores.MemberStore.List(r.Context(), memberStore.ListFilter{Limit: limit, Offset: offset})
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(members))
	for _, m := range members {
		out = append(out, map[string]any{
			"id":       m.ID,
			"name":     m.DisplayName(),
			"team":     m.Team,
			"position": m.Position,
			"number":   m.Number,
			"course":   m.Course,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": out})
}

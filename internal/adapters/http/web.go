package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"clubhouse/internal/adapters/email"
	"clubhouse/internal/adapters/http/middleware"
	"clubhouse/internal/adapters/http/perf"
	absenceStore "clubhouse/internal/adapters/storage/absence"
	accountStore "clubhouse/internal/adapters/storage/account"
	attendanceStore "clubhouse/internal/adapters/storage/attendance"
	chatStore "clubhouse/internal/adapters/storage/chat"
	clockStore "clubhouse/internal/adapters/storage/clock"
	memberStore "clubhouse/internal/adapters/storage/member"
	noticeStore "clubhouse/internal/adapters/storage/notice"
	practiceStore "clubhouse/internal/adapters/storage/practice"
	scheduleStore "clubhouse/internal/adapters/storage/schedule"
	videoStore "clubhouse/internal/adapters/storage/video"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	MemberStore     memberStore.Store
	ScheduleStore   scheduleStore.Store
	AttendanceStore attendanceStore.Store
	ClockStore      clockStore.Store
	PracticeStore   practiceStore.Store
	ChatStore       chatStore.Store
	VideoStore      videoStore.Store
	AbsenceStore    absenceStore.Store
	NoticeStore     noticeStore.Store
}

// loadCSRFKey reads the CSRF secret from CLUB_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUB_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUB_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("CLUB_ENV") == "production" {
		log.Fatal("CLUB_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set CLUB_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global realtime hub pushing chat messages to websocket subscribers (set by NewMux)
var hub *Hub

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string
var staffEmailAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from, staff string) {
	emailSender = sender
	emailFromAddress = from
	staffEmailAddress = staff
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	hub = NewHub()
	middleware.SecureCookies = os.Getenv("CLUB_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

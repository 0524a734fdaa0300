package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "clubhouse/internal/adapters/email"
	web "clubhouse/internal/adapters/http"
	"clubhouse/internal/adapters/http/perf"
	"clubhouse/internal/adapters/storage"
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
	"clubhouse/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// WAL mode with foreign keys and a busy timeout suits a single-node deployment
	dbPath := envOrDefault("CLUB_DB", "clubhouse.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	mbrStore := memberStore.NewSQLiteStore(timedDB)
	chStore := chatStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:    acctStore,
		MemberStore:     mbrStore,
		ScheduleStore:   scheduleStore.NewSQLiteStore(timedDB),
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
		ClockStore:      clockStore.NewSQLiteStore(timedDB),
		PracticeStore:   practiceStore.NewSQLiteStore(timedDB),
		ChatStore:       chStore,
		VideoStore:      videoStore.NewSQLiteStore(timedDB),
		AbsenceStore:    absenceStore.NewSQLiteStore(timedDB),
		NoticeStore:     noticeStore.NewSQLiteStore(timedDB),
	}

	// Seed default accounts and chat rooms (idempotent)
	seedDeps := orchestrators.SeedDeps{
		AccountStore: acctStore,
		MemberStore:  mbrStore,
		ChatStore:    chStore,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedDeps); err != nil {
		log.Fatalf("failed to seed defaults: %v", err)
	}

	// Configure email sender for absence notifications
	resendKey := os.Getenv("CLUB_RESEND_KEY")
	emailFrom := envOrDefault("CLUB_EMAIL_FROM", "Clubhouse <noreply@clubhouse.local>")
	staffEmail := envOrDefault("CLUB_STAFF_EMAIL", "staff@clubhouse.local")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom, staffEmail)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom, staffEmail)
		if os.Getenv("CLUB_ENV") == "production" {
			log.Println("WARNING: CLUB_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set CLUB_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(envOrDefault("CLUB_STATIC_DIR", "static"), stores, collector)

	addr := envOrDefault("CLUB_ADDR", ":8080")
	log.Printf("Clubhouse %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("CLUB_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

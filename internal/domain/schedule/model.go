package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Event type constants.
const (
	TypePractice = "practice" // regular training session
	TypeMatch    = "match"    // match against another club
	TypeEvent    = "event"    // everything else (trips, meetings, socials)
)

// Max length constants.
const (
	MaxTitleLength    = 200
	MaxTimeLength     = 100
	MaxLocationLength = 200
	MaxItems          = 20
)

// Event represents a single club calendar entry.
// Day is the day of month. Month and Year may be zero, in which case the
// event applies to whatever month/year the caller is currently viewing —
// the resolver substitutes the reference month/year for zero values.
// PRE: Title is non-empty. Day is 1-31. Type is practice/match/event.
type Event struct {
	ID        string
	Title     string
	TimeRange string // free-text time range, e.g. "16:00〜18:00"
	Location  string
	Type      string
	Items     []string // things to bring
	Day       int
	Month     time.Month // 1-12; 0 means "viewing month"
	Year      int        // 0 means "viewing year"
	CreatedBy string     // account ID
	CreatedAt time.Time
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if e.Title == "" {
		return errors.New("event title cannot be empty")
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if e.Type != TypePractice && e.Type != TypeMatch && e.Type != TypeEvent {
		return errors.New("event type must be 'practice', 'match' or 'event'")
	}
	if e.Day < 1 || e.Day > 31 {
		return errors.New("event day must be between 1 and 31")
	}
	if e.Month < 0 || e.Month > 12 {
		return errors.New("event month must be between 1 and 12 when set")
	}
	if e.Year < 0 {
		return errors.New("event year cannot be negative")
	}
	if len(e.TimeRange) > MaxTimeLength {
		return errors.New("event time cannot exceed 100 characters")
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	if len(e.Items) > MaxItems {
		return errors.New("event cannot carry more than 20 items")
	}
	return nil
}

// NextEventResult identifies the chronologically nearest upcoming event.
type NextEventResult struct {
	Event   Event
	IsToday bool
	Label   string     // "本日" or "N月D日"
	Month   time.Month // resolved month (1-12)
	Year    int        // resolved year
}

// monthNames is indexed by time.Month - 1.
var monthNames = [...]string{
	"1月", "2月", "3月", "4月", "5月", "6月",
	"7月", "8月", "9月", "10月", "11月", "12月",
}

// NextEvent resolves the single nearest event at or after the reference date.
// Events with zero Month/Year are treated as belonging to the reference
// month/year. Same-day ties keep input order. The input slice is not mutated.
// PRE: ref is a valid date; events may be empty
// POST: returns nil when no event falls on or after ref's calendar day
func NextEvent(events []Event, ref time.Time) *NextEventResult {
	if len(events) == 0 {
		return nil
	}

	refYear, refMonth, refDay := ref.Date()

	best := -1
	var bestY, bestD int
	var bestM time.Month
	for i, e := range events {
		y, m := e.Year, e.Month
		if y == 0 {
			y = refYear
		}
		if m == 0 {
			m = refMonth
		}
		// Strictly before the reference month: gone.
		if y < refYear || (y == refYear && m < refMonth) {
			continue
		}
		// Within the reference month, days before today are gone too.
		if y == refYear && m == refMonth && e.Day < refDay {
			continue
		}
		// Strict less-than keeps the earliest same-day event in input order.
		if best == -1 || lessDate(y, m, e.Day, bestY, bestM, bestD) {
			best, bestY, bestM, bestD = i, y, m, e.Day
		}
	}
	if best == -1 {
		return nil
	}

	isToday := bestY == refYear && bestM == refMonth && bestD == refDay
	label := "本日"
	if !isToday {
		label = fmt.Sprintf("%s%d日", monthNames[bestM-1], bestD)
	}

	return &NextEventResult{
		Event:   events[best],
		IsToday: isToday,
		Label:   label,
		Month:   bestM,
		Year:    bestY,
	}
}

// lessDate reports whether (y1,m1,d1) sorts before (y2,m2,d2).
func lessDate(y1 int, m1 time.Month, d1 int, y2 int, m2 time.Month, d2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}

package participation

import "time"

// MaxStreakDays bounds the backward walk so pathological date sets cannot
// send the streak computation scanning years of history.
const MaxStreakDays = 365

// GoalWindowDays is the length of the rolling participation goal window.
const GoalWindowDays = 10

// DateLayout is the calendar-day format used throughout ("2006-01-02").
const DateLayout = "2006-01-02"

// Summary holds the derived participation figures for one member.
type Summary struct {
	Streak       int // consecutive participation days ending today or yesterday
	TotalCount   int // distinct participation days (stamps/badges earned)
	GoalProgress int // participation days within the last 10 calendar days
}

// Compute derives a participation summary from a set of YYYY-MM-DD dates.
// Dates are already in the member's local calendar; no timezone handling
// happens here. The streak walks backward from today, or from yesterday when
// today has not been logged yet, and stops at the first gap or after
// MaxStreakDays days. GoalProgress counts the dates among the GoalWindowDays
// most recent days ending today inclusive, so it never exceeds the window.
// PRE: today parses as DateLayout
// POST: pure function of (dates, today); the input slice is not mutated
func Compute(dates []string, today string) Summary {
	set := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}

	ref, err := time.Parse(DateLayout, today)
	if err != nil {
		return Summary{TotalCount: len(set)}
	}

	cursor := ref
	if _, ok := set[today]; !ok {
		// Today not logged yet: an in-progress day must not zero the streak.
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		if _, ok := set[cursor.Format(DateLayout)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	goal := 0
	for i := 0; i < GoalWindowDays; i++ {
		day := ref.AddDate(0, 0, -i).Format(DateLayout)
		if _, ok := set[day]; ok {
			goal++
		}
	}

	return Summary{
		Streak:       streak,
		TotalCount:   len(set),
		GoalProgress: goal,
	}
}

// UnionDates merges two date lists into one distinct set, preserving no
// particular order. Used to combine clock-in dates with practice-log dates.
// PRE: none
// POST: result contains each date exactly once
func UnionDates(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, d := range list {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

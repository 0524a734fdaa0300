package practice

import (
	"testing"
	"time"
)

// TestValidate covers practice record invariants.
func TestValidate(t *testing.T) {
	valid := Record{
		ID:       "p1",
		MemberID: "m1",
		Date:     "2024-03-12",
		Mood:     "😊",
		Menu:     "パス練習とシュート練習",
		Tags:     []string{"パス練習", "体幹トレ"},
		SavedAt:  time.Now(),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid record, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"no member", func(r *Record) { r.MemberID = "" }},
		{"bad date", func(r *Record) { r.Date = "2024/03/12" }},
		{"empty menu", func(r *Record) { r.Menu = "" }},
		{"empty tag", func(r *Record) { r.Tags = []string{""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

package clock

import (
	"testing"
	"time"
)

// TestValidate covers the record invariants.
func TestValidate(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		rec     Record
		wantErr bool
	}{
		{"clocked in only", Record{MemberID: "m1", Date: "2024-03-12", ClockIn: now}, false},
		{"full day", Record{MemberID: "m1", Date: "2024-03-12", ClockIn: now, ClockOut: now.Add(2 * time.Hour)}, false},
		{"no member", Record{Date: "2024-03-12", ClockIn: now}, true},
		{"bad date", Record{MemberID: "m1", Date: "12/03/2024", ClockIn: now}, true},
		{"out before in", Record{MemberID: "m1", Date: "2024-03-12", ClockIn: now, ClockOut: now.Add(-time.Hour)}, true},
		{"out without in", Record{MemberID: "m1", Date: "2024-03-12", ClockOut: now}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestClockState verifies the state predicates.
func TestClockState(t *testing.T) {
	r := Record{MemberID: "m1", Date: "2024-03-12"}
	if r.IsClockedIn() || r.IsClockedOut() {
		t.Error("fresh record must be neither clocked in nor out")
	}
	r.ClockIn = time.Now()
	if !r.IsClockedIn() || r.IsClockedOut() {
		t.Error("expected clocked in but not out")
	}
	r.ClockOut = r.ClockIn.Add(time.Hour)
	if !r.IsClockedOut() {
		t.Error("expected clocked out")
	}
}

package member

import (
	"strings"
	"testing"
)

// TestValidate_Valid verifies a typical profile passes.
func TestValidate_Valid(t *testing.T) {
	m := Member{
		ID:        "m1",
		AccountID: "a1",
		Name:      "田中 拓真",
		Team:      "Aチーム",
		Position:  "FW",
		Number:    10,
		Course:    "週3コース",
	}
	if err := m.Validate(); err != nil {
		t.Errorf("expected valid member, got %v", err)
	}
}

// TestValidate_Rejections covers validation failures.
func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		member Member
	}{
		{"empty name", Member{Name: ""}},
		{"whitespace name", Member{Name: "   "}},
		{"name too long", Member{Name: strings.Repeat("あ", MaxNameLength+1)}},
		{"negative number", Member{Name: "ok", Number: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.member.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestDisplayName verifies the placeholder fallback.
func TestDisplayName(t *testing.T) {
	named := Member{Name: "佐藤"}
	if got := named.DisplayName(); got != "佐藤" {
		t.Errorf("expected 佐藤, got %q", got)
	}
	unnamed := Member{Name: " "}
	if got := unnamed.DisplayName(); got != NamePlaceholder {
		t.Errorf("expected placeholder, got %q", got)
	}
}

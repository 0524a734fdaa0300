package video

import "testing"

// TestFolderValidate covers folder invariants.
func TestFolderValidate(t *testing.T) {
	ok := Folder{ID: "f1", Name: "2024春季大会"}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid folder, got %v", err)
	}
	empty := Folder{Name: "  "}
	if err := empty.Validate(); err == nil {
		t.Error("expected error for blank folder name")
	}
}

// TestMatchVideoValidate covers video invariants.
func TestMatchVideoValidate(t *testing.T) {
	valid := MatchVideo{
		ID:        "v1",
		MemberID:  "m1",
		Title:     "vs 青葉FC 前半",
		MatchDate: "2024-03-10",
		Opponent:  "青葉FC",
		VideoURL:  "m1/abc.mp4",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid video, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*MatchVideo)
	}{
		{"no member", func(v *MatchVideo) { v.MemberID = "" }},
		{"blank title", func(v *MatchVideo) { v.Title = " " }},
		{"bad date", func(v *MatchVideo) { v.MatchDate = "10/03/2024" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := valid
			tt.mutate(&v)
			if err := v.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestIsExternal verifies URL classification.
func TestIsExternal(t *testing.T) {
	external := MatchVideo{VideoURL: "https://example.com/v.mp4"}
	if !external.IsExternal() {
		t.Error("https URL should be external")
	}
	stored := MatchVideo{VideoURL: "m1/abc.mp4"}
	if stored.IsExternal() {
		t.Error("storage path should not be external")
	}
}

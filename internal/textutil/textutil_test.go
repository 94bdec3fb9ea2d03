package textutil_test

import (
	"testing"

	"engage/internal/textutil"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"squat_form.jpg", "Squat Form"},
		{"warm-up--stretch.PNG", "Warm Up Stretch"},
		{"HIIT.png", "HIIT"},
		{"plain", "Plain"},
		{".jpg", ".jpg"},
	}
	for _, tt := range tests {
		if got := textutil.DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsSafeFileName(t *testing.T) {
	valid := []string{"Alice", "default", "Coach Bob", "José"}
	for _, name := range valid {
		if !textutil.IsSafeFileName(name) {
			t.Errorf("expected %q to be safe", name)
		}
	}
	invalid := []string{"", " Alice", "Alice ", ".hidden", "a/b", `a\b`, "a:b", "tab\tname", "what?"}
	for _, name := range invalid {
		if textutil.IsSafeFileName(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestIsHiddenName(t *testing.T) {
	if !textutil.IsHiddenName(".DS_Store") || !textutil.IsHiddenName("") || !textutil.IsHiddenName(".") {
		t.Fatal("expected hidden names to be detected")
	}
	if textutil.IsHiddenName("Cardio") {
		t.Fatal("unexpected hidden result for Cardio")
	}
}

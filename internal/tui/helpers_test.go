package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   string
		want  string
	}{
		{"append to empty", "", "a", "a"},
		{"append digit", "2024-0", "5", "2024-05"},
		{"append space", "sick", " ", "sick "},
		{"space key name", "sick", "space", "sick "},
		{"backspace", "hello", "backspace", "hell"},
		{"backspace on empty", "", "backspace", ""},
		{"backspace multibyte", "héllo wörld", "backspace", "héllo wörl"},
		{"ignores named keys", "abc", "enter", "abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := editRune(tc.start, tc.key); got != tc.want {
				t.Errorf("editRune(%q, %q) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	full := strings.Repeat("x", maxInputLen)
	if got := editRune(full, "y"); got != full {
		t.Errorf("input should be clamped at %d runes", maxInputLen)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines 0 should not truncate, got %q", got)
	}
	if got := truncateToHeight("one", 3); got != "one" {
		t.Errorf("got %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("hello world", 5); got != "hell…" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("hi", 5); got != "hi" {
		t.Errorf("got %q", got)
	}
	if got := truncStr("hi", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("got %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tc := range tests {
		if got := formatTime(time.Now().Add(-tc.ago)); got != tc.want {
			t.Errorf("formatTime(-%s) = %q, want %q", tc.ago, got, tc.want)
		}
	}
	if got := formatTime(time.Time{}); got != "-" {
		t.Errorf("zero time = %q", got)
	}
}

func TestRequestSummary(t *testing.T) {
	reason := "family\n  trip"
	r := domain.LeaveRequest{
		ID:        9,
		Status:    domain.StatusPending,
		StartDate: domain.NewDate(2024, 5, 1),
		EndDate:   domain.NewDate(2024, 5, 3),
		Reason:    &reason,
	}
	want := "Leave request #9: 2024-05-01 to 2024-05-03, Pending (family trip)"
	if got := requestSummary(r); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := dateRange(r); got != "2024-05-01 → 2024-05-03 (3d)" {
		t.Errorf("dateRange = %q", got)
	}
}

func TestFormNavigation(t *testing.T) {
	f := newForm(formField{label: "a"}, formField{label: "b"}, formField{label: "c", secret: true})

	f.handleKey("shift+tab")
	if f.focus != 2 {
		t.Errorf("shift+tab from first should wrap to last, got %d", f.focus)
	}
	f.handleKey("tab")
	if f.focus != 0 {
		t.Errorf("tab from last should wrap to first, got %d", f.focus)
	}

	if !f.handleKey("x") || f.value(0) != "x" {
		t.Errorf("typing should edit the focused field, got %q", f.value(0))
	}
	if f.handleKey("ctrl+z") {
		t.Error("unknown keys should not be consumed")
	}

	f.focus = 2
	f.handleKey("s")
	f.handleKey("3")
	if strings.Contains(f.view(), "s3") {
		t.Error("secret fields should be masked")
	}

	f.reset()
	if f.focus != 0 || f.value(2) != "" {
		t.Error("reset should clear values and focus")
	}
}

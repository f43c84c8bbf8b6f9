package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

// formatTime renders a relative timestamp for list displays.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// oneLine collapses whitespace so free text fits in a table cell.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dateRange renders "2024-05-01 → 2024-05-03 (3d)".
func dateRange(r domain.LeaveRequest) string {
	return fmt.Sprintf("%s → %s (%dd)", r.StartDate, r.EndDate, r.Days())
}

// requestSummary is the plain-text form of a request used for copying.
func requestSummary(r domain.LeaveRequest) string {
	s := fmt.Sprintf("Leave request #%d: %s to %s, %s", r.ID, r.StartDate, r.EndDate, r.Status.Label())
	if reason := oneLine(r.ReasonText()); reason != "" {
		s += " (" + reason + ")"
	}
	return s
}

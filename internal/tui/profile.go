package tui

import (
	"fmt"
	"strings"

	"github.com/naveenspark/leavedesk/pkg/domain"
)

// profileView renders the signed-in user's details.
func profileView(u domain.User) string {
	if u == nil {
		return "\n " + dimStyle.Render("not signed in") + "\n"
	}
	id := u.Profile()

	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("PROFILE") + "\n\n")
	fmt.Fprintf(&b, " %s  %s %s\n\n",
		accentStyle.Render(id.Initials()), selectedStyle.Render(id.FullName()), RoleBadge(u.UserRole()))

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "   %s %s\n", metaStyle.Render(padRight(label, 14)), normalStyle.Render(value))
	}
	row("email", id.Email)
	row("national id", id.NationalID)
	if id.PhoneNumber != nil {
		row("phone", *id.PhoneNumber)
	} else {
		row("phone", "")
	}
	if !id.DateJoined.IsZero() {
		row("joined", id.DateJoined.Format("2006-01-02"))
	}

	if e, ok := u.(*domain.Employee); ok {
		fmt.Fprintf(&b, "   %s %s\n", metaStyle.Render(padRight("leave left", 14)), leaveLeft(e.LeaveRequestsLeft))
		if e.AssignedSupervisor != nil {
			row("supervisor", fmt.Sprintf("%s <%s>", e.AssignedSupervisor.FullName(), e.AssignedSupervisor.Email))
		} else {
			row("supervisor", "")
		}
	}
	return b.String()
}

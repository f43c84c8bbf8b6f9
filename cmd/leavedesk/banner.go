package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/lipgloss"
)

var signedOutLines = [...]string{
	"Your calendar is wide open. Sign in to fill it with something better than work.",
	"Nobody can approve a request they never received.",
	"The out-of-office reply is ready. The request is not.",
	"Rest is a deliverable too.",
	"Your supervisor cannot read minds. Submit the dates.",
	"A pending request is worth two daydreams.",
	"Some people plan vacations. Others plan to plan them.",
	"Sign in first. The beach will wait.",
}

func printSignedOut(w io.Writer) {
	msg := signedOutLines[rand.IntN(len(signedOutLines))]

	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2dd4bf")).
		Bold(true).
		Render("LEAVEDESK")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(msg)

	hint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render("To sign in: leavedesk login")

	fmt.Fprintf(w, "\n%s\n\n%s\n\n%s\n\n", title, quote, hint)
}

package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxInputLen is the maximum number of runes allowed in form inputs.
const maxInputLen = 500

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to maxInputLen runes.
func editRune(text string, key string) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case "space":
		key = " "
	}
	if utf8.RuneCountInString(key) == 1 {
		if utf8.RuneCountInString(text) >= maxInputLen {
			return text
		}
		return text + key
	}
	return text
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// formField is one labelled input of a form.
type formField struct {
	label       string
	placeholder string
	value       string
	secret      bool
}

// form is a vertical list of text inputs with a focused field.
type form struct {
	fields []formField
	focus  int
}

func newForm(fields ...formField) form {
	return form{fields: fields}
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.fields[i].value)
}

func (f *form) set(i int, v string) {
	f.fields[i].value = v
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focus = 0
}

func (f *form) next() { f.focus = (f.focus + 1) % len(f.fields) }
func (f *form) prev() { f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields) }

// handleKey applies navigation and editing keys. It returns false for keys
// the form does not consume.
func (f *form) handleKey(key string) bool {
	switch key {
	case "tab", "down":
		f.next()
	case "shift+tab", "up":
		f.prev()
	default:
		cur := &f.fields[f.focus].value
		edited := editRune(*cur, key)
		if edited == *cur && key != "backspace" {
			return false
		}
		*cur = edited
	}
	return true
}

// view renders the form with a block cursor on the focused field.
func (f form) view() string {
	width := 0
	for _, fld := range f.fields {
		if n := utf8.RuneCountInString(fld.label); n > width {
			width = n
		}
	}

	var b strings.Builder
	for i, fld := range f.fields {
		cursor := " "
		style := metaStyle
		if i == f.focus {
			cursor = accentStyle.Render(">")
			style = selectedStyle
		}

		value := fld.value
		if fld.secret {
			value = strings.Repeat("•", utf8.RuneCountInString(value))
		}
		switch {
		case value == "" && i != f.focus:
			value = inputPlaceholderStyle.Render(fld.placeholder)
		case i == f.focus:
			value = normalStyle.Render(value) + accentStyle.Render("█")
		default:
			value = dimStyle.Render(value)
		}
		fmt.Fprintf(&b, " %s %s  %s\n", cursor, style.Render(padRight(fld.label, width)), value)
	}
	return b.String()
}

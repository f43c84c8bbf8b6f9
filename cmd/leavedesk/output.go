package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/term"

	"github.com/naveenspark/leavedesk/internal/tui"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2dd4bf")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#505868"))
)

// renderTable draws rows with the shared border and header style. statusCol
// is colored by leave status; pass -1 for none.
func renderTable(headers []string, rows [][]string, statusCol int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusCol && row >= 0 && row < len(rows) {
				return tui.StatusStyle(domain.LeaveStatus(strings.ToLower(rows[row][col]))).Padding(0, 1)
			}
			return cellStyle
		})
	return t.Render()
}

func requestRows(items []domain.LeaveRequest, withEmployee bool) (headers []string, rows [][]string) {
	headers = []string{"ID", "START", "END", "DAYS", "STATUS", "CREATED", "REASON"}
	if withEmployee {
		headers = append(headers, "EMPLOYEE")
	}
	for _, r := range items {
		row := []string{
			strconv.FormatInt(r.ID, 10),
			r.StartDate.String(),
			r.EndDate.String(),
			strconv.Itoa(r.Days()),
			r.Status.Label(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.ReasonText(),
		}
		if withEmployee {
			row = append(row, strconv.FormatInt(r.Employee, 10))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func employeeRows(items []domain.Employee) (headers []string, rows [][]string) {
	headers = []string{"ID", "NAME", "EMAIL", "NATIONAL ID", "PHONE", "LEAVE LEFT"}
	for _, e := range items {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			e.FullName(),
			e.Email,
			e.NationalID,
			deref(e.PhoneNumber),
			strconv.Itoa(e.LeaveRequestsLeft),
		})
	}
	return headers, rows
}

// printUser writes a label/value block for the signed-in user.
func printUser(w io.Writer, u domain.User) {
	id := u.Profile()
	fmt.Fprintf(w, "%s %s\n\n", lipgloss.NewStyle().Bold(true).Render(id.FullName()), tui.RoleBadge(u.UserRole()))
	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(fmt.Sprintf("%-13s", label)), value)
	}
	line("id", strconv.FormatInt(id.ID, 10))
	line("email", id.Email)
	line("national id", id.NationalID)
	line("phone", deref(id.PhoneNumber))
	if e, ok := u.(*domain.Employee); ok {
		line("leave left", strconv.Itoa(e.LeaveRequestsLeft))
		if e.AssignedSupervisor != nil {
			line("supervisor", e.AssignedSupervisor.FullName()+" <"+e.AssignedSupervisor.Email+">")
		}
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// prompter reads answers from the command's input.
type prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", fmt.Errorf("read %s: %w", strings.TrimSpace(strings.TrimSuffix(label, ": ")), err)
	}
	return strings.TrimSpace(s), nil
}

// secret reads without echo when input is a terminal.
func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(f.Fd()) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(f.Fd())
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	return p.line(label)
}

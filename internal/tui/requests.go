package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

type requestsModel struct {
	svc       *service.Service
	role      domain.Role
	items     []domain.LeaveRequest
	cursor    int
	offset    int
	loading   bool
	loaded    bool
	busy      bool
	err       string
	statusMsg string
	width     int
	height    int
}

type requestsLoadedMsg struct {
	res service.Result[[]domain.LeaveRequest]
}

type requestDecidedMsg struct {
	id     int64
	status domain.LeaveStatus
	res    service.Result[*domain.StatusUpdate]
}

type requestDeletedMsg struct {
	id  int64
	res service.Result[struct{}]
}

type copyResultMsg struct {
	err error
}

func newRequestsModel(svc *service.Service, role domain.Role) requestsModel {
	return requestsModel{svc: svc, role: role}
}

func (m requestsModel) Init() tea.Cmd {
	return m.load()
}

func (m requestsModel) load() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return requestsLoadedMsg{res: svc.ListLeaveRequests(context.Background())}
	}
}

func (m requestsModel) selected() (domain.LeaveRequest, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return domain.LeaveRequest{}, false
	}
	return m.items[m.cursor], true
}

func (m requestsModel) Update(msg tea.Msg) (requestsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		m.loading = false
		m.loaded = true
		if !msg.res.OK() {
			m.err = msg.res.Error
			return m, nil
		}
		m.err = ""
		m.items = msg.res.Data
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}
		m.clampOffset()
		return m, nil

	case requestDecidedMsg:
		m.busy = false
		if !msg.res.OK() {
			m.statusMsg = errorStyle.Render(msg.res.Error)
			return m, nil
		}
		m.statusMsg = okStyle.Render(fmt.Sprintf("request #%d %s", msg.id, msg.res.Data.Status))
		m.loading = true
		return m, m.load()

	case requestDeletedMsg:
		m.busy = false
		if !msg.res.OK() {
			m.statusMsg = errorStyle.Render(msg.res.Error)
			return m, nil
		}
		m.statusMsg = okStyle.Render(fmt.Sprintf("request #%d deleted", msg.id))
		m.loading = true
		return m, m.load()

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = errorStyle.Render("copy failed: " + msg.err.Error())
		} else {
			m.statusMsg = dimStyle.Render("copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m requestsModel) updateKeys(msg tea.KeyMsg) (requestsModel, tea.Cmd) {
	key := msg.String()
	switch key {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.clampOffset()
		}
		return m, nil
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}
		return m, nil
	case "g":
		m.cursor, m.offset = 0, 0
		return m, nil
	case "G":
		m.cursor = max(len(m.items)-1, 0)
		m.clampOffset()
		return m, nil
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.statusMsg = ""
		return m, m.load()
	}

	r, ok := m.selected()
	if !ok || m.busy {
		return m, nil
	}

	switch key {
	case "y":
		text := requestSummary(r)
		return m, func() tea.Msg {
			return copyResultMsg{err: clipboard.WriteAll(text)}
		}
	case "a", "x":
		if m.role != domain.RoleSupervisor {
			return m, nil
		}
		to := domain.StatusApproved
		if key == "x" {
			to = domain.StatusRejected
		}
		if !domain.CanTransition(r.Status, to) {
			m.statusMsg = dimStyle.Render(fmt.Sprintf("request #%d is already %s", r.ID, r.Status))
			return m, nil
		}
		m.busy = true
		m.statusMsg = dimStyle.Render("updating...")
		svc := m.svc
		return m, func() tea.Msg {
			return requestDecidedMsg{id: r.ID, status: to, res: svc.UpdateLeaveRequestStatus(context.Background(), r.ID, to)}
		}
	case "d":
		if m.role != domain.RoleEmployee {
			return m, nil
		}
		if !domain.CanDelete(r.Status) {
			m.statusMsg = dimStyle.Render("only pending requests can be deleted")
			return m, nil
		}
		m.busy = true
		m.statusMsg = dimStyle.Render("deleting...")
		svc := m.svc
		return m, func() tea.Msg {
			return requestDeletedMsg{id: r.ID, res: svc.DeleteLeaveRequest(context.Background(), r.ID)}
		}
	}
	return m, nil
}

// visibleRows is how many list rows fit below the header and status lines.
func (m requestsModel) visibleRows() int {
	if m.height <= 0 {
		return 15
	}
	return max(m.height-6, 3)
}

func (m *requestsModel) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m requestsModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("LEAVE REQUESTS"))
	if m.loading {
		b.WriteString("  " + dimStyle.Render("loading..."))
	}
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		b.WriteString(" " + dimStyle.Render("press r to retry") + "\n")
		return b.String()
	}
	if !m.loaded {
		return b.String()
	}
	if len(m.items) == 0 {
		b.WriteString(" " + dimStyle.Render("no leave requests yet") + "\n")
		return b.String()
	}

	header := fmt.Sprintf("   %s %s %s %s",
		padRight("#", 6), padRight("dates", 32), padRight("status", 10), "created")
	if m.role == domain.RoleSupervisor {
		header += "   employee"
	}
	b.WriteString(metaStyle.Render(header) + "\n")

	rows := m.visibleRows()
	end := min(m.offset+rows, len(m.items))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.items[i], i == m.cursor))
		b.WriteString("\n")
	}

	if r, ok := m.selected(); ok {
		if reason := oneLine(r.ReasonText()); reason != "" {
			width := m.width - 12
			if width < 20 {
				width = 60
			}
			b.WriteString("\n " + metaStyle.Render("reason") + "  " + dimStyle.Render(truncStr(reason, width)) + "\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n " + m.statusMsg + "\n")
	}
	return b.String()
}

func (m requestsModel) renderRow(r domain.LeaveRequest, selected bool) string {
	cursor := "  "
	style := normalStyle
	if selected {
		cursor = accentStyle.Render("> ")
		style = selectedStyle
	}
	status := StatusStyle(r.Status).Render(padRight(r.Status.Label(), 10))
	row := fmt.Sprintf(" %s%s %s %s %s",
		cursor,
		style.Render(padRight(fmt.Sprintf("%d", r.ID), 6)),
		style.Render(padRight(dateRange(r), 32)),
		status,
		metaStyle.Render(padRight(formatTime(r.CreatedAt), 10)),
	)
	if m.role == domain.RoleSupervisor && r.Employee != 0 {
		row += " " + dimStyle.Render(fmt.Sprintf("#%d", r.Employee))
	}
	if selected {
		return selectedRowBg.Render(row)
	}
	return row
}

func (m requestsModel) helpBar() string {
	pairs := []string{"j/k", "move", "r", "reload", "y", "copy"}
	switch m.role {
	case domain.RoleSupervisor:
		pairs = append(pairs, "a", "approve", "x", "reject")
	case domain.RoleEmployee:
		pairs = append(pairs, "d", "delete")
	}
	return helpBar(pairs...)
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

type employeesModel struct {
	svc     *service.Service
	items   []domain.Employee
	cursor  int
	loading bool
	loaded  bool
	err     string
}

type employeesLoadedMsg struct {
	res service.Result[[]domain.Employee]
}

func newEmployeesModel(svc *service.Service) employeesModel {
	return employeesModel{svc: svc}
}

func (m employeesModel) Init() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return employeesLoadedMsg{res: svc.ListEmployees(context.Background())}
	}
}

func (m employeesModel) Update(msg tea.Msg) (employeesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case employeesLoadedMsg:
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

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.Init()
			}
		}
	}
	return m, nil
}

func (m employeesModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("EMPLOYEES"))
	if m.loading {
		b.WriteString("  " + dimStyle.Render("loading..."))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != "":
		b.WriteString(" " + errorStyle.Render(m.err) + "\n")
		return b.String()
	case !m.loaded:
		return b.String()
	case len(m.items) == 0:
		b.WriteString(" " + dimStyle.Render("no employees yet, press 4 to register one") + "\n")
		return b.String()
	}

	b.WriteString(metaStyle.Render(fmt.Sprintf("   %s %s %s %s",
		padRight("name", 24), padRight("email", 30), padRight("phone", 13), "leave left")) + "\n")
	for i, e := range m.items {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			style = selectedStyle
		}
		phone := "-"
		if e.PhoneNumber != nil {
			phone = *e.PhoneNumber
		}
		fmt.Fprintf(&b, " %s%s %s %s %s\n",
			cursor,
			style.Render(padRight(truncStr(e.FullName(), 24), 24)),
			dimStyle.Render(padRight(truncStr(e.Email, 30), 30)),
			metaStyle.Render(padRight(phone, 13)),
			leaveLeft(e.LeaveRequestsLeft))
	}
	return b.String()
}

func leaveLeft(n int) string {
	s := fmt.Sprintf("%d", n)
	if n == 0 {
		return errorStyle.Render(s)
	}
	return accentStyle.Render(s)
}

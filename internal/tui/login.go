package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

const (
	loginEmail = iota
	loginPassword
)

type loginModel struct {
	svc       *service.Service
	form      form
	statusMsg string
	busy      bool
}

// signedInMsg carries the outcome of a sign-in attempt.
type signedInMsg struct {
	res service.Result[domain.User]
}

func newLoginModel(svc *service.Service) loginModel {
	return loginModel{
		svc: svc,
		form: newForm(
			formField{label: "email", placeholder: "you@company.com"},
			formField{label: "password", placeholder: "••••••••", secret: true},
		),
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		m.busy = false
		if !msg.res.OK() {
			m.statusMsg = msg.res.Error
			m.form.set(loginPassword, "")
			return m, nil
		}
		m.statusMsg = ""
		m.form.reset()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		m.statusMsg = ""
		switch msg.String() {
		case "enter", "ctrl+s":
			if m.form.focus == loginEmail {
				m.form.next()
				return m, nil
			}
			return m.submit()
		}
		m.form.handleKey(msg.String())
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := m.form.value(loginEmail)
	password := m.form.fields[loginPassword].value
	if email == "" || password == "" {
		m.statusMsg = "email and password are required"
		return m, nil
	}
	m.busy = true
	svc := m.svc
	return m, func() tea.Msg {
		return signedInMsg{res: svc.SignIn(context.Background(), email, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("SIGN IN") + "\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.statusMsg != "":
		b.WriteString(" " + errorStyle.Render(truncStr(m.statusMsg, 200)))
	}
	return b.String()
}

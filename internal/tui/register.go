package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

const (
	regEmail = iota
	regFirstName
	regLastName
	regNationalID
	regPhone
	regPassword
	regLeave
)

type registerModel struct {
	svc       *service.Service
	form      form
	statusMsg string
	failed    bool
	submitted bool
}

type employeeRegisteredMsg struct {
	res service.Result[*domain.Employee]
}

func newRegisterModel(svc *service.Service) registerModel {
	m := registerModel{
		svc: svc,
		form: newForm(
			formField{label: "email", placeholder: "name@company.com"},
			formField{label: "first name"},
			formField{label: "last name"},
			formField{label: "national id", placeholder: "10 digits"},
			formField{label: "phone", placeholder: "11 digits"},
			formField{label: "password", placeholder: "at least 8 characters", secret: true},
			formField{label: "leave days"},
		),
	}
	m.resetForm()
	return m
}

func (m *registerModel) resetForm() {
	m.form.reset()
	m.form.set(regLeave, strconv.Itoa(domain.DefaultLeaveRequestsLeft))
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case employeeRegisteredMsg:
		m.submitted = false
		if !msg.res.OK() {
			m.failed = true
			m.statusMsg = msg.res.Error
			return m, nil
		}
		m.failed = false
		m.statusMsg = fmt.Sprintf("registered %s (%s)", msg.res.Data.FullName(), msg.res.Data.Email)
		m.resetForm()
		return m, nil

	case tea.KeyMsg:
		if m.submitted {
			return m, nil
		}
		m.statusMsg = ""
		switch msg.String() {
		case "ctrl+s":
			return m.submit()
		case "enter":
			if m.form.focus == len(m.form.fields)-1 {
				return m.submit()
			}
			m.form.next()
			return m, nil
		}
		m.form.handleKey(msg.String())
	}
	return m, nil
}

func (m registerModel) signup() (domain.EmployeeSignup, error) {
	req := domain.EmployeeSignup{
		Email:       m.form.value(regEmail),
		FirstName:   m.form.value(regFirstName),
		LastName:    m.form.value(regLastName),
		NationalID:  m.form.value(regNationalID),
		PhoneNumber: m.form.value(regPhone),
		Password:    m.form.fields[regPassword].value,
	}
	if s := m.form.value(regLeave); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return req, errors.New("leave days must be a number")
		}
		req.LeaveRequestsLeft = n
	}
	return req, domain.Validate(req)
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	req, err := m.signup()
	if err != nil {
		m.failed = true
		m.statusMsg = err.Error()
		return m, nil
	}
	m.submitted = true
	svc := m.svc
	return m, func() tea.Msg {
		return employeeRegisteredMsg{res: svc.SignupEmployee(context.Background(), req)}
	}
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("REGISTER EMPLOYEE") + "\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("registering..."))
	case m.statusMsg != "" && m.failed:
		b.WriteString(" " + errorStyle.Render(truncStr(m.statusMsg, 300)))
	case m.statusMsg != "":
		b.WriteString(" " + okStyle.Render(m.statusMsg))
	}
	return b.String()
}

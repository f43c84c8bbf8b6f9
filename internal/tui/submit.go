package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

const (
	submitStart = iota
	submitEnd
	submitReason
)

type submitModel struct {
	svc       *service.Service
	form      form
	statusMsg string
	failed    bool
	submitted bool
}

type requestCreatedMsg struct {
	res service.Result[*domain.LeaveRequest]
}

func newSubmitModel(svc *service.Service) submitModel {
	return submitModel{
		svc: svc,
		form: newForm(
			formField{label: "start date", placeholder: "YYYY-MM-DD"},
			formField{label: "end date", placeholder: "YYYY-MM-DD"},
			formField{label: "reason", placeholder: "optional"},
		),
	}
}

func (m submitModel) Update(msg tea.Msg) (submitModel, tea.Cmd) {
	switch msg := msg.(type) {
	case requestCreatedMsg:
		m.submitted = false
		if !msg.res.OK() {
			m.failed = true
			m.statusMsg = msg.res.Error
			return m, nil
		}
		m.failed = false
		m.statusMsg = fmt.Sprintf("request #%d submitted, %s", msg.res.Data.ID, msg.res.Data.Status)
		m.form.reset()
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
			if m.form.focus == submitReason {
				return m.submit()
			}
			m.form.next()
			return m, nil
		}
		m.form.handleKey(msg.String())
	}
	return m, nil
}

// parse builds the request from the form, checking dates locally.
func (m submitModel) parse() (domain.NewLeaveRequest, error) {
	var req domain.NewLeaveRequest
	if m.form.value(submitStart) == "" || m.form.value(submitEnd) == "" {
		return req, errors.New(domain.MsgDatesRequired)
	}
	start, err := domain.ParseDate(m.form.value(submitStart))
	if err != nil {
		return req, fmt.Errorf("start date: %w", err)
	}
	end, err := domain.ParseDate(m.form.value(submitEnd))
	if err != nil {
		return req, fmt.Errorf("end date: %w", err)
	}
	req.StartDate, req.EndDate = start, end
	if reason := m.form.value(submitReason); reason != "" {
		req.Reason = &reason
	}
	if err := domain.ValidateLeaveRequest(req); err != nil {
		return req, err
	}
	return req, nil
}

func (m submitModel) submit() (submitModel, tea.Cmd) {
	req, err := m.parse()
	if err != nil {
		m.failed = true
		m.statusMsg = err.Error()
		return m, nil
	}
	m.submitted = true
	svc := m.svc
	return m, func() tea.Msg {
		return requestCreatedMsg{res: svc.CreateLeaveRequest(context.Background(), req)}
	}
}

func (m submitModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + sectionHeaderStyle.Render("NEW LEAVE REQUEST") + "\n\n")
	b.WriteString(m.form.view())
	b.WriteString("\n")
	switch {
	case m.submitted:
		b.WriteString(" " + dimStyle.Render("submitting..."))
	case m.statusMsg != "" && m.failed:
		b.WriteString(" " + errorStyle.Render(truncStr(m.statusMsg, 200)))
	case m.statusMsg != "":
		b.WriteString(" " + okStyle.Render(m.statusMsg))
	}
	return b.String()
}

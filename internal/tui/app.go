package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/leavedesk/internal/browser"
	"github.com/naveenspark/leavedesk/internal/service"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewProfile
	viewRequests
	viewSubmit
	viewEmployees
	viewRegister
)

// profileRefreshedMsg carries the startup profile reload.
type profileRefreshedMsg struct {
	res service.Result[domain.User]
}

// Options configures the dashboard.
type Options struct {
	APIURL   string
	AdminURL string
}

// App is the root Bubbletea model.
type App struct {
	svc        *service.Service
	view       view
	user       domain.User
	login      loginModel
	requests   requestsModel
	submit     submitModel
	employees  employeesModel
	register   registerModel
	helpOpen   bool
	helpCursor int
	helpItems  []helpItem
	notice     string
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the dashboard. A cached session skips the login screen.
func NewApp(svc *service.Service, opts Options) App {
	a := App{
		svc:       svc,
		login:     newLoginModel(svc),
		helpItems: helpItemsFor(opts.APIURL, opts.AdminURL),
	}
	if svc != nil && svc.HasToken() {
		if u := svc.Session().Current(); u != nil {
			a.setUser(u)
			a.view = viewRequests
			a.requests.loading = true
		}
	}
	return a
}

// setUser rebuilds the role-specific screens for u.
func (a *App) setUser(u domain.User) {
	a.user = u
	role := u.UserRole()
	a.requests = newRequestsModel(a.svc, role)
	a.requests.width, a.requests.height = a.width, a.bodyHeight()
	a.submit = newSubmitModel(a.svc)
	a.employees = newEmployeesModel(a.svc)
	a.register = newRegisterModel(a.svc)
}

func (a App) role() domain.Role {
	if a.user == nil {
		return ""
	}
	return a.user.UserRole()
}

func (a App) Init() tea.Cmd {
	if a.user == nil {
		return shimmerTickCmd()
	}
	return tea.Batch(shimmerTickCmd(), a.refreshProfile(), a.requests.Init())
}

func (a App) refreshProfile() tea.Cmd {
	svc := a.svc
	return func() tea.Msg {
		return profileRefreshedMsg{res: svc.RefreshProfile(context.Background())}
	}
}

// Chrome: header(2) + tabs(1) + help(1) = 4 lines
const chromeLines = 4

func (a App) bodyHeight() int {
	return a.height - chromeLines
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.requests.width, a.requests.height = msg.Width, a.bodyHeight()
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case profileRefreshedMsg:
		switch {
		case msg.res.OK():
			a.user = msg.res.Data
			a.notice = ""
		case msg.res.Status == http.StatusUnauthorized:
			a.user = nil
			a.view = viewLogin
			a.login = newLoginModel(a.svc)
			a.notice = "session expired, please sign in again"
		default:
			a.notice = "offline: showing cached profile (" + msg.res.Error + ")"
		}
		return a, nil

	case signedInMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if !msg.res.OK() {
			return a, cmd
		}
		a.notice = ""
		a.setUser(msg.res.Data)
		a.view = viewRequests
		a.requests.loading = true
		return a, a.requests.Init()

	case requestsLoadedMsg, requestDecidedMsg, requestDeletedMsg, copyResultMsg:
		var cmd tea.Cmd
		a.requests, cmd = a.requests.Update(msg)
		return a, cmd

	case requestCreatedMsg:
		var cmd tea.Cmd
		a.submit, cmd = a.submit.Update(msg)
		if msg.res.OK() {
			a.requests.loading = true
			return a, tea.Batch(cmd, a.requests.Init())
		}
		return a, cmd

	case employeesLoadedMsg:
		var cmd tea.Cmd
		a.employees, cmd = a.employees.Update(msg)
		return a, cmd

	case employeeRegisteredMsg:
		var cmd tea.Cmd
		a.register, cmd = a.register.Update(msg)
		if msg.res.OK() {
			a.employees.loading = true
			return a, tea.Batch(cmd, a.employees.Init())
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Help overlay captures all keys when open
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			case "j", "down":
				if a.helpCursor < len(a.helpItems)-1 {
					a.helpCursor++
				}
			case "k", "up":
				if a.helpCursor > 0 {
					a.helpCursor--
				}
			case "enter":
				if a.helpCursor < len(a.helpItems) {
					browser.Open(a.helpItems[a.helpCursor].url) //nolint:errcheck // best-effort browser open
				}
			}
			return a, nil
		}

		if a.isEditing() {
			if msg.String() == "esc" && a.user != nil {
				a.view = viewRequests
				return a, nil
			}
			break
		}

		switch msg.String() {
		case "h":
			a.helpOpen = true
			a.helpCursor = 0
			return a, nil
		case "q":
			return a, tea.Quit
		case "o":
			if a.user != nil {
				return a.signOut(), nil
			}
		case "n":
			return a.switchTo(a.formView())
		case "esc":
			if a.view != viewRequests && a.user != nil {
				return a.switchTo(viewRequests)
			}
		default:
			if v, ok := a.tabForKey(msg.String()); ok {
				return a.switchTo(v)
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRequests:
		a.requests, cmd = a.requests.Update(msg)
	case viewSubmit:
		a.submit, cmd = a.submit.Update(msg)
	case viewEmployees:
		a.employees, cmd = a.employees.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	}
	return a, cmd
}

func (a App) signOut() App {
	if err := a.svc.SignOut(); err != nil {
		a.notice = "sign out: " + err.Error()
	} else {
		a.notice = "signed out"
	}
	a.user = nil
	a.view = viewLogin
	a.login = newLoginModel(a.svc)
	return a
}

// switchTo changes the active screen, reloading lists as they come into view.
func (a App) switchTo(v view) (tea.Model, tea.Cmd) {
	if a.user == nil || v == a.view {
		return a, nil
	}
	a.view = v
	switch v {
	case viewRequests:
		a.requests.loading = true
		return a, a.requests.Init()
	case viewEmployees:
		a.employees.loading = true
		return a, a.employees.Init()
	}
	return a, nil
}

// formView is the create screen for the current role.
func (a App) formView() view {
	if a.role() == domain.RoleSupervisor {
		return viewRegister
	}
	return viewSubmit
}

type tabEntry struct {
	key  string
	name string
	v    view
}

func (a App) tabs() []tabEntry {
	switch a.role() {
	case domain.RoleSupervisor:
		return []tabEntry{
			{"1", "Profile", viewProfile},
			{"2", "Requests", viewRequests},
			{"3", "Employees", viewEmployees},
			{"4", "Register", viewRegister},
		}
	case domain.RoleEmployee:
		return []tabEntry{
			{"1", "Profile", viewProfile},
			{"2", "Requests", viewRequests},
			{"3", "New request", viewSubmit},
		}
	}
	return nil
}

func (a App) tabForKey(key string) (view, bool) {
	for _, t := range a.tabs() {
		if t.key == key {
			return t.v, true
		}
	}
	return 0, false
}

func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewSubmit, viewRegister:
		return true
	}
	return false
}

func (a App) View() string {
	// Header: centered shimmer logo
	logo := renderShimmerLogo(a.frame)
	header := center(logo, a.width)

	var userLine string
	if a.user != nil {
		id := a.user.Profile()
		parts := []string{normalStyle.Render(id.FullName()), RoleBadge(a.user.UserRole())}
		if e, ok := a.user.(*domain.Employee); ok {
			parts = append(parts, metaStyle.Render(fmt.Sprintf("%d days left", e.LeaveRequestsLeft)))
		}
		userLine = strings.Join(parts, metaStyle.Render(" · "))
	}
	if a.notice != "" {
		if userLine != "" {
			userLine += metaStyle.Render(" · ")
		}
		userLine += dimStyle.Render(a.notice)
	}
	header += "\n" + center(userLine, a.width)

	// Tab bar: equal-width columns spread across the terminal
	var tabBar strings.Builder
	if tabs := a.tabs(); len(tabs) > 0 {
		colWidth := a.width / len(tabs)
		for _, t := range tabs {
			var label string
			if t.v == a.view {
				label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
			} else {
				label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
			}
			labelWidth := lipgloss.Width(label)
			leftPad := max((colWidth-labelWidth)/2, 0)
			rightPad := max(colWidth-labelWidth-leftPad, 0)
			tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
		}
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = helpBar("tab", "next", "enter", "sign in", "ctrl+c", "quit")
	case viewProfile:
		body = profileView(a.user)
		help = helpBar("1-4", "tabs", "n", "new", "o", "sign out", "h", "help", "q", "quit")
	case viewRequests:
		body = a.requests.View()
		help = a.requests.helpBar() + "  " + helpEntry("n", "new") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewSubmit:
		body = a.submit.View()
		help = helpBar("tab", "next", "ctrl+s", "submit", "esc", "cancel")
	case viewEmployees:
		body = a.employees.View()
		help = helpBar("j/k", "move", "r", "reload", "n", "register", "h", "help", "q", "quit")
	case viewRegister:
		body = a.register.View()
		help = helpBar("tab", "next", "ctrl+s", "register", "esc", "cancel")
	}

	if a.helpOpen {
		body = helpView(a.helpItems, a.helpCursor)
		help = helpBar("j/k", "nav", "enter", "open", "esc", "close")
	}

	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s", header, tabBar.String(), body, help)
}

func center(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}

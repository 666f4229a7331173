package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanishkm/recyclit/internal/api"
	"github.com/kanishkm/recyclit/internal/controller"
	"github.com/kanishkm/recyclit/internal/guard"
	"github.com/kanishkm/recyclit/internal/session"
)

// Model is the root program model. It owns the session store and the
// controllers, keeps track of the active route, and dispatches every
// message to the screen behind that route. Screen changes always go
// through the route guard.
type Model struct {
	route string

	landing  *LandingModel
	login    *LoginModel
	register *RegisterModel
	menu     *AdminMenuModel
	requests *RequestsModel
	users    *UsersModel

	client   *api.Client
	sessions *session.Store

	width  int
	height int
}

func NewModel(client *api.Client, sessions *session.Store) Model {
	reqCtrl := controller.NewRequestController(client, sessions)
	userCtrl := controller.NewUserController(client)

	m := Model{
		route:    guard.RouteLanding,
		landing:  NewLandingModel(),
		login:    NewLoginModel(client),
		register: NewRegisterModel(client),
		menu:     NewAdminMenuModel(),
		requests: NewRequestsModel(reqCtrl, sessions),
		users:    NewUsersModel(userCtrl, sessions),
		client:   client,
		sessions: sessions,
	}

	// A persisted session skips the landing page and goes straight
	// to that user's home.
	if sess := sessions.Current(); sess.Authenticated() {
		m.navigate(guard.Home(sess.Role()))
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// navigate moves to a route, letting the guard rewrite the target for
// unauthenticated or wrong-role sessions.
func (m *Model) navigate(route string) {
	resolved, required := guard.Resolve(route)
	sess := m.sessions.Current()

	switch guard.Decide(sess, required) {
	case guard.RedirectLogin:
		resolved = guard.RouteLogin
	case guard.RedirectHome:
		resolved = guard.Home(sess.Role())
	}

	m.route = resolved
	switch resolved {
	case guard.RouteUserHome:
		m.requests.Reset(false)
	case guard.RouteAdminRequests:
		m.requests.Reset(true)
	case guard.RouteAdminUsers:
		m.users.Reset()
	case guard.RouteAdminHome:
		m.menu.selected = -1
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSuccessMsg:
		if err := m.sessions.Login(msg.user, msg.token); err != nil {
			m.login.err = err
			m.login.loading = false
			return m, nil
		}
		m.login = NewLoginModel(m.client)
		m.navigate(guard.Home(msg.user.Role))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+o":
			// Logout from any authenticated screen.
			if m.sessions.Current().Authenticated() {
				m.sessions.Logout()
				m.navigate(guard.RouteLogin)
				return m, nil
			}

		case "esc":
			return m.handleBack()
		}
	}

	// Route to the active screen.
	switch m.route {
	case guard.RouteLanding:
		updated, cmd := m.landing.Update(msg)
		m.landing = updated.(*LandingModel)
		if m.landing.selected != -1 {
			switch m.landing.selected {
			case 0:
				m.navigate(guard.RouteLogin)
			case 1:
				m.navigate(guard.RouteRegister)
			case 2:
				return m, tea.Quit
			}
			m.landing.selected = -1
		}
		return m, cmd

	case guard.RouteLogin:
		updated, cmd := m.login.Update(msg)
		m.login = updated.(*LoginModel)
		if m.login.toRegister {
			m.login.toRegister = false
			m.navigate(guard.RouteRegister)
		}
		return m, cmd

	case guard.RouteRegister:
		updated, cmd := m.register.Update(msg)
		m.register = updated.(*RegisterModel)
		if m.register.toLogin {
			m.register = NewRegisterModel(m.client)
			m.navigate(guard.RouteLogin)
		}
		return m, cmd

	case guard.RouteAdminHome:
		updated, cmd := m.menu.Update(msg)
		m.menu = updated.(*AdminMenuModel)
		if m.menu.selected != -1 {
			switch m.menu.selected {
			case 0:
				m.navigate(guard.RouteAdminRequests)
			case 1:
				m.navigate(guard.RouteAdminUsers)
			}
			m.menu.selected = -1
		}
		return m, cmd

	case guard.RouteUserHome, guard.RouteAdminRequests:
		updated, cmd := m.requests.Update(msg)
		m.requests = updated.(*RequestsModel)
		return m, cmd

	case guard.RouteAdminUsers:
		updated, cmd := m.users.Update(msg)
		m.users = updated.(*UsersModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch m.route {
	case guard.RouteLogin, guard.RouteRegister:
		m.navigate(guard.RouteLanding)
	case guard.RouteAdminRequests:
		m.navigate(guard.RouteAdminHome)
	case guard.RouteAdminUsers:
		// Esc first backs out of an open add/edit form.
		if m.users.editing() {
			updated, cmd := m.users.Update(escKeyMsg())
			m.users = updated.(*UsersModel)
			return m, cmd
		}
		m.navigate(guard.RouteAdminHome)
	case guard.RouteLanding, guard.RouteUserHome, guard.RouteAdminHome:
		return m, tea.Quit
	}
	return m, nil
}

func escKeyMsg() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func (m Model) View() string {
	// Status bar (shown when authenticated)
	var statusBar string
	sess := m.sessions.Current()
	if sess.Authenticated() {
		who := lipgloss.NewStyle().
			Foreground(Success).
			Render("♻ " + sess.User.Name)

		email := lipgloss.NewStyle().
			Foreground(Muted).
			Render(" (" + sess.User.Email + ")")

		role := lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Render("  " + string(sess.User.Role))

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(who + email + role)
	}

	var content string
	switch m.route {
	case guard.RouteLanding:
		content = m.landing.View()
	case guard.RouteLogin:
		content = m.login.View()
	case guard.RouteRegister:
		content = m.register.View()
	case guard.RouteAdminHome:
		content = m.menu.View()
	case guard.RouteUserHome, guard.RouteAdminRequests:
		content = m.requests.View()
	case guard.RouteAdminUsers:
		content = m.users.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", content)
	}
	return content
}

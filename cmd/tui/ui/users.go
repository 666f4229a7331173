package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanishkm/recyclit/internal/controller"
	"github.com/kanishkm/recyclit/internal/models"
	"github.com/kanishkm/recyclit/internal/session"
)

type usersLoadedMsg struct {
	users []models.User
}

type usersErrorMsg struct {
	err error
}

type userFormMode int

const (
	modeBrowse userFormMode = iota
	modeAdd
	modeEdit
)

// UsersModel is the admin account screen: the user table plus add,
// edit, and delete. Deleting the signed-in admin's own account is
// rejected by the controller before any network call.
type UsersModel struct {
	ctrl     *controller.UserController
	sessions *session.Store

	users   []models.User
	cursor  int
	loading bool
	loaded  bool
	err     error

	mode          userFormMode
	editID        string
	nameInput     string
	emailInput    string
	passwordInput string
	roleIdx       int
	focusedInput  int
}

var roleChoices = []models.Role{models.RoleUser, models.RoleAdmin}

func NewUsersModel(ctrl *controller.UserController, sessions *session.Store) *UsersModel {
	return &UsersModel{ctrl: ctrl, sessions: sessions}
}

func (m *UsersModel) Reset() {
	m.loaded = false
	m.cursor = 0
	m.err = nil
	m.mode = modeBrowse
}

func (m *UsersModel) editing() bool {
	return m.mode != modeBrowse
}

func (m *UsersModel) Init() tea.Cmd {
	return nil
}

func loadUsersCmd(ctrl *controller.UserController, sess models.Session) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.List(context.Background(), sess); err != nil {
			return usersErrorMsg{err: err}
		}
		return usersLoadedMsg{users: ctrl.Users()}
	}
}

func addUserCmd(ctrl *controller.UserController, sess models.Session, draft models.RegisterDraft) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Add(context.Background(), sess, draft); err != nil {
			return usersErrorMsg{err: err}
		}
		return usersLoadedMsg{users: ctrl.Users()}
	}
}

func updateUserCmd(ctrl *controller.UserController, sess models.Session, id string, update models.UserUpdate) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Update(context.Background(), sess, id, update); err != nil {
			return usersErrorMsg{err: err}
		}
		return usersLoadedMsg{users: ctrl.Users()}
	}
}

func deleteUserCmd(ctrl *controller.UserController, sess models.Session, id string) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Delete(context.Background(), sess, id); err != nil {
			return usersErrorMsg{err: err}
		}
		return usersLoadedMsg{users: ctrl.Users()}
	}
}

func (m *UsersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.users = msg.users
		m.mode = modeBrowse
		if m.cursor >= len(m.users) {
			m.cursor = len(m.users) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case usersErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.mode == modeBrowse {
			if cmd := m.handleBrowseKey(msg); cmd != nil {
				return m, cmd
			}
		} else {
			if cmd := m.handleFormKey(msg); cmd != nil {
				return m, cmd
			}
		}
	}

	if !m.loaded && !m.loading {
		m.loading = true
		return m, loadUsersCmd(m.ctrl, m.sessions.Current())
	}

	return m, nil
}

func (m *UsersModel) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	sess := m.sessions.Current()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		m.err = nil
		return loadUsersCmd(m.ctrl, sess)
	case "a":
		m.mode = modeAdd
		m.nameInput = ""
		m.emailInput = ""
		m.passwordInput = ""
		m.roleIdx = 0
		m.focusedInput = 0
		m.err = nil
	case "e":
		if len(m.users) == 0 {
			return nil
		}
		u := m.users[m.cursor]
		m.mode = modeEdit
		m.editID = u.ID
		m.nameInput = u.Name
		m.emailInput = u.Email
		m.roleIdx = 0
		if u.Role == models.RoleAdmin {
			m.roleIdx = 1
		}
		m.focusedInput = 0
		m.err = nil
	case "x":
		if len(m.users) == 0 {
			return nil
		}
		m.loading = true
		m.err = nil
		return deleteUserCmd(m.ctrl, sess, m.users[m.cursor].ID)
	}
	return nil
}

func (m *UsersModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	fields := 4 // name, email, password, role
	if m.mode == modeEdit {
		fields = 3 // name, email, role
	}

	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.err = nil
		return nil
	case "tab":
		m.focusedInput = (m.focusedInput + 1) % fields
		return nil
	case "shift+tab":
		m.focusedInput = (m.focusedInput + fields - 1) % fields
		return nil
	case "left", "right":
		if m.focusedInput == fields-1 {
			m.roleIdx = (m.roleIdx + 1) % len(roleChoices)
		}
		return nil
	case "enter":
		return m.submitForm()
	case "backspace":
		switch m.focusedInput {
		case 0:
			if len(m.nameInput) > 0 {
				m.nameInput = m.nameInput[:len(m.nameInput)-1]
			}
		case 1:
			if len(m.emailInput) > 0 {
				m.emailInput = m.emailInput[:len(m.emailInput)-1]
			}
		case 2:
			if m.mode == modeAdd && len(m.passwordInput) > 0 {
				m.passwordInput = m.passwordInput[:len(m.passwordInput)-1]
			}
		}
		return nil
	}

	if len(msg.String()) == 1 {
		switch m.focusedInput {
		case 0:
			m.nameInput += msg.String()
		case 1:
			m.emailInput += msg.String()
		case 2:
			if m.mode == modeAdd {
				m.passwordInput += msg.String()
			}
		}
	}
	return nil
}

func (m *UsersModel) submitForm() tea.Cmd {
	sess := m.sessions.Current()
	role := roleChoices[m.roleIdx]

	if m.mode == modeAdd {
		draft := models.RegisterDraft{
			Name:     m.nameInput,
			Email:    m.emailInput,
			Password: m.passwordInput,
			Role:     role,
		}
		m.loading = true
		m.err = nil
		return addUserCmd(m.ctrl, sess, draft)
	}

	update := models.UserUpdate{
		Name:  m.nameInput,
		Email: m.emailInput,
		Role:  role,
	}
	m.loading = true
	m.err = nil
	return updateUserCmd(m.ctrl, sess, m.editID, update)
}

func (m *UsersModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("USER MANAGEMENT")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render("Working...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(ErrorStyle.Render("✗ " + m.err.Error())))
		b.WriteString("\n")
	}

	if m.mode != modeBrowse {
		b.WriteString(m.formView())
	} else {
		b.WriteString(m.tableView())
	}

	b.WriteString("\n")
	var help string
	switch m.mode {
	case modeBrowse:
		help = "↑/↓ navigate  •  a add  •  e edit  •  x delete  •  r refresh  •  esc back"
	case modeAdd:
		help = "tab switch  •  ←/→ role  •  enter create  •  esc cancel"
	case modeEdit:
		help = "tab switch  •  ←/→ role  •  enter save  •  esc cancel"
	}
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render(help)))

	return BoxStyle.Width(76).Render(b.String())
}

func (m *UsersModel) formView() string {
	var b strings.Builder

	formTitle := "ADD USER"
	if m.mode == modeEdit {
		formTitle = "EDIT USER"
	}
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(SubtitleStyle.Render(formTitle)))
	b.WriteString("\n\n")

	b.WriteString(renderField("Name:", m.nameInput, m.focusedInput == 0))
	b.WriteString("\n")
	b.WriteString(renderField("Email:", m.emailInput, m.focusedInput == 1))
	b.WriteString("\n")

	roleField := 2
	if m.mode == modeAdd {
		b.WriteString(renderField("Password:", strings.Repeat("•", len(m.passwordInput)), m.focusedInput == 2))
		b.WriteString("\n")
		roleField = 3
	}

	roleValue := "◀ " + string(roleChoices[m.roleIdx]) + " ▶"
	b.WriteString(renderField("Role:", roleValue, m.focusedInput == roleField))
	b.WriteString("\n")

	return b.String()
}

func (m *UsersModel) tableView() string {
	var b strings.Builder

	if m.loaded && len(m.users) == 0 && m.err == nil {
		empty := lipgloss.NewStyle().Foreground(Muted).Render("No users found.")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(empty))
		b.WriteString("\n")
		return b.String()
	}

	headerStyle := lipgloss.NewStyle().Foreground(Accent).Bold(true).Padding(0, 1)
	tableHeader := lipgloss.JoinHorizontal(lipgloss.Left,
		headerStyle.Width(20).Render("Name"),
		headerStyle.Width(30).Render("Email"),
		headerStyle.Width(10).Render("Role"),
	)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(tableHeader))
	b.WriteString("\n")

	separator := lipgloss.NewStyle().Foreground(Muted).Render(strings.Repeat("─", 60))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(separator))
	b.WriteString("\n")

	self := m.sessions.Current().UserID()
	for i, u := range m.users {
		rowStyle := lipgloss.NewStyle().Foreground(Text).Padding(0, 1)
		if i == m.cursor {
			rowStyle = rowStyle.Foreground(Accent).Bold(true)
		}

		name := u.Name
		if u.ID == self {
			name += " (you)"
		}

		row := lipgloss.JoinHorizontal(lipgloss.Left,
			rowStyle.Width(20).Render(truncate(name, 18)),
			rowStyle.Width(30).Render(truncate(u.Email, 28)),
			rowStyle.Width(10).Render(string(u.Role)),
		)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(row))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

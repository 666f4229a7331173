package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kanishkm/recyclit/internal/api"
	"github.com/kanishkm/recyclit/internal/models"
	"github.com/kanishkm/recyclit/internal/validation"
)

type registerSuccessMsg struct{}

type registerErrorMsg struct {
	err error
}

// RegisterModel is the public self-registration form. Registration
// never logs the new account in; it reports success and points at the
// sign-in screen, like the web client did.
type RegisterModel struct {
	nameInput     string
	emailInput    string
	passwordInput string
	focusedInput  int
	loading       bool
	done          bool
	err           error
	toLogin       bool
	client        *api.Client
}

func NewRegisterModel(client *api.Client) *RegisterModel {
	return &RegisterModel{client: client}
}

func (m *RegisterModel) Init() tea.Cmd {
	return nil
}

func registerCmd(client *api.Client, draft models.RegisterDraft) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.Register(context.Background(), draft, ""); err != nil {
			return registerErrorMsg{err: err}
		}
		return registerSuccessMsg{}
	}
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case registerSuccessMsg:
		m.loading = false
		m.done = true
		m.err = nil
		return m, nil

	case registerErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 3
		case "enter":
			if m.done {
				m.toLogin = true
				return m, nil
			}
			draft := models.RegisterDraft{
				Name:     m.nameInput,
				Email:    m.emailInput,
				Password: m.passwordInput,
			}
			if err := validation.ValidateRegisterDraft(draft); err != nil {
				m.err = err
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, registerCmd(m.client, draft)
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
				if len(m.passwordInput) > 0 {
					m.passwordInput = m.passwordInput[:len(m.passwordInput)-1]
				}
			}
		case "ctrl+l":
			m.nameInput = ""
			m.emailInput = ""
			m.passwordInput = ""
			m.err = nil
			m.done = false
		case "ctrl+r":
			m.toLogin = true
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.nameInput += msg.String()
				case 1:
					m.emailInput += msg.String()
				case 2:
					m.passwordInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *RegisterModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("REGISTER")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Create a resident account.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(renderField("Name:", m.nameInput, m.focusedInput == 0))
	b.WriteString("\n\n")
	b.WriteString(renderField("Email:", m.emailInput, m.focusedInput == 1))
	b.WriteString("\n\n")
	b.WriteString(renderField("Password:", strings.Repeat("•", len(m.passwordInput)), m.focusedInput == 2))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render("Registering...")))
		b.WriteString("\n")
	}

	if m.done {
		ok := SuccessStyle.Render("✓ Registered! Press enter to sign in.")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(ok))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("✗ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter register  •  ctrl+r sign in  •  ctrl+l clear  •  esc back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}

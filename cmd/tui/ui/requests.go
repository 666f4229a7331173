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

type requestsLoadedMsg struct {
	items []models.PickupRequest
}

type requestsErrorMsg struct {
	err error
}

const (
	focusMaterial = iota
	focusQuantity
	focusAddress
	focusList
)

// RequestsModel renders the pickup request screen: a submission form
// on top and the sorted request list below. The same screen backs the
// resident home (own requests) and the admin request view (all
// requests plus status and delete controls). Residents can delete
// through the controller too, but this screen deliberately doesn't
// offer it to them.
type RequestsModel struct {
	ctrl     *controller.RequestController
	sessions *session.Store
	admin    bool

	materialIdx   int
	quantityInput string
	addressInput  string
	focusedInput  int

	items   []models.PickupRequest
	cursor  int
	loading bool
	loaded  bool
	err     error
}

func NewRequestsModel(ctrl *controller.RequestController, sessions *session.Store) *RequestsModel {
	return &RequestsModel{ctrl: ctrl, sessions: sessions}
}

// Reset prepares the screen for (re)entry and arms the auto-load.
func (m *RequestsModel) Reset(admin bool) {
	m.admin = admin
	m.loaded = false
	m.cursor = 0
	m.err = nil
	m.quantityInput = ""
	m.addressInput = ""
	m.focusedInput = focusMaterial
}

func (m *RequestsModel) Init() tea.Cmd {
	return nil
}

func loadRequestsCmd(ctrl *controller.RequestController, sess models.Session) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.List(context.Background(), sess); err != nil {
			return requestsErrorMsg{err: err}
		}
		return requestsLoadedMsg{items: ctrl.Requests()}
	}
}

func createRequestCmd(ctrl *controller.RequestController, sess models.Session, draft models.RequestDraft) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Create(context.Background(), sess, draft); err != nil {
			return requestsErrorMsg{err: err}
		}
		return requestsLoadedMsg{items: ctrl.Requests()}
	}
}

func updateStatusCmd(ctrl *controller.RequestController, sess models.Session, id string, status models.Status) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.UpdateStatus(context.Background(), sess, id, status); err != nil {
			return requestsErrorMsg{err: err}
		}
		return requestsLoadedMsg{items: ctrl.Requests()}
	}
}

func deleteRequestCmd(ctrl *controller.RequestController, sess models.Session, id string) tea.Cmd {
	return func() tea.Msg {
		if err := ctrl.Delete(context.Background(), sess, id); err != nil {
			return requestsErrorMsg{err: err}
		}
		return requestsLoadedMsg{items: ctrl.Requests()}
	}
}

func (m *RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case requestsLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case requestsErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if cmd := m.handleKey(msg); cmd != nil {
			return m, cmd
		}
	}

	if !m.loaded && !m.loading {
		m.loading = true
		return m, loadRequestsCmd(m.ctrl, m.sessions.Current())
	}

	return m, nil
}

func (m *RequestsModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	sess := m.sessions.Current()

	switch msg.String() {
	case "tab":
		m.focusedInput = (m.focusedInput + 1) % 4
		return nil
	case "shift+tab":
		m.focusedInput = (m.focusedInput + 3) % 4
		return nil
	case "ctrl+l":
		m.quantityInput = ""
		m.addressInput = ""
		m.err = nil
		return nil
	case "enter":
		if m.focusedInput == focusList {
			return nil
		}
		draft := models.RequestDraft{
			MaterialType:  models.MaterialTypes[m.materialIdx],
			Quantity:      m.quantityInput,
			PickupAddress: m.addressInput,
		}
		// Controller validates before any network call; surface
		// the error inline without clearing the form.
		m.loading = true
		m.err = nil
		return createRequestCmd(m.ctrl, sess, draft)
	}

	if m.focusedInput == focusList {
		return m.handleListKey(msg, sess)
	}

	switch msg.String() {
	case "left":
		if m.focusedInput == focusMaterial {
			m.materialIdx = (m.materialIdx + len(models.MaterialTypes) - 1) % len(models.MaterialTypes)
		}
	case "right":
		if m.focusedInput == focusMaterial {
			m.materialIdx = (m.materialIdx + 1) % len(models.MaterialTypes)
		}
	case "backspace":
		if m.focusedInput == focusQuantity && len(m.quantityInput) > 0 {
			m.quantityInput = m.quantityInput[:len(m.quantityInput)-1]
		} else if m.focusedInput == focusAddress && len(m.addressInput) > 0 {
			m.addressInput = m.addressInput[:len(m.addressInput)-1]
		}
	default:
		if len(msg.String()) == 1 {
			if m.focusedInput == focusQuantity {
				m.quantityInput += msg.String()
			} else if m.focusedInput == focusAddress {
				m.addressInput += msg.String()
			}
		}
	}
	return nil
}

func (m *RequestsModel) handleListKey(msg tea.KeyMsg, sess models.Session) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		m.err = nil
		return loadRequestsCmd(m.ctrl, sess)
	case "1", "2", "3":
		if !m.admin || len(m.items) == 0 {
			return nil
		}
		status := models.Statuses[int(msg.String()[0]-'1')]
		m.loading = true
		m.err = nil
		return updateStatusCmd(m.ctrl, sess, m.items[m.cursor].ID, status)
	case "x":
		if !m.admin || len(m.items) == 0 {
			return nil
		}
		m.loading = true
		m.err = nil
		return deleteRequestCmd(m.ctrl, sess, m.items[m.cursor].ID)
	}
	return nil
}

func statusBadge(status models.Status) string {
	label := strings.ToUpper(string(status))
	switch status {
	case models.StatusPending:
		return StatusPendingStyle.Render(label)
	case models.StatusScheduled:
		return StatusScheduledStyle.Render(label)
	case models.StatusCompleted:
		return StatusCompletedStyle.Render(label)
	}
	return label
}

func timestampLabel(r models.PickupRequest) string {
	when := r.TouchedAt().Local().Format("02 Jan 2006 15:04")
	switch r.Status {
	case models.StatusScheduled:
		return "Scheduled " + when
	case models.StatusCompleted:
		return "Completed " + when
	}
	return "Requested " + when
}

func (m *RequestsModel) View() string {
	var b strings.Builder

	title := "YOUR REQUESTS"
	if m.admin {
		title = "ALL REQUESTS"
	}
	header := TitleStyle.Render("♻ " + title)
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	// Submission form
	material := string(models.MaterialTypes[m.materialIdx])
	materialValue := "◀ " + material + " ▶"
	b.WriteString(renderField("Material:", materialValue, m.focusedInput == focusMaterial))
	b.WriteString("\n")
	b.WriteString(renderField("Quantity:", m.quantityInput, m.focusedInput == focusQuantity))
	b.WriteString("\n")
	b.WriteString(renderField("Address:", m.addressInput, m.focusedInput == focusAddress))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render("Working...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(ErrorStyle.Render("✗ " + m.err.Error())))
		b.WriteString("\n")
	}

	if m.loaded && len(m.items) == 0 && m.err == nil {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("No requests found. Submit one above!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(1).Render(empty))
		b.WriteString("\n")
	}

	for i, r := range m.items {
		borderColor := Muted
		if m.focusedInput == focusList && i == m.cursor {
			borderColor = Accent
		}
		cardStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 2).
			Width(70)

		headline := lipgloss.NewStyle().Foreground(Primary).Bold(true).Render(strings.ToUpper(string(r.MaterialType))) +
			"  " + lipgloss.NewStyle().Foreground(Text).Render(r.Quantity) +
			"  " + statusBadge(r.Status)

		address := lipgloss.NewStyle().Foreground(Secondary).Render(r.PickupAddress)

		meta := lipgloss.NewStyle().Foreground(Muted).Render(timestampLabel(r))
		if m.admin {
			meta += lipgloss.NewStyle().Foreground(Muted).Render("  •  by " + r.UserID)
		}

		card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headline, address, meta))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "tab focus  •  enter submit  •  r refresh  •  esc back"
	if m.admin {
		help = "tab focus  •  enter submit  •  1/2/3 set status  •  x delete  •  r refresh  •  esc back"
	}
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render(help)))

	return BoxStyle.Width(76).Render(b.String())
}

package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reminderdto "moonlight/internal/modules/reminder/dto"
	settingsdto "moonlight/internal/modules/settings/dto"
	"moonlight/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SettingsPort interface {
	GetSettings(ctx context.Context) (settingsdto.SettingsOutput, error)
	ReminderStatus(ctx context.Context) (reminderdto.ReminderStatus, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SettingsLoadedMsg struct {
	Settings settingsdto.SettingsOutput
	Reminder reminderdto.ReminderStatus
	Err      error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     SettingsPort
	settings settingsdto.SettingsOutput
	reminder reminderdto.ReminderStatus
	preview  viewport.Model
	spinner  spinner.Model
	loading  bool
	width    int
	height   int
}

func New(port SettingsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = m.width - 4
		m.preview.Height = m.height - 4

	case SettingsLoadedMsg:
		m.loading = false
		if msg.Err == nil {
			m.settings = msg.Settings
			m.reminder = msg.Reminder
		}
		m.preview.SetContent(m.render(msg.Err))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading settings…")
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.preview.View())
}

// Reload returns a command that fetches the settings again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		s, err := m.port.GetSettings(context.Background())
		if err != nil {
			return SettingsLoadedMsg{Err: err}
		}
		status, err := m.port.ReminderStatus(context.Background())
		return SettingsLoadedMsg{Settings: s, Reminder: status, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render(loadErr error) string {
	if loadErr != nil {
		return theme.Hot.Render("Failed to load settings: " + loadErr.Error())
	}
	s := m.settings
	onOff := func(v bool) string {
		if v {
			return theme.Done.Render("on")
		}
		return theme.Muted.Render("off")
	}
	keyState := theme.Muted.Render("not set")
	if s.AIKeySet {
		keyState = theme.Done.Render("set")
	}
	armed := theme.Muted.Render("disarmed")
	if m.reminder.Armed {
		armed = theme.Done.Render("armed")
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Settings") + "\n\n")
	sb.WriteString(theme.Muted.Render("openaiBaseUrl:         ") + s.AIBaseURL + "\n")
	sb.WriteString(theme.Muted.Render("openaiApiKey:          ") + keyState + "\n")
	sb.WriteString(theme.Muted.Render("modelName:             ") + s.AIModel + "\n")
	sb.WriteString(theme.Muted.Render("notificationsEnabled:  ") + onOff(s.NotificationsEnabled) + "\n")
	sb.WriteString(theme.Muted.Render("notificationTime:      ") + s.NotificationTime + "\n")
	sb.WriteString(fmt.Sprintf("%s%d\n", theme.Muted.Render("dailyTaskCount:        "), s.DailyTaskCount))
	sb.WriteString(theme.Muted.Render("theme:                 ") + s.Theme + "\n")
	sb.WriteString("\n" + theme.Muted.Render("reminder:              ") + armed + "\n")
	sb.WriteString("\n" + theme.Muted.Render(":settings:set <field> <value> to change a value"))
	return sb.String()
}

package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	assistantdto "moonlight/internal/modules/assistant/dto"
	goaldto "moonlight/internal/modules/goal/dto"
	notifydto "moonlight/internal/modules/notify/dto"
	reminderdto "moonlight/internal/modules/reminder/dto"
	settingsdto "moonlight/internal/modules/settings/dto"
	taskdto "moonlight/internal/modules/task/dto"
	"moonlight/internal/ui/components"
	"moonlight/internal/ui/theme"
	goalsview "moonlight/internal/ui/views/goals"
	settingsview "moonlight/internal/ui/views/settings"
	todayview "moonlight/internal/ui/views/today"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type goalPort interface {
	SaveGoal(ctx context.Context, input goaldto.SaveGoalInput) (goaldto.GoalOutput, error)
	DeleteGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context) ([]goaldto.GoalOutput, error)
	GetGoal(ctx context.Context, id string) (goaldto.GoalOutput, error)
}

type taskPort interface {
	SaveTask(ctx context.Context, input taskdto.SaveTaskInput) (taskdto.TaskOutput, error)
	CompleteTask(ctx context.Context, id string) (taskdto.TaskOutput, error)
	SkipTask(ctx context.Context, id string) (taskdto.TaskOutput, error)
	CountByGoal(ctx context.Context, goalID string) (taskdto.GoalTaskCount, error)
	Today(ctx context.Context, date string) ([]taskdto.TaskOutput, error)
}

type assistantPort interface {
	GenerateForGoal(ctx context.Context, goalID string) (assistantdto.GenerationResult, error)
	TestConnection(ctx context.Context) (assistantdto.ConnectionStatus, error)
}

type settingsPort interface {
	GetSettings(ctx context.Context) (settingsdto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input settingsdto.UpdateSettingsInput) (settingsdto.SettingsOutput, error)
}

type reminderPort interface {
	TriggerNow(ctx context.Context) (reminderdto.TriggerResult, error)
	Status(ctx context.Context) (reminderdto.ReminderStatus, error)
}

type notifyPort interface {
	Send(ctx context.Context, title, body string) (notifydto.SendReport, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabToday tabID = iota
	tabGoals
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{
	"Today", "Goals", "Settings",
}

// ─── async messages ───────────────────────────────────────────────────────────

type taskActedMsg struct {
	task      taskdto.TaskOutput
	completed bool
	err       error
}

type taskSavedMsg struct {
	task taskdto.TaskOutput
	err  error
}

type congratsSentMsg struct{ err error }

type goalSavedMsg struct {
	goal goaldto.GoalOutput
	err  error
}

type goalDeletedMsg struct {
	title string
	err   error
}

type generationDoneMsg struct {
	result assistantdto.GenerationResult
	err    error
}

type connectionTestedMsg struct {
	status assistantdto.ConnectionStatus
	err    error
}

type settingsSavedMsg struct {
	out settingsdto.SettingsOutput
	err error
}

type reminderFiredMsg struct {
	result reminderdto.TriggerResult
	err    error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Complete key.Binding
	Skip     key.Binding
	Generate key.Binding
	Delete   key.Binding
	Refresh  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete task")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip task")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate tasks")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete goal")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Complete, k.Skip},
		{k.Generate, k.Delete, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	goals     goalPort
	tasks     taskPort
	assistant assistantPort
	settings  settingsPort
	reminder  reminderPort
	notify    notifyPort

	// sub-views (one per tab)
	todayView    todayview.Model
	goalsView    goalsview.Model
	settingsView settingsview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	goals goalPort,
	tasks taskPort,
	assistant assistantPort,
	settings settingsPort,
	reminder reminderPort,
	notify notifyPort,
) Model {
	return Model{
		goals:        goals,
		tasks:        tasks,
		assistant:    assistant,
		settings:     settings,
		reminder:     reminder,
		notify:       notify,
		todayView:    todayview.New(todayPortBridge{p: tasks}),
		goalsView:    goalsview.New(goalsPortBridge{goals: goals, tasks: tasks}),
		settingsView: settingsview.New(settingsPortBridge{settings: settings, reminder: reminder}),
		activeTab:    tabToday,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.todayView.Init(),
		m.goalsView.Init(),
		m.settingsView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case taskActedMsg:
		if msg.err != nil {
			m.status = "task update failed: " + msg.err.Error()
			return m, nil
		}
		if msg.completed {
			m.status = "completed: " + msg.task.Title
			cmds = append(cmds, m.congratsCmd(msg.task.Title))
		} else {
			m.status = "skipped: " + msg.task.Title
		}
		cmds = append(cmds, m.todayView.Reload(), m.goalsView.Reload())

	case taskSavedMsg:
		if msg.err != nil {
			m.status = "task save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "task added: " + msg.task.Title
		cmds = append(cmds, m.todayView.Reload(), m.goalsView.Reload())

	case congratsSentMsg:
		if msg.err != nil {
			m.status = "congrats notification: " + msg.err.Error()
		}

	case goalSavedMsg:
		if msg.err != nil {
			m.status = "goal save failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "goal added: " + msg.goal.Title
		m.activeTab = tabGoals
		cmds = append(cmds, m.goalsView.Reload())

	case goalDeletedMsg:
		if msg.err != nil {
			m.status = "goal delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "deleted goal and its tasks: " + msg.title
		cmds = append(cmds, m.goalsView.Reload(), m.todayView.Reload())

	case generationDoneMsg:
		if msg.err != nil {
			m.status = "generation failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("generated %d task(s) for %s",
			len(msg.result.Tasks), msg.result.GoalTitle)
		cmds = append(cmds, m.todayView.Reload(), m.goalsView.Reload())

	case connectionTestedMsg:
		if msg.err != nil {
			m.status = "ai endpoint unreachable: " + msg.err.Error()
		} else if msg.status.Local {
			m.status = fmt.Sprintf("ai ok: %s (%s, local)", msg.status.BaseURL, msg.status.Model)
		} else {
			m.status = fmt.Sprintf("ai ok: %s (%s)", msg.status.BaseURL, msg.status.Model)
		}

	case settingsSavedMsg:
		if msg.err != nil {
			m.status = "settings update failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "settings saved"
		cmds = append(cmds, m.settingsView.Reload())

	case reminderFiredMsg:
		if msg.err != nil {
			m.status = "reminder failed: " + msg.err.Error()
		} else if msg.result.Fired {
			m.status = fmt.Sprintf("reminder sent (%d task(s))", msg.result.TaskCount)
		} else {
			m.status = "nothing to remind today"
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "r":
			cmds = append(cmds, m.reloadActiveTab())
		case "c":
			if m.activeTab == tabToday {
				if id, ok := m.todayView.SelectedTaskID(); ok {
					cmds = append(cmds, m.completeTaskCmd(id))
				}
			}
		case "s":
			if m.activeTab == tabToday {
				if id, ok := m.todayView.SelectedTaskID(); ok {
					cmds = append(cmds, m.skipTaskCmd(id))
				}
			}
		case "g":
			if m.activeTab == tabGoals {
				if id, ok := m.goalsView.SelectedGoalID(); ok {
					m.status = "generating tasks for " + m.goalsView.SelectedGoalTitle() + "…"
					cmds = append(cmds, m.generateCmd(id))
				}
			}
		case "d":
			if m.activeTab == tabGoals {
				if id, ok := m.goalsView.SelectedGoalID(); ok {
					cmds = append(cmds, m.deleteGoalCmd(id, m.goalsView.SelectedGoalTitle()))
				}
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabToday:
		m.todayView, tabCmd = m.todayView.Update(msg)
	case tabGoals:
		m.goalsView, tabCmd = m.goalsView.Update(msg)
	case tabSettings:
		m.settingsView, tabCmd = m.settingsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabToday:
		return m.todayView.View()
	case tabGoals:
		return m.goalsView.View()
	case tabSettings:
		return m.settingsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "moonlight  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "goal:add":
		if len(parts) < 2 {
			m.status = "usage: goal:add <title> [| description]"
			return m, nil
		}
		rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		title, description := rest, ""
		if i := strings.Index(rest, "|"); i >= 0 {
			title = strings.TrimSpace(rest[:i])
			description = strings.TrimSpace(rest[i+1:])
		}
		return m, m.saveGoalCmd(goaldto.SaveGoalInput{Title: title, Description: description})

	case "goal:delete":
		id, ok := m.goalsView.SelectedGoalID()
		if !ok {
			m.status = "no goal selected"
			return m, nil
		}
		return m, m.deleteGoalCmd(id, m.goalsView.SelectedGoalTitle())

	case "goal:generate":
		id, ok := m.goalsView.SelectedGoalID()
		if !ok {
			m.status = "no goal selected"
			return m, nil
		}
		m.status = "generating tasks for " + m.goalsView.SelectedGoalTitle() + "…"
		return m, m.generateCmd(id)

	case "task:add":
		if len(parts) < 2 {
			m.status = "usage: task:add <title>"
			return m, nil
		}
		goalID, ok := m.goalsView.SelectedGoalID()
		if !ok {
			m.status = "no goal selected"
			return m, nil
		}
		title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
		return m, m.saveTaskCmd(taskdto.SaveTaskInput{GoalID: goalID, Title: title})

	case "task:complete":
		id, ok := m.todayView.SelectedTaskID()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.completeTaskCmd(id)

	case "task:skip":
		id, ok := m.todayView.SelectedTaskID()
		if !ok {
			m.status = "no task selected"
			return m, nil
		}
		return m, m.skipTaskCmd(id)

	case "settings:set":
		if len(parts) < 3 {
			m.status = "usage: settings:set <field> <value>"
			return m, nil
		}
		value := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		patch, err := settingsPatch(parts[1], value)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabSettings
		return m, m.updateSettingsCmd(patch)

	case "ai:test":
		m.status = "testing ai endpoint…"
		return m, m.testConnectionCmd()

	case "remind:now":
		return m, m.triggerReminderCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// settingsPatch maps a palette field name to a partial settings update.
func settingsPatch(field, value string) (settingsdto.UpdateSettingsInput, error) {
	var patch settingsdto.UpdateSettingsInput
	switch field {
	case "baseUrl":
		patch.AIBaseURL = &value
	case "apiKey":
		patch.AIAPIKey = &value
	case "model":
		patch.AIModel = &value
	case "notifications":
		enabled := value == "on"
		if value != "on" && value != "off" {
			return patch, fmt.Errorf("notifications must be on or off")
		}
		patch.NotificationsEnabled = &enabled
	case "time":
		patch.NotificationTime = &value
	case "count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return patch, fmt.Errorf("count must be a number")
		}
		patch.DailyTaskCount = &n
	case "theme":
		patch.Theme = &value
	default:
		return patch, fmt.Errorf("unknown settings field: %s", field)
	}
	return patch, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabToday:
		return m.todayView.Filtering()
	case tabGoals:
		return m.goalsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.todayView, _ = m.todayView.Update(sz)
	m.goalsView, _ = m.goalsView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func (m Model) reloadActiveTab() tea.Cmd {
	switch m.activeTab {
	case tabToday:
		return m.todayView.Reload()
	case tabGoals:
		return m.goalsView.Reload()
	case tabSettings:
		return m.settingsView.Reload()
	}
	return nil
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) completeTaskCmd(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.tasks.CompleteTask(context.Background(), id)
		return taskActedMsg{task: task, completed: true, err: err}
	}
}

func (m Model) skipTaskCmd(id string) tea.Cmd {
	return func() tea.Msg {
		task, err := m.tasks.SkipTask(context.Background(), id)
		return taskActedMsg{task: task, err: err}
	}
}

func (m Model) saveTaskCmd(input taskdto.SaveTaskInput) tea.Cmd {
	return func() tea.Msg {
		task, err := m.tasks.SaveTask(context.Background(), input)
		return taskSavedMsg{task: task, err: err}
	}
}

func (m Model) congratsCmd(taskTitle string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.notify.Send(context.Background(), "Task Completed!", taskTitle)
		return congratsSentMsg{err: err}
	}
}

func (m Model) saveGoalCmd(input goaldto.SaveGoalInput) tea.Cmd {
	return func() tea.Msg {
		goal, err := m.goals.SaveGoal(context.Background(), input)
		return goalSavedMsg{goal: goal, err: err}
	}
}

func (m Model) deleteGoalCmd(id, title string) tea.Cmd {
	return func() tea.Msg {
		err := m.goals.DeleteGoal(context.Background(), id)
		return goalDeletedMsg{title: title, err: err}
	}
}

func (m Model) generateCmd(goalID string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.assistant.GenerateForGoal(context.Background(), goalID)
		return generationDoneMsg{result: result, err: err}
	}
}

func (m Model) testConnectionCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.assistant.TestConnection(context.Background())
		return connectionTestedMsg{status: status, err: err}
	}
}

func (m Model) updateSettingsCmd(patch settingsdto.UpdateSettingsInput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.settings.UpdateSettings(context.Background(), patch)
		return settingsSavedMsg{out: out, err: err}
	}
}

func (m Model) triggerReminderCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.reminder.TriggerNow(context.Background())
		return reminderFiredMsg{result: result, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type todayPortBridge struct{ p taskPort }

func (b todayPortBridge) Today(ctx context.Context, date string) ([]taskdto.TaskOutput, error) {
	return b.p.Today(ctx, date)
}

type goalsPortBridge struct {
	goals goalPort
	tasks taskPort
}

func (b goalsPortBridge) ListGoals(ctx context.Context) ([]goaldto.GoalOutput, error) {
	return b.goals.ListGoals(ctx)
}
func (b goalsPortBridge) GetGoal(ctx context.Context, id string) (goaldto.GoalOutput, error) {
	return b.goals.GetGoal(ctx, id)
}
func (b goalsPortBridge) TaskCounts(ctx context.Context, goalID string) (taskdto.GoalTaskCount, error) {
	return b.tasks.CountByGoal(ctx, goalID)
}

type settingsPortBridge struct {
	settings settingsPort
	reminder reminderPort
}

func (b settingsPortBridge) GetSettings(ctx context.Context) (settingsdto.SettingsOutput, error) {
	return b.settings.GetSettings(ctx)
}
func (b settingsPortBridge) ReminderStatus(ctx context.Context) (reminderdto.ReminderStatus, error) {
	return b.reminder.Status(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

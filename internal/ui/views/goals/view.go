package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	goaldto "moonlight/internal/modules/goal/dto"
	taskdto "moonlight/internal/modules/task/dto"
	"moonlight/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type GoalsPort interface {
	ListGoals(ctx context.Context) ([]goaldto.GoalOutput, error)
	GetGoal(ctx context.Context, id string) (goaldto.GoalOutput, error)
	TaskCounts(ctx context.Context, goalID string) (taskdto.GoalTaskCount, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type GoalsLoadedMsg struct {
	Goals []goaldto.GoalOutput
	Err   error
}

type DetailLoadedMsg struct {
	Goal   goaldto.GoalOutput
	Counts taskdto.GoalTaskCount
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type goalItem struct {
	goal goaldto.GoalOutput
}

func (i goalItem) Title() string { return i.goal.Title }
func (i goalItem) Description() string {
	return fmt.Sprintf("%s  %d%%", i.goal.Status, i.goal.Progress)
}
func (i goalItem) FilterValue() string { return i.goal.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    GoalsPort
	list    list.Model
	detail  goaldto.GoalOutput
	counts  taskdto.GoalTaskCount
	bar     progress.Model
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port GoalsPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Goals"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	bar := progress.New(progress.WithGradient(string(theme.Sapphire), string(theme.Green)))
	bar.ShowPercentage = false

	return Model{
		port:    port,
		list:    l,
		bar:     bar,
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
		m.resize()

	case GoalsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Goals — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Goals (%d)", len(msg.Goals))
		items := make([]list.Item, len(msg.Goals))
		for i, goal := range msg.Goals {
			items[i] = goalItem{goal: goal}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Goals) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Goals[0].ID))
		} else {
			m.detail = goaldto.GoalOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Goal
			m.counts = msg.Counts
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(goalItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.goal.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading goals…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedGoalID returns the current selection's goal ID, if any.
func (m Model) SelectedGoalID() (string, bool) {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal.ID, true
	}
	return "", false
}

// SelectedGoalTitle returns the current selection's title.
func (m Model) SelectedGoalTitle() string {
	if item, ok := m.list.SelectedItem().(goalItem); ok {
		return item.goal.Title
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload returns a command that fetches the goal list again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		goals, err := m.port.ListGoals(context.Background())
		return GoalsLoadedMsg{Goals: goals, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
	m.bar.Width = m.preview.Width - 2
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("No goals yet. Add one with :goal:add <title>.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	if d.Description != "" {
		sb.WriteString(d.Description + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("id:      ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("status:  ") + d.Status + "\n")
	if d.TargetDate != "" {
		sb.WriteString(theme.Muted.Render("target:  ") + d.TargetDate + "\n")
	}
	sb.WriteString(theme.Muted.Render("created: ") + d.CreatedAt + "\n")
	sb.WriteString(fmt.Sprintf("%s%d / %d tasks done\n",
		theme.Muted.Render("tasks:   "), m.counts.Completed, m.counts.Total))
	sb.WriteString("\n" + m.bar.ViewAs(float64(d.Progress)/100) + fmt.Sprintf(" %d%%\n", d.Progress))
	sb.WriteString("\n" + theme.Muted.Render("g: generate tasks  d: delete goal"))
	return sb.String()
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		goal, err := m.port.GetGoal(context.Background(), id)
		if err != nil {
			return DetailLoadedMsg{Err: err}
		}
		counts, err := m.port.TaskCounts(context.Background(), id)
		return DetailLoadedMsg{Goal: goal, Counts: counts, Err: err}
	}
}

package today

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	taskdto "moonlight/internal/modules/task/dto"
	"moonlight/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TodayPort interface {
	Today(ctx context.Context, date string) ([]taskdto.TaskOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TasksLoadedMsg struct {
	Tasks []taskdto.TaskOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task taskdto.TaskOutput
}

func (i taskItem) Title() string {
	marker := "○"
	switch i.task.Status {
	case "completed":
		marker = "✓"
	case "skipped":
		marker = "–"
	}
	return marker + " " + i.task.Title
}

func (i taskItem) Description() string {
	return fmt.Sprintf("%s  %d min", i.task.Difficulty, i.task.EstimatedMinutes)
}

func (i taskItem) FilterValue() string { return i.task.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    TodayPort
	list    list.Model
	detail  taskdto.TaskOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port TodayPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Today"
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

	return Model{
		port:    port,
		list:    l,
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

	case TasksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Today — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = fmt.Sprintf("Today (%d)", len(msg.Tasks))
		items := make([]list.Item, len(msg.Tasks))
		for i, task := range msg.Tasks {
			items[i] = taskItem{task: task}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Tasks) > 0 {
			m.detail = msg.Tasks[0]
		} else {
			m.detail = taskdto.TaskOutput{}
		}
		m.preview.SetContent(m.renderDetail())

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
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				m.detail = item.task
				m.preview.SetContent(m.renderDetail())
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
			m.spinner.View()+" Loading today's tasks…")
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

// SelectedTaskID returns the current selection's task ID, if any.
func (m Model) SelectedTaskID() (string, bool) {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.ID, true
	}
	return "", false
}

// SelectedTaskTitle returns the current selection's title.
func (m Model) SelectedTaskTitle() string {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task.Title
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload returns a command that fetches today's task list again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		date := time.Now().Format("2006-01-02")
		tasks, err := m.port.Today(context.Background(), date)
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Nothing scheduled for today. Generate tasks from a goal with g.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	if d.Description != "" {
		sb.WriteString(d.Description + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("id:         ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("goal:       ") + d.GoalID + "\n")
	sb.WriteString(theme.Muted.Render("status:     ") + m.renderStatus(d.Status) + "\n")
	sb.WriteString(theme.Muted.Render("difficulty: ") + theme.Difficulty(d.Difficulty).Render(d.Difficulty) + "\n")
	sb.WriteString(fmt.Sprintf("%s%d min\n", theme.Muted.Render("estimate:   "), d.EstimatedMinutes))
	if d.CompletedAt != "" {
		sb.WriteString(theme.Muted.Render("done at:    ") + d.CompletedAt + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("c: complete  s: skip"))
	return sb.String()
}

func (m Model) renderStatus(status string) string {
	switch status {
	case "completed":
		return theme.Done.Render(status)
	case "skipped":
		return theme.Muted.Render(status)
	default:
		return theme.Hot.Render(status)
	}
}

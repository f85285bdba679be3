package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"stellar/internal/driver"
)

type progressModel struct {
	title    string
	events   <-chan driver.FileEvent
	spinner  spinner.Model
	prog     progress.Model
	items    []fileItem
	index    map[string]int
	finished int
	width    int
	height   int
	done     bool
}

type fileItem struct {
	path   string
	status string
	count  int
}

type eventMsg driver.FileEvent
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file
// diagnostics progress of a directory run.
func NewProgressModel(title string, files []string, events <-chan driver.FileEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: statusQueued})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

const (
	statusQueued = "queued"
	statusClean  = "ok"
	statusCached = "cached"
	statusDiag   = "diagnostics"
	statusFailed = "failed"
)

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.FileEvent(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		m.height = msg.Height
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s (%d/%d)", m.title, m.finished, len(m.items))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 14
	nameWidth := max(m.width-statusWidth-4, 20)
	shown, hidden := m.visibleItems()
	for _, item := range shown {
		status := item.status
		if item.count > 0 {
			status = fmt.Sprintf("%d %s", item.count, status)
		}
		fmt.Fprintf(&b, "  %s %s\n",
			styleStatus(item.status).Render(fmt.Sprintf("%*s", statusWidth, status)),
			truncate(item.path, nameWidth))
	}
	if hidden > 0 {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  ... and %d more", hidden)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

// visibleItems fits the file list into the terminal height. Files with
// diagnostics or errors are listed before the rest; the order inside each
// group is the input order.
func (m *progressModel) visibleItems() ([]fileItem, int) {
	rows := len(m.items)
	if m.height > 0 {
		// заголовок, пустые строки, "... and N more" и полоса прогресса
		rows = max(m.height-6, 3)
	}
	if rows >= len(m.items) {
		return m.items, 0
	}
	out := make([]fileItem, 0, rows)
	for _, loud := range []bool{true, false} {
		for _, item := range m.items {
			if len(out) == rows {
				break
			}
			if isLoud(item.status) == loud {
				out = append(out, item)
			}
		}
	}
	return out, len(m.items) - len(out)
}

func isLoud(status string) bool {
	return status == statusFailed || status == statusDiag
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.FileEvent) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	if item.status == statusQueued {
		m.finished++
	}
	item.count = 0
	switch {
	case ev.Err != nil:
		item.status = statusFailed
	case ev.Diagnostics > 0:
		item.status = statusDiag
		item.count = ev.Diagnostics
	case ev.Cached:
		item.status = statusCached
	default:
		item.status = statusClean
	}
	return m.prog.SetPercent(float64(m.finished) / float64(len(m.items)))
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case statusClean, statusCached:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case statusFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case statusDiag:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

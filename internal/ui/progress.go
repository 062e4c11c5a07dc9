package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"autocorrect/internal/driver"
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	edits   int
	failed  int
	width   int
	done    bool
}

type fileItem struct {
	path  string
	stage driver.Stage
	note  string
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders per-file progress
// of a lint or fmt run. Files may be nil: paths seen in queued events are
// appended as they arrive. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   make([]fileItem, 0, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for _, file := range files {
		m.track(file)
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
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
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (%d/%d files, %d edits)", m.title, m.finished(), len(m.items), m.edits)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 8
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleStatus(item.stage).Render(fmt.Sprintf("%*s", statusWidth, item.stage))
		b.WriteString("  ")
		b.WriteString(status)
		b.WriteString(" ")
		b.WriteString(truncate(item.path, nameWidth))
		if item.note != "" {
			b.WriteString(lipgloss.NewStyle().Faint(true).Render("  " + item.note))
		}
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

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) track(path string) int {
	if idx, ok := m.index[path]; ok {
		return idx
	}
	m.items = append(m.items, fileItem{path: path, stage: driver.StageQueued})
	m.index[path] = len(m.items) - 1
	return len(m.items) - 1
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	if ev.Path == "" {
		return nil
	}
	idx := m.track(ev.Path)
	item := &m.items[idx]
	item.stage = ev.Stage
	switch ev.Stage {
	case driver.StageDone:
		m.edits += ev.Edits
		switch {
		case ev.Edits > 0:
			item.note = fmt.Sprintf("%d edits", ev.Edits)
		case ev.Changed:
			item.note = "changed"
		}
	case driver.StageFailed:
		m.failed++
		if ev.Err != nil {
			item.note = ev.Err.Error()
		}
	}
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, item := range m.items {
		if isFinal(item.stage) {
			n++
		}
	}
	return n
}

func (m *progressModel) percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		total += stageWeight(item.stage)
	}
	return total / float64(len(m.items))
}

func isFinal(s driver.Stage) bool {
	return s == driver.StageDone || s == driver.StageFailed || s == driver.StageSkipped
}

func stageWeight(s driver.Stage) float64 {
	switch {
	case isFinal(s):
		return 1
	case s == driver.StageWorking:
		return 0.5
	}
	return 0
}

func styleStatus(s driver.Stage) lipgloss.Style {
	switch s {
	case driver.StageDone:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case driver.StageFailed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case driver.StageWorking:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case driver.StageSkipped:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

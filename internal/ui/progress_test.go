package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"

	"autocorrect/internal/driver"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("lint", []string{"a.md"}, events).(*progressModel)

	m.Update(eventMsg{Path: "a.md", Stage: driver.StageWorking})
	require.InDelta(t, 0.5, m.percent(), 1e-9)

	// неизвестный путь добавляется в список
	m.Update(eventMsg{Path: "b.go", Stage: driver.StageQueued})
	require.Len(t, m.items, 2)

	m.Update(eventMsg{Path: "a.md", Stage: driver.StageDone, Edits: 2})
	m.Update(eventMsg{Path: "b.go", Stage: driver.StageFailed, Err: errors.New("tokenize failed")})
	require.Equal(t, 2, m.edits)
	require.Equal(t, 1, m.failed)
	require.Equal(t, 2, m.finished())
	require.InDelta(t, 1.0, m.percent(), 1e-9)

	view := m.View()
	require.Contains(t, view, "lint (2/2 files, 2 edits)")
	require.Contains(t, view, "2 edits")
	require.Contains(t, view, "tokenize failed")
	require.Contains(t, view, "failed")

	_, cmd := m.Update(doneMsg{})
	require.True(t, m.done)
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "done: lint")
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("fmt", nil, events).(*progressModel)
	require.Empty(t, m.View())
	msg := m.listenForEvent()()
	require.IsType(t, doneMsg{}, msg)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	require.Equal(t, 120, m.width)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 20))
	long := strings.Repeat("文档", 20)
	out := truncate(long, 21)
	require.LessOrEqual(t, runewidth.StringWidth(out), 21)
	require.True(t, strings.HasSuffix(out, "..."))
	require.Equal(t, long, truncate(long, 0))
}

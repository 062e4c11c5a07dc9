package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"autocorrect/internal/driver"
	"autocorrect/internal/ui"
)

// runWithUI runs fn in the background and shows its events in the progress
// view until fn returns.
func runWithUI(title string, opts *driver.Options, fn func() error) error {
	events := make(chan driver.Event, 256)
	outcome := make(chan error, 1)

	opts.Observer = func(ev driver.Event) { events <- ev }
	go func() {
		err := fn()
		close(events)
		outcome <- err
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, nil, events), tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы воркеры не блокировались
		go func() {
			for range events {
			}
		}()
	}
	err := <-outcome
	if err != nil {
		return err
	}
	return uiErr
}

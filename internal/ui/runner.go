package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"stellar/internal/driver"
)

// Run shows progress for files while work runs in the background. work
// receives the observer to install into driver.Options.OnFile. The error
// of work wins over a UI error.
func Run(ctx context.Context, out io.Writer, title string, files []string, work func(driver.FileObserver) error) error {
	events := make(chan driver.FileEvent, 256)
	workErr := make(chan error, 1)

	go func() {
		err := work(func(ev driver.FileEvent) { events <- ev })
		close(events)
		workErr <- err
	}()

	model := NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl-C): дочитываем события, чтобы воркеры не встали
	go func() {
		for range events {
		}
	}()
	if err := <-workErr; err != nil {
		return err
	}
	return uiErr
}

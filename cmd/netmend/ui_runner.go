package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"netmend/internal/driver"
	"netmend/internal/source"
	"netmend/internal/ui"
)

type recoverOutcome struct {
	fileSet *source.FileSet
	results []driver.Result
	err     error
}

// runRecoverDirWithUI запускает директорное восстановление под прогресс-TUI.
func runRecoverDirWithUI(ctx context.Context, dir string, opts *driver.Options) (*source.FileSet, []driver.Result, error) {
	files, err := driver.ListDumpFiles(dir, extOrDefault(opts))
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan recoverOutcome, 1)

	go func() {
		optsCopy := *opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.RecoverDir(ctx, dir, &optsCopy)
		outcomeCh <- recoverOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("recovering "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}

func extOrDefault(opts *driver.Options) string {
	if opts.Ext == "" {
		return ".netlog"
	}
	return opts.Ext
}

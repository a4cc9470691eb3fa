package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"

	"drafter/internal/app"
	"drafter/internal/client"
	"drafter/internal/config"
	"drafter/internal/logging"
	"drafter/internal/store"
)

type UICommand struct {
	stderr io.Writer
	runUI  func() error
}

func NewUICommand(stderr io.Writer, runUI func() error) *UICommand {
	return &UICommand{stderr: stderr, runUI: runUI}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.runUI()
}

func runInteractiveUI() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	exportDir, err := settings.ExportDir()
	if err != nil {
		return err
	}

	logger, closeLog := buildUILogger(settings)
	defer closeLog()

	// The recents store only improves dashboard ordering; a failure to open
	// it must not keep the UI from starting.
	recents := openRecents(logger)
	if recents != nil {
		defer recents.Close()
	}

	api := app.NewClientAPI(client.New(settings.ServerBaseURL()))
	return app.Run(app.Deps{
		Auth:      api,
		Projects:  api,
		Sections:  api,
		Recents:   recents,
		ExportDir: exportDir,
		Markdown:  settings.MarkdownEnabled(),
		Log:       logger,
	})
}

// buildUILogger writes logfmt lines to a file under the data dir; stderr is
// unusable while the TUI owns the terminal.
func buildUILogger(settings config.Settings) (logging.Logger, func()) {
	path, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return logging.Nop(), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.Nop(), func() {}
	}
	logger := logging.New(file, logging.ParseLevel(settings.LogLevel()))
	return logger, func() { _ = file.Close() }
}

func openRecents(logger logging.Logger) *store.RecentsStore {
	path, err := config.RecentsDBPath()
	if err != nil {
		logger.Warn("recents database unavailable", logging.F("error", err))
		return nil
	}
	recents, err := store.OpenRecents(path)
	if err != nil {
		logger.Warn("recents database unavailable", logging.F("path", path), logging.F("error", err))
		return nil
	}
	return recents
}

package main

import (
	"context"
	"io"
	"os"

	"drafter/internal/client"
	"drafter/internal/types"
)

type commandRunner interface {
	Run(args []string) error
}

// backendGateway is the slice of the HTTP client the one-shot commands
// need; the fakes in tests implement the same surface.
type backendGateway interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	ListProjects(ctx context.Context) ([]*types.Project, error)
	ExportProject(ctx context.Context, projectID int) (*client.ExportArtifact, error)
}

type gatewayFactory func(server string) (backendGateway, error)

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	newGateway gatewayFactory
	runUI      func() error
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		newGateway: newBackendGateway,
		runUI:      runInteractiveUI,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":       NewUICommand(wiring.stderr, wiring.runUI),
		"config":   NewConfigCommand(wiring.stdout, wiring.stderr),
		"projects": NewProjectsCommand(wiring.stdout, wiring.stderr, wiring.newGateway),
		"export":   NewExportCommand(wiring.stdout, wiring.stderr, wiring.newGateway),
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"drafter/internal/config"
)

type ExportCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	newGateway gatewayFactory
}

func NewExportCommand(stdout, stderr io.Writer, newGateway gatewayFactory) *ExportCommand {
	return &ExportCommand{stdout: stdout, stderr: stderr, newGateway: newGateway}
}

func (c *ExportCommand) Run(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	server := fs.String("server", "", "backend address (overrides config)")
	out := fs.String("out", "", "output directory (default: configured export dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("project id is required")
	}
	projectID, err := strconv.Atoi(strings.TrimSpace(fs.Arg(0)))
	if err != nil || projectID <= 0 {
		return fmt.Errorf("invalid project id: %q", fs.Arg(0))
	}

	creds, err := resolveCredentials(*username, *password)
	if err != nil {
		return err
	}
	outDir := strings.TrimSpace(*out)
	if outDir == "" {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		outDir, err = settings.ExportDir()
		if err != nil {
			return err
		}
	}
	gateway, err := c.newGateway(*server)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := gateway.Authenticate(ctx, creds.username, creds.password); err != nil {
		return err
	}
	artifact, err := gateway.ExportProject(ctx, projectID)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(artifact.Filename)
	if name == "" {
		name = fmt.Sprintf("project-%d.bin", projectID)
	}
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return err
	}
	path := filepath.Join(outDir, filepath.Base(name))
	if err := os.WriteFile(path, artifact.Data, 0o600); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, path)
	return nil
}

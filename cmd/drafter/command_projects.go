package main

import (
	"context"
	"flag"
	"io"
)

type ProjectsCommand struct {
	stdout     io.Writer
	stderr     io.Writer
	newGateway gatewayFactory
}

func NewProjectsCommand(stdout, stderr io.Writer, newGateway gatewayFactory) *ProjectsCommand {
	return &ProjectsCommand{stdout: stdout, stderr: stderr, newGateway: newGateway}
}

func (c *ProjectsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("projects", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	server := fs.String("server", "", "backend address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds, err := resolveCredentials(*username, *password)
	if err != nil {
		return err
	}
	gateway, err := c.newGateway(*server)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := gateway.Authenticate(ctx, creds.username, creds.password); err != nil {
		return err
	}
	projects, err := gateway.ListProjects(ctx)
	if err != nil {
		return err
	}
	printProjects(c.stdout, projects)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"drafter/internal/client"
	"drafter/internal/config"
	"drafter/internal/types"
)

func newBackendGateway(server string) (backendGateway, error) {
	if strings.TrimSpace(server) == "" {
		settings, err := config.LoadSettings()
		if err != nil {
			return nil, err
		}
		return client.New(settings.ServerBaseURL()), nil
	}
	override := config.Settings{Server: config.ServerSettings{Address: server}}
	return client.New(override.ServerBaseURL()), nil
}

type credentials struct {
	username string
	password string
}

func resolveCredentials(username, password string) (credentials, error) {
	if username == "" {
		username = os.Getenv("DRAFTER_USERNAME")
	}
	if password == "" {
		password = os.Getenv("DRAFTER_PASSWORD")
	}
	if username == "" || password == "" {
		return credentials{}, errors.New("username and password are required (flags or DRAFTER_USERNAME/DRAFTER_PASSWORD)")
	}
	return credentials{username: username, password: password}, nil
}

func printProjects(output io.Writer, projects []*types.Project) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTYPE\tTITLE\tTOPIC")
	for _, project := range projects {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", project.ID, project.DocType.Tag(), project.Title, project.Topic)
	}
	_ = writer.Flush()
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

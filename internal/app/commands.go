package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"drafter/internal/client"
	"drafter/internal/store"
	"drafter/internal/types"
)

// Gateway commands deliberately carry no timeout: a hung request keeps its
// busy guard set until the response arrives, and every failure is terminal
// for that attempt (manual retry only).

func authenticateCmd(api AuthAPI, username, password string) tea.Cmd {
	return func() tea.Msg {
		_, err := api.Authenticate(context.Background(), username, password)
		return authMsg{username: username, err: err}
	}
}

func registerCmd(api AuthAPI, username, password string) tea.Cmd {
	return func() tea.Msg {
		err := api.Register(context.Background(), username, password)
		return registerMsg{username: username, err: err}
	}
}

func fetchProjectsCmd(api ProjectAPI) tea.Cmd {
	return func() tea.Msg {
		projects, err := api.ListProjects(context.Background())
		return projectsMsg{projects: projects, err: err}
	}
}

func fetchRecentsCmd(recents *store.RecentsStore) tea.Cmd {
	return func() tea.Msg {
		if recents == nil {
			return recentsMsg{}
		}
		visits, err := recents.List()
		return recentsMsg{visits: visits, err: err}
	}
}

func touchRecentCmd(recents *store.RecentsStore, project *types.Project) tea.Cmd {
	return func() tea.Msg {
		if recents == nil || !project.Resolved() {
			return recentTouchedMsg{}
		}
		return recentTouchedMsg{err: recents.Touch(project)}
	}
}

func fetchOutlineCmd(api ProjectAPI, topic string, docType types.DocType) tea.Cmd {
	return func() tea.Msg {
		lines, err := api.GenerateOutline(context.Background(), topic, docType)
		return outlineMsg{lines: lines, err: err}
	}
}

func materializeCmd(api ProjectAPI, req client.CreateProjectRequest) tea.Cmd {
	return func() tea.Msg {
		project, err := api.CreateProject(context.Background(), req)
		return projectCreatedMsg{project: project, err: err}
	}
}

func fetchSectionsCmd(api SectionAPI, projectID int) tea.Cmd {
	return func() tea.Msg {
		sections, err := api.ListSections(context.Background(), projectID)
		return sectionsMsg{projectID: projectID, sections: sections, err: err}
	}
}

func refineCmd(api SectionAPI, sectionID int, instruction string) tea.Cmd {
	return func() tea.Msg {
		content, err := api.RefineSection(context.Background(), sectionID, instruction)
		return refineMsg{sectionID: sectionID, instruction: instruction, content: content, err: err}
	}
}

func saveFeedbackCmd(api SectionAPI, sectionID int, kind types.Feedback) tea.Cmd {
	return func() tea.Msg {
		err := api.UpdateSection(context.Background(), sectionID, client.FeedbackPatch(kind))
		return feedbackMsg{sectionID: sectionID, kind: kind, err: err}
	}
}

func saveNotesCmd(api SectionAPI, sectionID int, notes string) tea.Cmd {
	return func() tea.Msg {
		err := api.UpdateSection(context.Background(), sectionID, client.NotesPatch(notes))
		return notesSavedMsg{sectionID: sectionID, notes: notes, err: err}
	}
}

func exportProjectCmd(api ProjectAPI, project *types.Project, dir string) tea.Cmd {
	return func() tea.Msg {
		artifact, err := api.ExportProject(context.Background(), project.ID)
		if err != nil {
			return exportMsg{projectID: project.ID, err: err}
		}
		path, err := writeArtifact(dir, project, artifact)
		return exportMsg{projectID: project.ID, path: path, err: err}
	}
}

func writeArtifact(dir string, project *types.Project, artifact *client.ExportArtifact) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	name := strings.TrimSpace(artifact.Filename)
	if name == "" {
		name = fmt.Sprintf("%s.%s", sanitizeFilename(project.Title), project.DocType.Extension())
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, artifact.Data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func sanitizeFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "project"
	}
	replacer := strings.NewReplacer("/", "-", "\\", "-", ":", "-", "\x00", "")
	return replacer.Replace(title)
}

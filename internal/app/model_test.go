package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"drafter/internal/client"
	"drafter/internal/types"
)

type fakeBackend struct {
	authErr     error
	registerErr error
	cleared     int

	projects  []*types.Project
	listCalls int

	outline      []string
	outlineErr   error
	outlineCalls int

	nextProjectID int
	createReq     client.CreateProjectRequest

	sections     map[int][]*types.Section
	sectionCalls map[int]int

	refineErr   error
	refineCalls map[int]int

	updates map[int][]client.SectionPatch

	artifact  *client.ExportArtifact
	exportErr error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextProjectID: 11,
		sections:      map[int][]*types.Section{},
		sectionCalls:  map[int]int{},
		refineCalls:   map[int]int{},
		updates:       map[int][]client.SectionPatch{},
	}
}

func (f *fakeBackend) Register(ctx context.Context, username, password string) error {
	return f.registerErr
}

func (f *fakeBackend) Authenticate(ctx context.Context, username, password string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return "token-" + username, nil
}

func (f *fakeBackend) ClearToken() { f.cleared++ }

func (f *fakeBackend) ListProjects(ctx context.Context) ([]*types.Project, error) {
	f.listCalls++
	return f.projects, nil
}

func (f *fakeBackend) GenerateOutline(ctx context.Context, topic string, docType types.DocType) ([]string, error) {
	f.outlineCalls++
	return f.outline, f.outlineErr
}

func (f *fakeBackend) CreateProject(ctx context.Context, req client.CreateProjectRequest) (*types.Project, error) {
	f.createReq = req
	project := &types.Project{ID: f.nextProjectID, Title: req.Title, Topic: req.Topic, DocType: req.DocType}
	sections := make([]*types.Section, len(req.Outline))
	for i, title := range req.Outline {
		sections[i] = &types.Section{
			ID:         project.ID*10 + i + 1,
			ProjectID:  project.ID,
			Title:      title,
			Content:    "draft for " + title,
			OrderIndex: i,
		}
	}
	f.sections[project.ID] = sections
	f.projects = append(f.projects, project)
	return project, nil
}

func (f *fakeBackend) ExportProject(ctx context.Context, projectID int) (*client.ExportArtifact, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	if f.artifact != nil {
		return f.artifact, nil
	}
	return &client.ExportArtifact{Filename: "export.docx", Data: []byte("bytes")}, nil
}

func (f *fakeBackend) ListSections(ctx context.Context, projectID int) ([]*types.Section, error) {
	f.sectionCalls[projectID]++
	return f.sections[projectID], nil
}

func (f *fakeBackend) RefineSection(ctx context.Context, sectionID int, instruction string) (string, error) {
	f.refineCalls[sectionID]++
	if f.refineErr != nil {
		return "", f.refineErr
	}
	return fmt.Sprintf("refined %d: %s", sectionID, instruction), nil
}

func (f *fakeBackend) UpdateSection(ctx context.Context, sectionID int, patch client.SectionPatch) error {
	f.updates[sectionID] = append(f.updates[sectionID], patch)
	return nil
}

// collect runs a command tree synchronously and gathers the messages it
// produces, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func deliver(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case spinner.TickMsg, cursor.BlinkMsg:
			continue
		}
		_, next := m.Update(msg)
		deliver(t, m, next)
	}
}

func press(t *testing.T, m *Model, k string) {
	t.Helper()
	_, cmd := m.Update(key(k))
	deliver(t, m, cmd)
}

func signedInModel(t *testing.T, fb *fakeBackend) *Model {
	t.Helper()
	m := NewModel(Deps{Auth: fb, Projects: fb, Sections: fb, ExportDir: t.TempDir()})
	m.login.username.SetValue("ana")
	m.login.password.SetValue("hunter2")
	press(t, m, "enter")
	return m
}

func TestWorkflowEndToEnd(t *testing.T) {
	fb := newFakeBackend()
	fb.outline = []string{"Overview", "Goals", "Timeline"}
	m := signedInModel(t, fb)

	if _, ok := m.current.(dashboardView); !ok {
		t.Fatalf("current = %T, want dashboard after sign-in", m.current)
	}
	if !m.dashboard.loaded {
		t.Fatal("dashboard should load projects on entry")
	}

	press(t, m, "n")
	if _, ok := m.current.(wizardView); !ok {
		t.Fatalf("current = %T, want wizard", m.current)
	}
	m.wizard.title.SetValue("Q1 Plan")
	m.wizard.topic.SetValue("quarterly roadmap")
	press(t, m, "ctrl+g")
	if m.wizard.phase != wizardPhaseReview {
		t.Fatalf("wizard phase = %v, want review", m.wizard.phase)
	}
	if fb.outlineCalls != 1 {
		t.Fatalf("outlineCalls = %d, want 1", fb.outlineCalls)
	}

	press(t, m, "g")
	ev, ok := m.current.(editorView)
	if !ok {
		t.Fatalf("current = %T, want editor after materialize", m.current)
	}
	if ev.project.ID != 11 || ev.project.Title != "Q1 Plan" {
		t.Fatalf("editor project = %+v", ev.project)
	}
	if fb.createReq.DocType != types.DocTypeDocx {
		t.Fatalf("created doc type = %q", fb.createReq.DocType)
	}
	if m.editor.store.Len() != 3 {
		t.Fatalf("store.Len() = %d, want 3", m.editor.store.Len())
	}
	firstID := m.editor.store.First().ID
	if m.editor.activeID != firstID {
		t.Fatalf("activeID = %d, want first section %d", m.editor.activeID, firstID)
	}

	// Refine touches only the addressed section.
	m.editor.setFocus(focusInstruction)
	m.editor.instruction.SetValue("tighten the intro")
	press(t, m, "enter")
	first, _ := m.editor.store.Get(firstID)
	if want := fmt.Sprintf("refined %d: tighten the intro", firstID); first.Content != want {
		t.Fatalf("first content = %q, want %q", first.Content, want)
	}
	second := m.editor.store.At(1)
	if second.Content != "draft for Goals" {
		t.Fatalf("second content = %q, must be untouched", second.Content)
	}
	if fb.refineCalls[firstID] != 1 || len(fb.refineCalls) != 1 {
		t.Fatalf("refineCalls = %v", fb.refineCalls)
	}

	// Dislike the second section only.
	m.editor.setFocus(focusSections)
	press(t, m, "down")
	press(t, m, "-")
	if second.Feedback != types.FeedbackDislike {
		t.Fatalf("second feedback = %q, want dislike", second.Feedback)
	}
	if first.Feedback != types.FeedbackNone {
		t.Fatalf("first feedback = %q, want none", first.Feedback)
	}
	if len(fb.updates[firstID]) != 0 {
		t.Fatalf("updates for first section = %v, want none", fb.updates[firstID])
	}

	// Export lands on disk under the export dir.
	press(t, m, "x")
	path := filepath.Join(m.deps.ExportDir, "export.docx")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "bytes" {
		t.Fatalf("export data = %q", data)
	}
}

func TestModelLogoutWipesEverything(t *testing.T) {
	fb := newFakeBackend()
	fb.outline = []string{"Overview"}
	m := signedInModel(t, fb)
	press(t, m, "n")
	m.wizard.title.SetValue("Q1 Plan")
	m.wizard.topic.SetValue("quarterly roadmap")
	press(t, m, "ctrl+g")
	press(t, m, "g")

	press(t, m, "ctrl+l")
	if _, ok := m.current.(loginView); !ok {
		t.Fatalf("current = %T, want login after logout", m.current)
	}
	if fb.cleared != 1 {
		t.Fatalf("cleared = %d, want 1", fb.cleared)
	}
	if m.editor != nil || m.dashboard != nil || m.wizard != nil {
		t.Fatal("controllers must be dropped on logout")
	}
	if m.username != "" {
		t.Fatalf("username = %q, want empty", m.username)
	}
	if m.login.username.Value() != "" {
		t.Fatal("login form must start blank after logout")
	}
}

func TestModelAuthFailureStaysOnLogin(t *testing.T) {
	fb := newFakeBackend()
	fb.authErr = errors.New("incorrect username or password")
	m := NewModel(Deps{Auth: fb, Projects: fb, Sections: fb})
	m.login.username.SetValue("ana")
	m.login.password.SetValue("wrong")
	press(t, m, "enter")
	if _, ok := m.current.(loginView); !ok {
		t.Fatalf("current = %T, want login", m.current)
	}
	if !m.login.statusErr {
		t.Fatal("expected a failure status")
	}
	if fb.listCalls != 0 {
		t.Fatalf("listCalls = %d, projects must not be fetched", fb.listCalls)
	}
}

func TestModelUnresolvedProjectSkipsFetch(t *testing.T) {
	fb := newFakeBackend()
	m := signedInModel(t, fb)
	cmd := m.openProject(&types.Project{Title: "ghost"})
	deliver(t, m, cmd)
	if !m.editor.unavailable {
		t.Fatal("editor must be unavailable without a project id")
	}
	if len(fb.sectionCalls) != 0 {
		t.Fatalf("sectionCalls = %v, want none", fb.sectionCalls)
	}
}

func TestModelCloseEditorReturnsToDashboard(t *testing.T) {
	fb := newFakeBackend()
	fb.outline = []string{"Overview"}
	m := signedInModel(t, fb)
	press(t, m, "n")
	m.wizard.title.SetValue("Q1 Plan")
	m.wizard.topic.SetValue("quarterly roadmap")
	press(t, m, "ctrl+g")
	press(t, m, "g")
	press(t, m, "esc")
	if _, ok := m.current.(dashboardView); !ok {
		t.Fatalf("current = %T, want dashboard", m.current)
	}
	if m.editor != nil {
		t.Fatal("editor must be dropped on close")
	}
	// Dashboard picked up the project created in this session.
	found := false
	for _, project := range m.dashboard.ordered {
		if project.ID == 11 {
			found = true
		}
	}
	if !found {
		t.Fatalf("dashboard projects = %v, want the new project listed", orderedTitles(m.dashboard))
	}
}

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"drafter/internal/client"
	"drafter/internal/logging"
	"drafter/internal/store"
	"drafter/internal/types"
)

type Deps struct {
	Auth      AuthAPI
	Projects  ProjectAPI
	Sections  SectionAPI
	Recents   *store.RecentsStore
	ExportDir string
	Markdown  bool
	Log       logging.Logger
}

// Model is the workflow state machine: login, dashboard, wizard, editor.
// The current view is a tagged union, so each screen only exists together
// with the data it needs, and transitions happen in exactly one place.
type Model struct {
	deps Deps
	log  logging.Logger

	current view

	login     *loginController
	dashboard *dashboardController
	wizard    *wizardController
	editor    *editorController

	spin     spinner.Model
	width    int
	height   int
	username string
}

func NewModel(deps Deps) *Model {
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	return &Model{
		deps:    deps,
		log:     log,
		current: loginView{},
		login:   newLoginController(),
		spin:    spin,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.editor != nil {
			m.editor.setSize(msg.Width, msg.Height)
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case authMsg:
		m.login.handleAuthMsg(msg)
		if msg.err != nil {
			m.log.Warn("authentication failed", logging.F("username", msg.username), logging.F("error", msg.err))
			return m, nil
		}
		m.username = msg.username
		m.log.Info("authenticated", logging.F("username", msg.username))
		return m, m.enterDashboard()
	case registerMsg:
		m.login.handleRegisterMsg(msg)
		if msg.err != nil {
			m.log.Warn("registration failed", logging.F("username", msg.username), logging.F("error", msg.err))
		}
		return m, nil
	case projectsMsg:
		if m.dashboard != nil {
			m.dashboard.handleProjectsMsg(msg)
		}
		return m, nil
	case recentsMsg:
		if m.dashboard != nil {
			m.dashboard.handleRecentsMsg(msg)
		}
		return m, nil
	case recentTouchedMsg:
		if msg.err != nil {
			m.log.Warn("recording project visit failed", logging.F("error", msg.err))
		}
		return m, nil
	case outlineMsg:
		if m.wizard != nil {
			m.wizard.handleOutlineMsg(msg)
		}
		return m, nil
	case projectCreatedMsg:
		if m.wizard == nil {
			return m, nil
		}
		project, ok := m.wizard.handleProjectCreatedMsg(msg)
		if !ok {
			return m, nil
		}
		m.log.Info("project created", logging.F("id", project.ID), logging.F("title", project.Title))
		m.wizard = nil
		return m, m.openProject(project)
	case sectionsMsg:
		if m.editor != nil {
			m.editor.handleSectionsMsg(msg)
		}
		return m, nil
	case refineMsg:
		if m.editor != nil {
			m.editor.handleRefineMsg(msg)
		}
		return m, nil
	case feedbackMsg:
		if m.editor != nil {
			m.editor.handleFeedbackMsg(msg)
		}
		return m, nil
	case notesSavedMsg:
		if m.editor != nil {
			m.editor.handleNotesSavedMsg(msg)
		}
		return m, nil
	case exportMsg:
		if msg.err == nil {
			m.log.Info("project exported", logging.F("id", msg.projectID), logging.F("path", msg.path))
		}
		if m.editor != nil {
			m.editor.handleExportMsg(msg)
		}
		return m, nil
	case clipboardMsg:
		if m.editor != nil {
			m.editor.handleClipboardMsg(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "ctrl+l":
		if _, onLogin := m.current.(loginView); !onLogin {
			return m.logout()
		}
	}
	switch m.current.(type) {
	case loginView:
		return m.login.Update(msg, m)
	case dashboardView:
		return m.dashboard.Update(msg, m)
	case wizardView:
		return m.wizard.Update(msg, m)
	case editorView:
		return m.editor.Update(msg, m)
	}
	return nil
}

func (m *Model) setView(next view) {
	m.current = next
	m.log.Debug("view changed", logging.F("view", next.viewName()))
}

// logout drops the session token and rebuilds every controller, so no
// project, section, or form state survives into the next sign-in.
func (m *Model) logout() tea.Cmd {
	m.deps.Auth.ClearToken()
	m.log.Info("signed out", logging.F("username", m.username))
	m.username = ""
	m.login = newLoginController()
	m.login.status = "signed out"
	m.dashboard = nil
	m.wizard = nil
	m.editor = nil
	m.setView(loginView{})
	return textinput.Blink
}

func (m *Model) enterDashboard() tea.Cmd {
	m.dashboard = newDashboardController()
	m.setView(dashboardView{})
	return tea.Batch(fetchProjectsCmd(m.deps.Projects), fetchRecentsCmd(m.deps.Recents))
}

// loginHost

func (m *Model) authenticate(username, password string) tea.Cmd {
	return authenticateCmd(m.deps.Auth, username, password)
}

func (m *Model) register(username, password string) tea.Cmd {
	return registerCmd(m.deps.Auth, username, password)
}

// dashboardHost

func (m *Model) openProject(project *types.Project) tea.Cmd {
	m.editor = newEditorController(project, m.deps.Markdown)
	if m.width > 0 {
		m.editor.setSize(m.width, m.height)
	}
	m.setView(editorView{project: project})
	if !project.Resolved() {
		// Nothing to fetch for a project without a saved identity; the
		// editor renders its unavailable state instead.
		m.log.Warn("opened project without identity", logging.F("title", project.Title))
		return nil
	}
	return tea.Batch(
		fetchSectionsCmd(m.deps.Sections, project.ID),
		touchRecentCmd(m.deps.Recents, project),
	)
}

func (m *Model) startWizard() tea.Cmd {
	m.wizard = newWizardController()
	m.setView(wizardView{})
	return textinput.Blink
}

func (m *Model) reloadDashboard() tea.Cmd {
	return tea.Batch(fetchProjectsCmd(m.deps.Projects), fetchRecentsCmd(m.deps.Recents))
}

// wizardHost

func (m *Model) fetchOutline(topic string, docType types.DocType) tea.Cmd {
	return fetchOutlineCmd(m.deps.Projects, topic, docType)
}

func (m *Model) materialize(req client.CreateProjectRequest) tea.Cmd {
	return materializeCmd(m.deps.Projects, req)
}

func (m *Model) closeWizard() tea.Cmd {
	m.wizard = nil
	m.setView(dashboardView{})
	return nil
}

// editorHost

func (m *Model) refineSection(sectionID int, instruction string) tea.Cmd {
	return refineCmd(m.deps.Sections, sectionID, instruction)
}

func (m *Model) saveFeedback(sectionID int, kind types.Feedback) tea.Cmd {
	return saveFeedbackCmd(m.deps.Sections, sectionID, kind)
}

func (m *Model) saveNotes(sectionID int, notes string) tea.Cmd {
	return saveNotesCmd(m.deps.Sections, sectionID, notes)
}

func (m *Model) exportProject(project *types.Project) tea.Cmd {
	return exportProjectCmd(m.deps.Projects, project, m.deps.ExportDir)
}

func (m *Model) copyText(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: copyTextToClipboard(text)}
	}
}

func (m *Model) closeEditor() tea.Cmd {
	m.editor = nil
	m.setView(dashboardView{})
	if m.dashboard == nil {
		return m.enterDashboard()
	}
	return m.reloadDashboard()
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.headerLine())
	b.WriteString("\n\n")
	switch m.current.(type) {
	case loginView:
		b.WriteString(m.login.View())
	case dashboardView:
		b.WriteString(m.dashboard.View())
	case wizardView:
		b.WriteString(m.wizard.View())
	case editorView:
		b.WriteString(m.editor.View())
	}
	return b.String()
}

func (m *Model) headerLine() string {
	title := headerStyle.Render("drafter")
	if m.busyAny() {
		title += " " + m.spin.View()
	}
	if m.username != "" {
		title += statusStyle.Render("  " + m.username)
	}
	return title
}

func (m *Model) busyAny() bool {
	if m.login != nil && m.login.busy {
		return true
	}
	if m.dashboard != nil && m.dashboard.loading {
		return true
	}
	if m.wizard != nil && m.wizard.busy != wizardIdle {
		return true
	}
	if m.editor != nil && (m.editor.loading || len(m.editor.inflight) > 0) {
		return true
	}
	return false
}

// Run starts the interactive program against a live backend client.
func Run(deps Deps) error {
	program := tea.NewProgram(NewModel(deps), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

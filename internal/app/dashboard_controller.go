package app

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"drafter/internal/types"
)

type dashboardHost interface {
	openProject(project *types.Project) tea.Cmd
	startWizard() tea.Cmd
	reloadDashboard() tea.Cmd
}

// dashboardController lists the user's projects, most recently opened
// first. Recency comes from the local visit store; projects never opened on
// this machine sort after the visited ones, newest id first.
type dashboardController struct {
	projects  []*types.Project
	visits    map[int]time.Time
	ordered   []*types.Project
	cursor    int
	loading   bool
	loaded    bool
	status    string
	statusErr bool
}

func newDashboardController() *dashboardController {
	return &dashboardController{visits: map[int]time.Time{}, loading: true}
}

func (c *dashboardController) Update(msg tea.KeyMsg, host dashboardHost) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
		return nil
	case "down", "j":
		if c.cursor < len(c.ordered)-1 {
			c.cursor++
		}
		return nil
	case "enter":
		if project := c.selected(); project != nil {
			return host.openProject(project)
		}
		return nil
	case "n":
		return host.startWizard()
	case "r":
		if c.loading {
			return nil
		}
		c.loading = true
		c.status = ""
		c.statusErr = false
		return host.reloadDashboard()
	}
	return nil
}

func (c *dashboardController) selected() *types.Project {
	if c.cursor < 0 || c.cursor >= len(c.ordered) {
		return nil
	}
	return c.ordered[c.cursor]
}

func (c *dashboardController) handleProjectsMsg(msg projectsMsg) {
	c.loading = false
	if msg.err != nil {
		c.status = "could not load projects: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.loaded = true
	c.status = ""
	c.statusErr = false
	c.projects = msg.projects
	c.reorder()
}

func (c *dashboardController) handleRecentsMsg(msg recentsMsg) {
	if msg.err != nil {
		// Recency is best-effort; the list still renders in id order.
		return
	}
	c.visits = make(map[int]time.Time, len(msg.visits))
	for _, visit := range msg.visits {
		c.visits[visit.Project.ID] = visit.LastOpened
	}
	c.reorder()
}

func (c *dashboardController) reorder() {
	selected := c.selected()
	c.ordered = append([]*types.Project(nil), c.projects...)
	sort.SliceStable(c.ordered, func(i, j int) bool {
		vi, iOK := c.visits[c.ordered[i].ID]
		vj, jOK := c.visits[c.ordered[j].ID]
		if iOK != jOK {
			return iOK
		}
		if iOK && !vi.Equal(vj) {
			return vi.After(vj)
		}
		return c.ordered[i].ID > c.ordered[j].ID
	})
	c.cursor = 0
	if selected != nil {
		for i, project := range c.ordered {
			if project.ID == selected.ID {
				c.cursor = i
				break
			}
		}
	}
}

func (c *dashboardController) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Projects"))
	b.WriteString("\n\n")
	switch {
	case c.loading && !c.loaded:
		b.WriteString(statusStyle.Render("loading projects..."))
		b.WriteString("\n")
	case len(c.ordered) == 0 && c.loaded:
		b.WriteString(emptyStateStyle.Render("No projects yet. Press n to create one."))
		b.WriteString("\n")
	default:
		for i, project := range c.ordered {
			line := fmt.Sprintf("%s  %s", docTypeTagStyle.Render("["+project.DocType.Tag()+"]"), project.Title)
			if topic := strings.TrimSpace(project.Topic); topic != "" {
				line += statusStyle.Render("  — " + topic)
			}
			if i == c.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if c.status != "" {
		b.WriteString("\n")
		if c.statusErr {
			b.WriteString(errorStyle.Render(c.status))
		} else {
			b.WriteString(statusStyle.Render(c.status))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter open · n new project · r reload · ctrl+l sign out · ctrl+c quit"))
	return b.String()
}

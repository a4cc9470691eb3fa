package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"drafter/internal/client"
	"drafter/internal/types"
)

type wizardHost interface {
	fetchOutline(topic string, docType types.DocType) tea.Cmd
	materialize(req client.CreateProjectRequest) tea.Cmd
	closeWizard() tea.Cmd
}

type wizardPhase uint8

const (
	wizardPhaseDraft wizardPhase = iota
	wizardPhaseReview
)

type wizardBusy uint8

const (
	wizardIdle wizardBusy = iota
	wizardFetchingOutline
	wizardMaterializing
)

const (
	wizardFocusTitle = iota
	wizardFocusDocType
	wizardFocusTopic
)

const appendedSectionTitle = "New Section"

// wizardController drives project creation in two phases: a draft form
// (title, format, topic) and an outline review where individual lines can
// be edited, removed, or appended before the project is materialized.
// The draft configuration survives a trip back from review.
type wizardController struct {
	phase wizardPhase
	busy  wizardBusy

	title   textinput.Model
	topic   textarea.Model
	docType types.DocType
	focus   int

	outline   []string
	cursor    int
	editing   bool
	lineInput textinput.Model

	status    string
	statusErr bool
}

func newWizardController() *wizardController {
	title := textinput.New()
	title.Placeholder = "Quarterly Business Review"
	title.CharLimit = 200
	title.Width = 48
	title.Focus()

	topic := textarea.New()
	topic.Placeholder = "What should this document cover?"
	topic.ShowLineNumbers = false
	topic.SetWidth(60)
	topic.SetHeight(4)

	lineInput := textinput.New()
	lineInput.CharLimit = 200
	lineInput.Width = 48

	return &wizardController{
		title:     title,
		topic:     topic,
		docType:   types.DocTypeDocx,
		lineInput: lineInput,
	}
}

func (c *wizardController) Update(msg tea.KeyMsg, host wizardHost) tea.Cmd {
	if c.phase == wizardPhaseReview {
		return c.updateReview(msg, host)
	}
	return c.updateDraft(msg, host)
}

func (c *wizardController) updateDraft(msg tea.KeyMsg, host wizardHost) tea.Cmd {
	switch msg.String() {
	case "esc":
		if c.busy != wizardIdle {
			return nil
		}
		return host.closeWizard()
	case "tab":
		c.setDraftFocus((c.focus + 1) % 3)
		return nil
	case "shift+tab":
		c.setDraftFocus((c.focus + 2) % 3)
		return nil
	case "ctrl+g":
		return c.generateOutline(host)
	case "enter":
		if c.focus == wizardFocusTopic {
			break
		}
		if c.focus == wizardFocusTitle {
			c.setDraftFocus(wizardFocusDocType)
			return nil
		}
		c.setDraftFocus(wizardFocusTopic)
		return nil
	case "left", "right", " ", "space":
		if c.focus == wizardFocusDocType {
			c.docType = c.docType.Next()
			return nil
		}
	}
	var cmd tea.Cmd
	switch c.focus {
	case wizardFocusTitle:
		c.title, cmd = c.title.Update(msg)
	case wizardFocusTopic:
		c.topic, cmd = c.topic.Update(msg)
	}
	return cmd
}

func (c *wizardController) setDraftFocus(focus int) {
	c.focus = focus
	c.title.Blur()
	c.topic.Blur()
	switch focus {
	case wizardFocusTitle:
		c.title.Focus()
	case wizardFocusTopic:
		c.topic.Focus()
	}
}

// generateOutline validates the draft locally before anything touches the
// network: a blank title or topic produces a status line and zero requests.
func (c *wizardController) generateOutline(host wizardHost) tea.Cmd {
	if c.busy != wizardIdle {
		return nil
	}
	title := strings.TrimSpace(c.title.Value())
	topic := strings.TrimSpace(c.topic.Value())
	if title == "" || topic == "" {
		c.status = "title and topic are required"
		c.statusErr = true
		return nil
	}
	c.busy = wizardFetchingOutline
	c.status = "generating outline..."
	c.statusErr = false
	return host.fetchOutline(topic, c.docType)
}

func (c *wizardController) updateReview(msg tea.KeyMsg, host wizardHost) tea.Cmd {
	if c.editing {
		return c.updateLineEdit(msg)
	}
	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.outline)-1 {
			c.cursor++
		}
	case "enter", "e":
		if c.cursor >= 0 && c.cursor < len(c.outline) {
			c.editing = true
			c.lineInput.SetValue(c.outline[c.cursor])
			c.lineInput.CursorEnd()
			c.lineInput.Focus()
		}
	case "d":
		c.deleteLine(c.cursor)
	case "a":
		c.outline = append(c.outline, appendedSectionTitle)
		c.cursor = len(c.outline) - 1
	case "esc", "b":
		if c.busy != wizardIdle {
			return nil
		}
		// Back discards the outline draft; the form keeps its config for
		// another generation pass.
		c.outline = nil
		c.cursor = 0
		c.editing = false
		c.phase = wizardPhaseDraft
		c.status = ""
		c.statusErr = false
		c.setDraftFocus(wizardFocusTitle)
	case "ctrl+g", "g":
		return c.materialize(host)
	}
	return nil
}

func (c *wizardController) updateLineEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(c.lineInput.Value())
		if value == "" {
			c.status = "section title cannot be empty"
			c.statusErr = true
			return nil
		}
		c.outline[c.cursor] = value
		c.stopLineEdit()
		return nil
	case "esc":
		c.stopLineEdit()
		return nil
	}
	var cmd tea.Cmd
	c.lineInput, cmd = c.lineInput.Update(msg)
	return cmd
}

func (c *wizardController) stopLineEdit() {
	c.editing = false
	c.lineInput.Blur()
	c.lineInput.SetValue("")
	c.status = ""
	c.statusErr = false
}

func (c *wizardController) deleteLine(i int) {
	if i < 0 || i >= len(c.outline) {
		return
	}
	c.outline = append(c.outline[:i], c.outline[i+1:]...)
	if c.cursor >= len(c.outline) {
		c.cursor = len(c.outline) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *wizardController) materialize(host wizardHost) tea.Cmd {
	if c.busy != wizardIdle {
		return nil
	}
	if len(c.outline) == 0 {
		c.status = "outline is empty; add at least one section"
		c.statusErr = true
		return nil
	}
	c.busy = wizardMaterializing
	c.status = "creating project..."
	c.statusErr = false
	return host.materialize(client.CreateProjectRequest{
		Title:   strings.TrimSpace(c.title.Value()),
		Topic:   strings.TrimSpace(c.topic.Value()),
		DocType: c.docType,
		Outline: append([]string(nil), c.outline...),
	})
}

// handleOutlineMsg moves the wizard into review on success. A failure stays
// in the draft phase with the form intact so the user can retry.
func (c *wizardController) handleOutlineMsg(msg outlineMsg) {
	if c.busy != wizardFetchingOutline {
		return
	}
	c.busy = wizardIdle
	if msg.err != nil {
		c.status = "outline generation failed: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.outline = append([]string(nil), msg.lines...)
	c.cursor = 0
	c.editing = false
	c.phase = wizardPhaseReview
	c.status = ""
	c.statusErr = false
}

// handleProjectCreatedMsg reports whether the project materialized; the
// model owns the transition into the editor. On failure the review phase
// and its outline are preserved.
func (c *wizardController) handleProjectCreatedMsg(msg projectCreatedMsg) (*types.Project, bool) {
	if c.busy != wizardMaterializing {
		return nil, false
	}
	c.busy = wizardIdle
	if msg.err != nil {
		c.status = "project creation failed: " + msg.err.Error()
		c.statusErr = true
		return nil, false
	}
	c.status = ""
	c.statusErr = false
	return msg.project, true
}

func (c *wizardController) View() string {
	if c.phase == wizardPhaseReview {
		return c.viewReview()
	}
	return c.viewDraft()
}

func (c *wizardController) viewDraft() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("New project"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Title") + "\n")
	b.WriteString(c.title.View() + "\n\n")
	b.WriteString(labelStyle.Render("Format") + "\n")
	format := c.docType.Label()
	if c.focus == wizardFocusDocType {
		format = selectedStyle.Render("< " + format + " >")
	}
	b.WriteString(format + "\n\n")
	b.WriteString(labelStyle.Render("Topic") + "\n")
	b.WriteString(c.topic.View() + "\n")
	c.writeStatus(&b)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+g generate outline · tab next field · esc back"))
	return b.String()
}

func (c *wizardController) viewReview() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Review outline"))
	b.WriteString("  " + docTypeTagStyle.Render("["+c.docType.Tag()+"]"))
	b.WriteString("\n\n")
	if len(c.outline) == 0 {
		b.WriteString(emptyStateStyle.Render("Outline is empty. Press a to add a section."))
		b.WriteString("\n")
	}
	for i, line := range c.outline {
		prefix := fmt.Sprintf("%2d. ", i+1)
		if i == c.cursor && c.editing {
			b.WriteString(prefix + outlineEditStyle.Render(c.lineInput.View()))
		} else if i == c.cursor {
			b.WriteString(selectedStyle.Render(prefix + line))
		} else {
			b.WriteString(prefix + line)
		}
		b.WriteString("\n")
	}
	c.writeStatus(&b)
	b.WriteString("\n")
	if c.editing {
		b.WriteString(helpStyle.Render("enter save line · esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("g create project · e edit · d delete · a add · b back to draft"))
	}
	return b.String()
}

func (c *wizardController) writeStatus(b *strings.Builder) {
	if c.status == "" {
		return
	}
	b.WriteString("\n")
	if c.statusErr {
		b.WriteString(errorStyle.Render(c.status))
	} else {
		b.WriteString(busyStyle.Render(c.status))
	}
	b.WriteString("\n")
}

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	runewidth "github.com/mattn/go-runewidth"

	"drafter/internal/types"
)

func visibleWidth(s string) int {
	return runewidth.StringWidth(xansi.Strip(s))
}

type editorHost interface {
	refineSection(sectionID int, instruction string) tea.Cmd
	saveFeedback(sectionID int, kind types.Feedback) tea.Cmd
	saveNotes(sectionID int, notes string) tea.Cmd
	exportProject(project *types.Project) tea.Cmd
	copyText(text string) tea.Cmd
	closeEditor() tea.Cmd
}

type editorFocus uint8

const (
	focusSections editorFocus = iota
	focusInstruction
	focusNotes
)

func refineKey(sectionID int) string   { return fmt.Sprintf("refine:%d", sectionID) }
func feedbackKey(sectionID int) string { return fmt.Sprintf("feedback:%d", sectionID) }
func notesKey(sectionID int) string    { return fmt.Sprintf("notes:%d", sectionID) }
func exportKey(projectID int) string   { return fmt.Sprintf("export:%d", projectID) }

// editorController is the per-project editing surface: a section sidebar,
// the rendered content pane, a refine instruction line, and a notes buffer.
// Every mutation is guarded by an in-flight key and applied to the store
// only after the backend confirms it.
type editorController struct {
	project     *types.Project
	unavailable bool

	store    *SectionStore
	activeID int

	focus       editorFocus
	instruction textinput.Model
	notes       textarea.Model
	content     viewport.Model

	inflight map[string]struct{}

	loading   bool
	loaded    bool
	status    string
	statusErr bool

	markdown bool
}

func newEditorController(project *types.Project, markdown bool) *editorController {
	instruction := textinput.New()
	instruction.Placeholder = "refine instruction, e.g. make it more concise"
	instruction.CharLimit = 500
	instruction.Width = 60

	notes := textarea.New()
	notes.Placeholder = "notes for this section"
	notes.ShowLineNumbers = false
	notes.SetWidth(60)
	notes.SetHeight(3)

	c := &editorController{
		project:     project,
		unavailable: !project.Resolved(),
		instruction: instruction,
		notes:       notes,
		content:     viewport.New(80, 16),
		inflight:    map[string]struct{}{},
		markdown:    markdown,
	}
	if !c.unavailable {
		c.loading = true
	}
	return c
}

func (c *editorController) setSize(width, height int) {
	contentWidth := width - 34
	if contentWidth < 20 {
		contentWidth = 20
	}
	contentHeight := height - 14
	if contentHeight < 4 {
		contentHeight = 4
	}
	c.content.Width = contentWidth
	c.content.Height = contentHeight
	c.instruction.Width = contentWidth - 4
	c.notes.SetWidth(contentWidth)
	c.refreshContent()
}

func (c *editorController) tryAcquire(key string) bool {
	if _, busy := c.inflight[key]; busy {
		return false
	}
	c.inflight[key] = struct{}{}
	return true
}

func (c *editorController) release(key string) {
	delete(c.inflight, key)
}

func (c *editorController) busy(key string) bool {
	_, ok := c.inflight[key]
	return ok
}

func (c *editorController) active() *types.Section {
	if c.activeID == 0 {
		return nil
	}
	section, _ := c.store.Get(c.activeID)
	return section
}

func (c *editorController) Update(msg tea.KeyMsg, host editorHost) tea.Cmd {
	if c.unavailable {
		if msg.String() == "esc" {
			return host.closeEditor()
		}
		return nil
	}
	switch msg.String() {
	case "tab":
		c.setFocus(c.nextFocus(1))
		return nil
	case "shift+tab":
		c.setFocus(c.nextFocus(2))
		return nil
	}
	switch c.focus {
	case focusInstruction:
		return c.updateInstruction(msg, host)
	case focusNotes:
		return c.updateNotes(msg, host)
	}
	return c.updateSections(msg, host)
}

func (c *editorController) nextFocus(step int) editorFocus {
	return editorFocus((int(c.focus) + step) % 3)
}

func (c *editorController) setFocus(focus editorFocus) {
	c.focus = focus
	c.instruction.Blur()
	c.notes.Blur()
	switch focus {
	case focusInstruction:
		c.instruction.Focus()
	case focusNotes:
		c.notes.Focus()
	}
}

func (c *editorController) updateSections(msg tea.KeyMsg, host editorHost) tea.Cmd {
	switch msg.String() {
	case "esc":
		return host.closeEditor()
	case "up", "k":
		c.moveSelection(-1)
		return nil
	case "down", "j":
		c.moveSelection(1)
		return nil
	case "+", "=":
		return c.sendFeedback(host, types.FeedbackLike)
	case "-", "_":
		return c.sendFeedback(host, types.FeedbackDislike)
	case "y":
		if section := c.active(); section != nil {
			return host.copyText(section.Content)
		}
		return nil
	case "x":
		return c.export(host)
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		c.content, cmd = c.content.Update(msg)
		return cmd
	}
	return nil
}

func (c *editorController) moveSelection(delta int) {
	i := c.store.IndexOf(c.activeID)
	if i < 0 {
		return
	}
	next := c.store.At(i + delta)
	if next == nil {
		return
	}
	c.selectSection(next.ID)
}

// selectSection makes a section active and resets the working buffers to
// mirror it. Unsaved notes edits for the previous section are discarded.
func (c *editorController) selectSection(id int) {
	section, ok := c.store.Get(id)
	if !ok {
		return
	}
	c.activeID = id
	c.notes.SetValue(section.UserNotes)
	c.instruction.SetValue("")
	c.refreshContent()
}

func (c *editorController) updateInstruction(msg tea.KeyMsg, host editorHost) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.setFocus(focusSections)
		return nil
	case "enter":
		return c.refine(host)
	}
	var cmd tea.Cmd
	c.instruction, cmd = c.instruction.Update(msg)
	return cmd
}

func (c *editorController) updateNotes(msg tea.KeyMsg, host editorHost) tea.Cmd {
	switch msg.String() {
	case "esc":
		c.setFocus(focusSections)
		return nil
	case "ctrl+s":
		return c.saveNotes(host)
	}
	var cmd tea.Cmd
	c.notes, cmd = c.notes.Update(msg)
	return cmd
}

func (c *editorController) refine(host editorHost) tea.Cmd {
	section := c.active()
	if section == nil {
		return nil
	}
	instruction := strings.TrimSpace(c.instruction.Value())
	if instruction == "" {
		c.status = "refine instruction is empty"
		c.statusErr = true
		return nil
	}
	if !c.tryAcquire(refineKey(section.ID)) {
		return nil
	}
	c.status = fmt.Sprintf("refining %q...", section.Title)
	c.statusErr = false
	return host.refineSection(section.ID, instruction)
}

func (c *editorController) sendFeedback(host editorHost, kind types.Feedback) tea.Cmd {
	section := c.active()
	if section == nil {
		return nil
	}
	if !c.tryAcquire(feedbackKey(section.ID)) {
		return nil
	}
	return host.saveFeedback(section.ID, kind)
}

func (c *editorController) saveNotes(host editorHost) tea.Cmd {
	section := c.active()
	if section == nil {
		return nil
	}
	if !c.tryAcquire(notesKey(section.ID)) {
		return nil
	}
	c.status = "saving notes..."
	c.statusErr = false
	return host.saveNotes(section.ID, c.notes.Value())
}

func (c *editorController) export(host editorHost) tea.Cmd {
	if !c.loaded || c.store.Len() == 0 {
		return nil
	}
	if !c.tryAcquire(exportKey(c.project.ID)) {
		return nil
	}
	c.status = "exporting..."
	c.statusErr = false
	return host.exportProject(c.project)
}

func (c *editorController) handleSectionsMsg(msg sectionsMsg) {
	if c.project == nil || msg.projectID != c.project.ID {
		return
	}
	c.loading = false
	if msg.err != nil {
		c.status = "could not load sections: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.loaded = true
	c.status = ""
	c.statusErr = false
	c.store = NewSectionStore(msg.sections)
	if first := c.store.First(); first != nil {
		c.selectSection(first.ID)
	} else {
		c.activeID = 0
		c.refreshContent()
	}
}

// handleRefineMsg applies the refined content to the section the response
// names, regardless of what is selected now. The instruction line is only
// cleared when it still holds the text that produced this response.
func (c *editorController) handleRefineMsg(msg refineMsg) {
	c.release(refineKey(msg.sectionID))
	if msg.err != nil {
		c.status = "refine failed: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.store.ApplyContent(msg.sectionID, msg.content)
	if c.activeID == msg.sectionID {
		if strings.TrimSpace(c.instruction.Value()) == msg.instruction {
			c.instruction.SetValue("")
		}
		c.refreshContent()
	}
	c.status = "section refined"
	c.statusErr = false
}

func (c *editorController) handleFeedbackMsg(msg feedbackMsg) {
	c.release(feedbackKey(msg.sectionID))
	if msg.err != nil {
		c.status = "feedback not saved: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.store.SetFeedback(msg.sectionID, msg.kind)
	c.status = ""
	c.statusErr = false
}

func (c *editorController) handleNotesSavedMsg(msg notesSavedMsg) {
	c.release(notesKey(msg.sectionID))
	if msg.err != nil {
		c.status = "notes not saved: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.store.SetNotes(msg.sectionID, msg.notes)
	c.status = "notes saved"
	c.statusErr = false
}

func (c *editorController) handleExportMsg(msg exportMsg) {
	c.release(exportKey(msg.projectID))
	if msg.err != nil {
		c.status = "export failed: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.status = "exported to " + msg.path
	c.statusErr = false
}

func (c *editorController) handleClipboardMsg(msg clipboardMsg) {
	if msg.err != nil {
		c.status = "copy failed: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.status = "content copied"
	c.statusErr = false
}

func (c *editorController) refreshContent() {
	section := c.active()
	if section == nil {
		c.content.SetContent("")
		return
	}
	if c.markdown {
		c.content.SetContent(renderMarkdown(section.Content, c.content.Width))
	} else {
		c.content.SetContent(section.Content)
	}
	c.content.GotoTop()
}

func (c *editorController) View() string {
	if c.unavailable {
		return headerStyle.Render("Editor") + "\n\n" +
			emptyStateStyle.Render("This project has no saved identity yet and cannot be edited.") + "\n\n" +
			helpStyle.Render("esc back to dashboard")
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(c.project.Title))
	b.WriteString("  " + docTypeTagStyle.Render("["+c.project.DocType.Tag()+"]"))
	b.WriteString("\n\n")
	switch {
	case c.loading:
		b.WriteString(statusStyle.Render("loading sections..."))
		b.WriteString("\n")
	case c.loaded && c.store.Len() == 0:
		b.WriteString(emptyStateStyle.Render("This project has no sections."))
		b.WriteString("\n")
	case c.loaded:
		b.WriteString(c.viewBody())
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
	b.WriteString(c.helpLine())
	return b.String()
}

func (c *editorController) viewBody() string {
	sidebar := c.viewSidebar()
	pane := contentFrameStyle.Render(c.content.View())
	var right strings.Builder
	right.WriteString(pane)
	right.WriteString("\n")
	right.WriteString(labelStyle.Render("Refine") + "\n")
	right.WriteString(c.instruction.View() + "\n")
	right.WriteString(labelStyle.Render("Notes") + "\n")
	right.WriteString(c.notes.View())
	return joinColumns(sidebar, right.String())
}

func (c *editorController) viewSidebar() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Sections"))
	b.WriteString("\n")
	for i := 0; i < c.store.Len(); i++ {
		section := c.store.At(i)
		marker := section.Feedback.Marker()
		switch section.Feedback {
		case types.FeedbackLike:
			marker = feedbackLikeStyle.Render(marker)
		case types.FeedbackDislike:
			marker = feedbackDislike.Render(marker)
		}
		line := section.Title
		if marker != "" {
			line += " " + marker
		}
		if c.busy(refineKey(section.ID)) {
			line += " " + busyStyle.Render("…")
		}
		if section.ID == c.activeID {
			b.WriteString(sectionActiveStyle.Render("> " + line))
		} else {
			b.WriteString(sectionTitleStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *editorController) helpLine() string {
	switch c.focus {
	case focusInstruction:
		return helpStyle.Render("enter refine · esc sections · tab next pane")
	case focusNotes:
		return helpStyle.Render("ctrl+s save notes · esc sections · tab next pane")
	}
	return helpStyle.Render("j/k select · + like · - dislike · y copy · x export · tab panes · esc dashboard")
}

func joinColumns(left, right string) string {
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	width := 0
	for _, line := range leftLines {
		if w := visibleWidth(line); w > width {
			width = w
		}
	}
	if width < 24 {
		width = 24
	}
	n := len(leftLines)
	if len(rightLines) > n {
		n = len(rightLines)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		b.WriteString(l)
		b.WriteString(strings.Repeat(" ", width-visibleWidth(l)+2))
		b.WriteString(r)
		if i < n-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type loginHost interface {
	authenticate(username, password string) tea.Cmd
	register(username, password string) tea.Cmd
}

// loginController owns the credential form. Submission is blocked locally
// when either field is blank, so no request leaves the client for an
// obviously invalid form.
type loginController struct {
	username    textinput.Model
	password    textinput.Model
	focus       int
	registering bool
	busy        bool
	status      string
	statusErr   bool
}

func newLoginController() *loginController {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 32

	return &loginController{username: username, password: password}
}

func (c *loginController) Update(msg tea.KeyMsg, host loginHost) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		c.toggleFocus()
		return nil
	case "ctrl+r":
		if c.busy {
			return nil
		}
		c.registering = !c.registering
		c.status = ""
		c.statusErr = false
		return nil
	case "enter":
		return c.submit(host)
	}
	return c.updateFocused(msg)
}

func (c *loginController) toggleFocus() {
	if c.focus == 0 {
		c.focus = 1
		c.username.Blur()
		c.password.Focus()
	} else {
		c.focus = 0
		c.password.Blur()
		c.username.Focus()
	}
}

func (c *loginController) updateFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if c.focus == 0 {
		c.username, cmd = c.username.Update(msg)
	} else {
		c.password, cmd = c.password.Update(msg)
	}
	return cmd
}

func (c *loginController) submit(host loginHost) tea.Cmd {
	if c.busy {
		return nil
	}
	username := strings.TrimSpace(c.username.Value())
	password := c.password.Value()
	if username == "" || password == "" {
		c.status = "username and password are required"
		c.statusErr = true
		return nil
	}
	c.busy = true
	c.statusErr = false
	if c.registering {
		c.status = "creating account..."
		return host.register(username, password)
	}
	c.status = "signing in..."
	return host.authenticate(username, password)
}

// handleAuthMsg clears the in-flight guard; a successful response is acted
// on by the model (view transition), a failure stays here as status text.
func (c *loginController) handleAuthMsg(msg authMsg) {
	c.busy = false
	if msg.err != nil {
		c.status = "sign in failed: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.status = ""
	c.statusErr = false
}

func (c *loginController) handleRegisterMsg(msg registerMsg) {
	c.busy = false
	if msg.err != nil {
		c.status = "registration failed: " + msg.err.Error()
		c.statusErr = true
		return
	}
	c.registering = false
	c.status = "account created for " + msg.username + "; sign in to continue"
	c.statusErr = false
}

func (c *loginController) View() string {
	var b strings.Builder
	if c.registering {
		b.WriteString(headerStyle.Render("Create account"))
	} else {
		b.WriteString(headerStyle.Render("Sign in"))
	}
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Username") + "\n")
	b.WriteString(c.username.View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n")
	b.WriteString(c.password.View() + "\n")
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
	mode := "ctrl+r register"
	if c.registering {
		mode = "ctrl+r sign in"
	}
	b.WriteString(helpStyle.Render("enter submit · tab switch field · " + mode + " · ctrl+c quit"))
	return b.String()
}

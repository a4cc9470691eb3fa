package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type loginHostStub struct {
	authCalls     int
	authUser      string
	registerCalls int
	registerUser  string
}

func (h *loginHostStub) authenticate(username, password string) tea.Cmd {
	h.authCalls++
	h.authUser = username
	return nil
}

func (h *loginHostStub) register(username, password string) tea.Cmd {
	h.registerCalls++
	h.registerUser = username
	return nil
}

func TestLoginBlankFormSendsNothing(t *testing.T) {
	host := &loginHostStub{}
	c := newLoginController()
	c.Update(key("enter"), host)
	c.username.SetValue("ana")
	c.Update(key("enter"), host)
	if host.authCalls != 0 {
		t.Fatalf("authCalls = %d, want 0 for incomplete form", host.authCalls)
	}
	if !c.statusErr {
		t.Fatal("expected a validation status")
	}
}

func TestLoginSubmitSingleFlight(t *testing.T) {
	host := &loginHostStub{}
	c := newLoginController()
	c.username.SetValue("ana")
	c.password.SetValue("hunter2")
	c.Update(key("enter"), host)
	c.Update(key("enter"), host)
	if host.authCalls != 1 || host.authUser != "ana" {
		t.Fatalf("authCalls = %d user = %q", host.authCalls, host.authUser)
	}
}

func TestLoginFailureReleasesGuard(t *testing.T) {
	host := &loginHostStub{}
	c := newLoginController()
	c.username.SetValue("ana")
	c.password.SetValue("wrong")
	c.Update(key("enter"), host)
	c.handleAuthMsg(authMsg{username: "ana", err: errors.New("incorrect username or password")})
	if c.busy {
		t.Fatal("busy must clear on failure")
	}
	c.Update(key("enter"), host)
	if host.authCalls != 2 {
		t.Fatalf("authCalls = %d, want retry to go out", host.authCalls)
	}
}

func TestLoginRegisterMode(t *testing.T) {
	host := &loginHostStub{}
	c := newLoginController()
	c.Update(key("ctrl+r"), host)
	c.username.SetValue("ana")
	c.password.SetValue("hunter2")
	c.Update(key("enter"), host)
	if host.registerCalls != 1 || host.authCalls != 0 {
		t.Fatalf("registerCalls = %d authCalls = %d", host.registerCalls, host.authCalls)
	}
	c.handleRegisterMsg(registerMsg{username: "ana"})
	if c.registering {
		t.Fatal("successful registration should flip back to sign-in")
	}
}

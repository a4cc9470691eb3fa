package app

import "drafter/internal/types"

// view is a tagged union over the screens of the workflow. Each variant
// carries the data that screen needs, so states like "editor without a
// project" cannot be constructed.
type view interface {
	viewName() string
}

type loginView struct{}

func (loginView) viewName() string { return "login" }

type dashboardView struct{}

func (dashboardView) viewName() string { return "dashboard" }

type wizardView struct{}

func (wizardView) viewName() string { return "wizard" }

type editorView struct {
	project *types.Project
}

func (editorView) viewName() string { return "editor" }

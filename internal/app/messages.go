package app

import (
	"drafter/internal/store"
	"drafter/internal/types"
)

type authMsg struct {
	username string
	err      error
}

type registerMsg struct {
	username string
	err      error
}

type projectsMsg struct {
	projects []*types.Project
	err      error
}

type recentsMsg struct {
	visits []*store.ProjectVisit
	err    error
}

type recentTouchedMsg struct {
	err error
}

type outlineMsg struct {
	lines []string
	err   error
}

type projectCreatedMsg struct {
	project *types.Project
	err     error
}

type sectionsMsg struct {
	projectID int
	sections  []*types.Section
	err       error
}

type refineMsg struct {
	sectionID   int
	instruction string
	content     string
	err         error
}

type feedbackMsg struct {
	sectionID int
	kind      types.Feedback
	err       error
}

type notesSavedMsg struct {
	sectionID int
	notes     string
	err       error
}

type exportMsg struct {
	projectID int
	path      string
	err       error
}

type clipboardMsg struct {
	err error
}

package client

import "drafter/internal/types"

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerResponse struct {
	Msg string `json:"msg"`
}

type outlineRequest struct {
	Topic   string        `json:"topic"`
	DocType types.DocType `json:"doc_type"`
}

type outlineResponse struct {
	Outline []string `json:"outline"`
}

// CreateProjectRequest carries the wizard's config plus the reviewed
// outline; the backend generates one section per outline line.
type CreateProjectRequest struct {
	Title   string        `json:"title"`
	Topic   string        `json:"topic"`
	DocType types.DocType `json:"doc_type"`
	Outline []string      `json:"outline"`
}

type refineRequest struct {
	Instruction string `json:"instruction"`
}

type refineResponse struct {
	Content string `json:"content"`
}

// SectionPatch updates feedback and/or notes. Nil fields are omitted so the
// backend leaves the other attribute untouched.
type SectionPatch struct {
	Feedback  *types.Feedback `json:"feedback,omitempty"`
	UserNotes *string         `json:"user_notes,omitempty"`
}

func FeedbackPatch(kind types.Feedback) SectionPatch {
	return SectionPatch{Feedback: &kind}
}

func NotesPatch(notes string) SectionPatch {
	return SectionPatch{UserNotes: &notes}
}

// ExportArtifact is the fully-retrieved export stream for a project.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

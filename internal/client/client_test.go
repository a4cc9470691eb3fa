package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"drafter/internal/types"
)

func TestAuthenticateInstallsToken(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"bearer"}`))
		case "/projects":
			authHeader = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	if c.HasToken() {
		t.Fatalf("expected no token before login")
	}
	token, err := c.Authenticate(context.Background(), "maria", "secret")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("unexpected token: %q", token)
	}
	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatalf("ListProjects error: %v", err)
	}
	if authHeader != "Bearer tok-123" {
		t.Fatalf("unexpected auth header: %q", authHeader)
	}
}

func TestAuthenticatedCallWithoutTokenFails(t *testing.T) {
	c := New("http://127.0.0.1:0")
	if _, err := c.ListProjects(context.Background()); err == nil {
		t.Fatalf("expected error without token")
	}
}

func TestClearTokenDropsCredential(t *testing.T) {
	c := New("http://127.0.0.1:0")
	c.SetToken("tok")
	c.ClearToken()
	if c.HasToken() {
		t.Fatalf("expected token cleared")
	}
}

func TestDecodeAPIErrorDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Username already taken"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.Register(context.Background(), "maria", "secret")
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr := AsAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "Username already taken" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestRefineSectionRequestShape(t *testing.T) {
	var gotPath string
	var gotBody refineRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":"shorter text"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")
	content, err := c.RefineSection(context.Background(), 42, "make it shorter")
	if err != nil {
		t.Fatalf("RefineSection error: %v", err)
	}
	if content != "shorter text" {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotPath != "PUT /sections/42/refine" {
		t.Fatalf("unexpected request: %s", gotPath)
	}
	if gotBody.Instruction != "make it shorter" {
		t.Fatalf("unexpected instruction: %q", gotBody.Instruction)
	}
}

func TestUpdateSectionPatchOmitsUnsetFields(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		raw = body
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"msg":"Updated"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")
	if err := c.UpdateSection(context.Background(), 7, FeedbackPatch(types.FeedbackLike)); err != nil {
		t.Fatalf("UpdateSection error: %v", err)
	}
	if raw["feedback"] != "like" {
		t.Fatalf("expected feedback field, got %v", raw)
	}
	if _, present := raw["user_notes"]; present {
		t.Fatalf("expected user_notes omitted, got %v", raw)
	}

	if err := c.UpdateSection(context.Background(), 7, NotesPatch("check the numbers")); err != nil {
		t.Fatalf("UpdateSection notes error: %v", err)
	}
	if raw["user_notes"] != "check the numbers" {
		t.Fatalf("expected user_notes field, got %v", raw)
	}
	if _, present := raw["feedback"]; present {
		t.Fatalf("expected feedback omitted, got %v", raw)
	}
}

func TestUpdateSectionRejectsEmptyPatch(t *testing.T) {
	c := New("http://127.0.0.1:0")
	c.SetToken("tok")
	if err := c.UpdateSection(context.Background(), 7, SectionPatch{}); err == nil {
		t.Fatalf("expected error for empty patch")
	}
}

func TestListSectionsDecodesOrderedList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/3/sections" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":10,"project_id":3,"title":"Overview","content":"...","order_index":0,"feedback":null,"user_notes":""},
			{"id":11,"project_id":3,"title":"Goals","content":"...","order_index":1,"feedback":"like","user_notes":"tighten"}
		]`))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")
	sections, err := c.ListSections(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListSections error: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Feedback != types.FeedbackNone {
		t.Fatalf("expected null feedback to decode as none, got %q", sections[0].Feedback)
	}
	if sections[1].Feedback != types.FeedbackLike || sections[1].UserNotes != "tighten" {
		t.Fatalf("unexpected second section: %+v", sections[1])
	}
}

func TestExportProjectReadsArtifact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		w.Header().Set("Content-Disposition", `attachment; filename="Q1 Plan.docx"`)
		_, _ = w.Write([]byte("PK\x03\x04fake"))
	}))
	defer server.Close()

	c := New(server.URL)
	c.SetToken("tok")
	artifact, err := c.ExportProject(context.Background(), 3)
	if err != nil {
		t.Fatalf("ExportProject error: %v", err)
	}
	if artifact.Filename != "Q1 Plan.docx" {
		t.Fatalf("unexpected filename: %q", artifact.Filename)
	}
	if string(artifact.Data) != "PK\x03\x04fake" {
		t.Fatalf("unexpected payload: %q", artifact.Data)
	}
}

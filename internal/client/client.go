package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"drafter/internal/types"
)

// Client talks to the document-generation backend. The bearer token is an
// explicit field: set by Authenticate, dropped by ClearToken, never a
// process-wide default. Requests carry no client-side timeout; a hung call
// is surfaced by the caller's busy indicator.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Client) SetToken(token string) {
	c.token = strings.TrimSpace(token)
}

func (c *Client) ClearToken() {
	c.token = ""
}

func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	req := credentialsRequest{Username: username, Password: password}
	var resp registerResponse
	return c.doJSON(ctx, http.MethodPost, "/register", req, false, &resp)
}

// Authenticate exchanges credentials for a bearer token and installs it on
// the client.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, error) {
	req := credentialsRequest{Username: username, Password: password}
	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/token", req, false, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return "", errors.New("empty access token in response")
	}
	c.SetToken(resp.AccessToken)
	return resp.AccessToken, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]*types.Project, error) {
	var projects []*types.Project
	if err := c.doJSON(ctx, http.MethodGet, "/projects", nil, true, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) GenerateOutline(ctx context.Context, topic string, docType types.DocType) ([]string, error) {
	req := outlineRequest{Topic: topic, DocType: docType}
	var resp outlineResponse
	if err := c.doJSON(ctx, http.MethodPost, "/generate-outline", req, true, &resp); err != nil {
		return nil, err
	}
	return resp.Outline, nil
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*types.Project, error) {
	var project types.Project
	if err := c.doJSON(ctx, http.MethodPost, "/projects/", req, true, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) ListSections(ctx context.Context, projectID int) ([]*types.Section, error) {
	var sections []*types.Section
	path := fmt.Sprintf("/projects/%d/sections", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Client) RefineSection(ctx context.Context, sectionID int, instruction string) (string, error) {
	req := refineRequest{Instruction: instruction}
	var resp refineResponse
	path := fmt.Sprintf("/sections/%d/refine", sectionID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, true, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *Client) UpdateSection(ctx context.Context, sectionID int, patch SectionPatch) error {
	if patch.Feedback == nil && patch.UserNotes == nil {
		return errors.New("empty section patch")
	}
	path := fmt.Sprintf("/sections/%d/feedback", sectionID)
	return c.doJSON(ctx, http.MethodPut, path, patch, true, nil)
}

// ExportProject retrieves the rendered artifact for the whole project. The
// filename comes from Content-Disposition when present.
func (c *Client) ExportProject(ctx context.Context, projectID int) (*ExportArtifact, error) {
	path := fmt.Sprintf("/projects/%d/export", projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if err := c.attachToken(req); err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &ExportArtifact{
		Filename:    dispositionFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth {
		if err := c.attachToken(req); err != nil {
			return err
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) attachToken(req *http.Request) error {
	if c.token == "" {
		return errors.New("not authenticated")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Detail string `json:"detail"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Detail != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Detail}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

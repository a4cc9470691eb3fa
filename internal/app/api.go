package app

import (
	"context"

	"drafter/internal/client"
	"drafter/internal/types"
)

type AuthAPI interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
	ClearToken()
}

type ProjectAPI interface {
	ListProjects(ctx context.Context) ([]*types.Project, error)
	GenerateOutline(ctx context.Context, topic string, docType types.DocType) ([]string, error)
	CreateProject(ctx context.Context, req client.CreateProjectRequest) (*types.Project, error)
	ExportProject(ctx context.Context, projectID int) (*client.ExportArtifact, error)
}

type SectionAPI interface {
	ListSections(ctx context.Context, projectID int) ([]*types.Section, error)
	RefineSection(ctx context.Context, sectionID int, instruction string) (string, error)
	UpdateSection(ctx context.Context, sectionID int, patch client.SectionPatch) error
}

type ClientAPI struct {
	client *client.Client
}

func NewClientAPI(client *client.Client) *ClientAPI {
	return &ClientAPI{client: client}
}

func (a *ClientAPI) Register(ctx context.Context, username, password string) error {
	return a.client.Register(ctx, username, password)
}

func (a *ClientAPI) Authenticate(ctx context.Context, username, password string) (string, error) {
	return a.client.Authenticate(ctx, username, password)
}

func (a *ClientAPI) ClearToken() {
	a.client.ClearToken()
}

func (a *ClientAPI) ListProjects(ctx context.Context) ([]*types.Project, error) {
	return a.client.ListProjects(ctx)
}

func (a *ClientAPI) GenerateOutline(ctx context.Context, topic string, docType types.DocType) ([]string, error) {
	return a.client.GenerateOutline(ctx, topic, docType)
}

func (a *ClientAPI) CreateProject(ctx context.Context, req client.CreateProjectRequest) (*types.Project, error) {
	return a.client.CreateProject(ctx, req)
}

func (a *ClientAPI) ExportProject(ctx context.Context, projectID int) (*client.ExportArtifact, error) {
	return a.client.ExportProject(ctx, projectID)
}

func (a *ClientAPI) ListSections(ctx context.Context, projectID int) ([]*types.Section, error) {
	return a.client.ListSections(ctx, projectID)
}

func (a *ClientAPI) RefineSection(ctx context.Context, sectionID int, instruction string) (string, error) {
	return a.client.RefineSection(ctx, sectionID, instruction)
}

func (a *ClientAPI) UpdateSection(ctx context.Context, sectionID int, patch client.SectionPatch) error {
	return a.client.UpdateSection(ctx, sectionID, patch)
}

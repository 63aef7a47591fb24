package api

import (
	"context"
	"net/url"
	"time"

	"github.com/ederv/plandeck/internal/model"
)

// ProjectPatch is a partial project update
type ProjectPatch struct {
	Name      *string              `json:"name,omitempty"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	Deadline  *time.Time           `json:"deadline,omitempty"`
	Priority  *model.Priority      `json:"priority,omitempty"`
	Status    *model.ProjectStatus `json:"status,omitempty"`
	Order     *int                 `json:"order,omitempty"`
}

// Apply merges the patch into a project
func (p ProjectPatch) Apply(proj *model.Project) {
	if p.Name != nil {
		proj.Name = *p.Name
	}
	if p.StartDate != nil {
		proj.StartDate = *p.StartDate
	}
	if p.Deadline != nil {
		proj.Deadline = *p.Deadline
	}
	if p.Priority != nil {
		proj.Priority = *p.Priority
	}
	if p.Status != nil {
		proj.Status = *p.Status
	}
	if p.Order != nil {
		proj.Order = *p.Order
	}
}

// CreateProjectRequest is the payload for creating a project
type CreateProjectRequest struct {
	Name      string              `json:"name"`
	StartDate time.Time           `json:"start_date"`
	Deadline  time.Time           `json:"deadline"`
	Priority  model.Priority      `json:"priority,omitempty"`
	Status    model.ProjectStatus `json:"status,omitempty"`
	Order     int                 `json:"order"`
}

// Projects returns all of the user's projects
func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := c.get(ctx, "/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject creates a project and returns the server's representation
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (model.Project, error) {
	var project model.Project
	if err := c.post(ctx, "/projects", req, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// UpdateProject applies a patch and returns the authoritative result
func (c *Client) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (model.Project, error) {
	var project model.Project
	if err := c.put(ctx, "/projects/"+url.PathEscape(id), patch, &project); err != nil {
		return model.Project{}, err
	}
	return project, nil
}

// DeleteProject deletes a project
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.delete(ctx, "/projects/"+url.PathEscape(id), nil)
}

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/model"
)

// CreateProject persists a new project at the end of the display order
// (current max + 1) and appends the server's representation.
func (s *Store) CreateProject(ctx context.Context, req api.CreateProjectRequest) (model.Project, error) {
	s.mu.RLock()
	order := 0
	for _, p := range s.projects {
		if p.Order >= order {
			order = p.Order + 1
		}
	}
	s.mu.RUnlock()
	req.Order = order

	project, err := s.api.CreateProject(ctx, req)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.mu.Lock()
	s.projects = append(s.projects, project)
	s.sortProjectsLocked()
	s.mu.Unlock()
	return project, nil
}

// UpdateProject applies a patch optimistically, persists, and reconciles
func (s *Store) UpdateProject(ctx context.Context, id string, patch api.ProjectPatch) (model.Project, error) {
	s.mu.Lock()
	idx := s.projectIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	optimistic := s.projects[idx]
	patch.Apply(&optimistic)
	optimistic.UpdatedAt = s.now()
	s.projects[idx] = optimistic
	s.mu.Unlock()

	project, err := s.api.UpdateProject(ctx, id, patch)
	if err != nil {
		s.resyncProjects(ctx)
		return model.Project{}, fmt.Errorf("failed to update project: %w", err)
	}

	s.mu.Lock()
	if idx := s.projectIndexLocked(id); idx >= 0 {
		s.projects[idx] = project
	}
	s.sortProjectsLocked()
	s.mu.Unlock()
	return project, nil
}

// RescheduleProject is the timeline-drag commit: one persistence call
// carrying the gesture's final snapped date pair.
func (s *Store) RescheduleProject(ctx context.Context, id string, start, deadline time.Time) (model.Project, error) {
	return s.UpdateProject(ctx, id, api.ProjectPatch{
		StartDate: &start,
		Deadline:  &deadline,
	})
}

// DeleteProject removes the project optimistically and persists.
// Resync on failure, matching the update policy.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.projectIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)
	s.mu.Unlock()

	if err := s.api.DeleteProject(ctx, id); err != nil {
		s.resyncProjects(ctx)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// ReorderProjects moves the project at sourceIndex to destinationIndex,
// reassigns every Order to its list index, applies the whole list
// optimistically, and persists one update per changed project
// concurrently. Any failure reverts the entire collection to the
// pre-reorder snapshot.
func (s *Store) ReorderProjects(ctx context.Context, sourceIndex, destinationIndex int) error {
	s.mu.Lock()
	if sourceIndex < 0 || sourceIndex >= len(s.projects) {
		s.mu.Unlock()
		return fmt.Errorf("reorder source index %d out of range", sourceIndex)
	}
	if destinationIndex < 0 {
		destinationIndex = 0
	}
	if destinationIndex >= len(s.projects) {
		destinationIndex = len(s.projects) - 1
	}

	snapshot := append([]model.Project(nil), s.projects...)

	next := append([]model.Project(nil), s.projects...)
	moved := next[sourceIndex]
	next = append(next[:sourceIndex], next[sourceIndex+1:]...)
	next = append(next[:destinationIndex], append([]model.Project{moved}, next[destinationIndex:]...)...)

	var changed []model.Project
	for i := range next {
		if next[i].Order != i {
			next[i].Order = i
			next[i].UpdatedAt = s.now()
			changed = append(changed, next[i])
		}
	}
	s.projects = next
	s.mu.Unlock()

	if len(changed) == 0 {
		return nil
	}

	results := make([]model.Project, len(changed))
	oks := make([]bool, len(changed))
	errCh := make(chan error, len(changed))

	var wg sync.WaitGroup
	for i, p := range changed {
		wg.Add(1)
		go func(i int, id string, order int) {
			defer wg.Done()
			res, err := s.api.UpdateProject(ctx, id, api.ProjectPatch{Order: &order})
			if err != nil {
				errCh <- err
				return
			}
			results[i] = res
			oks[i] = true
		}(i, p.ID, p.Order)
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		s.mu.Lock()
		s.projects = snapshot
		s.mu.Unlock()
		return fmt.Errorf("failed to reorder projects: %w", err)
	}

	s.mu.Lock()
	for i := range results {
		if !oks[i] {
			continue
		}
		if idx := s.projectIndexLocked(results[i].ID); idx >= 0 {
			s.projects[idx] = results[i]
		}
	}
	s.sortProjectsLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) projectIndexLocked(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) resyncProjects(ctx context.Context) {
	projects, err := s.api.Projects(ctx)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.projects = projects
	s.sortProjectsLocked()
	s.mu.Unlock()
}

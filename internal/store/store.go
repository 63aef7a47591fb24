// Package store owns the canonical in-memory entity collections. Every
// mutation follows the same cycle: apply the change locally first so the
// UI never waits on the network, issue the persistence call, then either
// replace the optimistic value with the server's authoritative entity or
// roll back by re-fetching the whole collection.
//
// Entities are only ever mutated through the store's methods; getters
// hand out copies. bubbletea runs commands on their own goroutines, so
// the collections sit behind a mutex even though each gesture is a
// single logical thread of work.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/model"
)

// ErrNotFound means the entity is absent from the local collection
var ErrNotFound = errors.New("not found")

// Store is the single source of truth for tasks, projects, and segments
type Store struct {
	mu  sync.RWMutex
	api *api.Client

	tasks    []model.Task
	projects []model.Project
	segments []model.TimeSegment

	now func() time.Time
}

// New creates an empty store backed by the given API client
func New(client *api.Client) *Store {
	return &Store{
		api: client,
		now: time.Now,
	}
}

// Load fetches all three collections from the backend
func (s *Store) Load(ctx context.Context) error {
	tasks, err := s.api.Tasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	segments, err := s.api.Segments(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load time segments: %w", err)
	}
	projects, err := s.api.Projects(ctx)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.segments = segments
	s.projects = projects
	s.sortProjectsLocked()
	s.mu.Unlock()
	return nil
}

// Seed replaces the collections without touching the network, used to
// warm the store from the local snapshot cache before the first sync.
func (s *Store) Seed(tasks []model.Task, projects []model.Project, segments []model.TimeSegment) {
	s.mu.Lock()
	s.tasks = tasks
	s.projects = projects
	s.segments = segments
	s.sortProjectsLocked()
	s.mu.Unlock()
}

// Tasks returns a copy of the task collection
func (s *Store) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Task(nil), s.tasks...)
}

// Projects returns a copy of the project collection in display order
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Project(nil), s.projects...)
}

// Segments returns a copy of the segment collection
func (s *Store) Segments() []model.TimeSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TimeSegment(nil), s.segments...)
}

// SegmentsByTask returns the segments grouped by owning task id
func (s *Store) SegmentsByTask() map[string][]model.TimeSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.GroupSegmentsByTask(s.segments)
}

// TaskByID looks a task up in the local collection
func (s *Store) TaskByID(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// ProjectByID looks a project up in the local collection
func (s *Store) ProjectByID(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

func (s *Store) sortProjectsLocked() {
	sort.SliceStable(s.projects, func(i, j int) bool {
		return s.projects[i].Order < s.projects[j].Order
	})
}

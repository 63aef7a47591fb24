package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ederv/plandeck/internal/api"
	"github.com/ederv/plandeck/internal/model"
)

// fakeBackend is a minimal in-memory planning backend for store tests.
// Mutations can be failed selectively by id to exercise rollback paths.
type fakeBackend struct {
	mu       sync.Mutex
	tasks    map[string]model.Task
	projects map[string]model.Project
	failPut  map[string]bool // Ids whose PUT returns 500
	failDel  map[string]bool
	puts     int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tasks:    make(map[string]model.Task),
		projects: make(map[string]model.Project),
		failPut:  make(map[string]bool),
		failDel:  make(map[string]bool),
	}
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var out []model.Task
		for _, t := range b.tasks {
			out = append(out, t)
		}
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/tasks/")
		b.mu.Lock()
		defer b.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			if b.failPut[id] {
				b.fail(w, "update rejected")
				return
			}
			b.puts++
			task := b.tasks[id]
			var patch api.TaskPatch
			json.NewDecoder(r.Body).Decode(&patch)
			patch.Apply(&task)
			task.UpdatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
			b.tasks[id] = task
			json.NewEncoder(w).Encode(task)
		case http.MethodDelete:
			if b.failDel[id] {
				b.fail(w, "delete rejected")
				return
			}
			delete(b.tasks, id)
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(b.tasks[id])
		}
	})

	mux.HandleFunc("/time-segments", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.TimeSegment{})
	})

	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.Method == http.MethodPost {
			var req api.CreateProjectRequest
			json.NewDecoder(r.Body).Decode(&req)
			p := model.Project{
				ID:        "proj-" + req.Name,
				Name:      req.Name,
				StartDate: req.StartDate,
				Deadline:  req.Deadline,
				Order:     req.Order,
			}
			b.projects[p.ID] = p
			json.NewEncoder(w).Encode(p)
			return
		}
		var out []model.Project
		for _, p := range b.projects {
			out = append(out, p)
		}
		json.NewEncoder(w).Encode(out)
	})

	mux.HandleFunc("/projects/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/projects/")
		b.mu.Lock()
		defer b.mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			if b.failPut[id] {
				b.fail(w, "update rejected")
				return
			}
			b.puts++
			p := b.projects[id]
			var patch api.ProjectPatch
			json.NewDecoder(r.Body).Decode(&patch)
			patch.Apply(&p)
			p.UpdatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
			b.projects[id] = p
			json.NewEncoder(w).Encode(p)
		case http.MethodDelete:
			if b.failDel[id] {
				b.fail(w, "delete rejected")
				return
			}
			delete(b.projects, id)
			w.WriteHeader(http.StatusNoContent)
		default:
			json.NewEncoder(w).Encode(b.projects[id])
		}
	})

	return mux
}

func (b *fakeBackend) fail(w http.ResponseWriter, msg string) {
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func newTestStore(t *testing.T, backend *fakeBackend) *Store {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return New(api.New(srv.URL, "test-token", false))
}

func seedProjects(s *Store, names ...string) {
	var projects []model.Project
	for i, name := range names {
		projects = append(projects, model.Project{
			ID:    name,
			Name:  name,
			Order: i,
		})
	}
	s.Seed(nil, projects, nil)
}

func TestUpdateTaskOptimisticThenServerWins(t *testing.T) {
	backend := newFakeBackend()
	backend.tasks["t1"] = model.Task{ID: "t1", Title: "old", Status: model.StatusTodo}

	s := newTestStore(t, backend)
	s.Seed([]model.Task{backend.tasks["t1"]}, nil, nil)

	title := "new title"
	task, err := s.UpdateTask(context.Background(), "t1", api.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if task.Title != "new title" {
		t.Errorf("title = %q, want new title", task.Title)
	}

	// The server normalizes updated_at; the store must keep the server's
	// value, not the client's optimistic timestamp.
	want := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	got, _ := s.TaskByID("t1")
	if !got.UpdatedAt.Equal(want) {
		t.Errorf("updated_at = %v, want server value %v", got.UpdatedAt, want)
	}
}

func TestUpdateTaskNotFoundLocally(t *testing.T) {
	s := newTestStore(t, newFakeBackend())

	title := "x"
	_, err := s.UpdateTask(context.Background(), "ghost", api.TaskPatch{Title: &title})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskFailureResyncsFromBackend(t *testing.T) {
	backend := newFakeBackend()
	backend.tasks["t1"] = model.Task{ID: "t1", Title: "server truth"}
	backend.failPut["t1"] = true

	s := newTestStore(t, backend)
	s.Seed([]model.Task{{ID: "t1", Title: "server truth"}}, nil, nil)

	title := "doomed edit"
	_, err := s.UpdateTask(context.Background(), "t1", api.TaskPatch{Title: &title})
	if err == nil {
		t.Fatal("expected the update to fail")
	}
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "update rejected" {
		t.Errorf("err = %v, want backend message", err)
	}

	// Full resync: the optimistic title is gone
	got, ok := s.TaskByID("t1")
	if !ok {
		t.Fatal("task missing after resync")
	}
	if got.Title != "server truth" {
		t.Errorf("title after rollback = %q, want server truth", got.Title)
	}
}

func TestDeleteTaskFailureRestoresEntity(t *testing.T) {
	backend := newFakeBackend()
	backend.tasks["t1"] = model.Task{ID: "t1", Title: "keep me"}
	backend.failDel["t1"] = true

	s := newTestStore(t, backend)
	s.Seed([]model.Task{{ID: "t1", Title: "keep me"}}, nil, nil)

	if err := s.DeleteTask(context.Background(), "t1"); err == nil {
		t.Fatal("expected the delete to fail")
	}
	if _, ok := s.TaskByID("t1"); !ok {
		t.Error("failed delete must restore the entity via resync")
	}
}

func TestDeleteTaskSuccessRemovesLocally(t *testing.T) {
	backend := newFakeBackend()
	backend.tasks["t1"] = model.Task{ID: "t1"}

	s := newTestStore(t, backend)
	s.Seed([]model.Task{{ID: "t1"}}, nil, nil)

	if err := s.DeleteTask(context.Background(), "t1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, ok := s.TaskByID("t1"); ok {
		t.Error("deleted task still present")
	}
}

func TestReorderProjects(t *testing.T) {
	backend := newFakeBackend()
	for i, id := range []string{"A", "B", "C"} {
		backend.projects[id] = model.Project{ID: id, Name: id, Order: i}
	}

	s := newTestStore(t, backend)
	seedProjects(s, "A", "B", "C")

	// Move index 0 to index 2: [A B C] -> [B C A]
	if err := s.ReorderProjects(context.Background(), 0, 2); err != nil {
		t.Fatalf("ReorderProjects failed: %v", err)
	}

	got := s.Projects()
	wantOrder := []string{"B", "C", "A"}
	for i, p := range got {
		if p.ID != wantOrder[i] {
			t.Fatalf("projects[%d] = %s, want %s", i, p.ID, wantOrder[i])
		}
		if p.Order != i {
			t.Errorf("project %s Order = %d, want index %d", p.ID, p.Order, i)
		}
	}

	// Every project changed rank, so three persistence calls went out
	backend.mu.Lock()
	puts := backend.puts
	backend.mu.Unlock()
	if puts != 3 {
		t.Errorf("backend saw %d updates, want 3", puts)
	}
}

func TestReorderFailureRevertsWholeCollection(t *testing.T) {
	backend := newFakeBackend()
	for i, id := range []string{"A", "B", "C"} {
		backend.projects[id] = model.Project{ID: id, Name: id, Order: i}
	}
	backend.failPut["C"] = true // One of the three calls fails

	s := newTestStore(t, backend)
	seedProjects(s, "A", "B", "C")

	if err := s.ReorderProjects(context.Background(), 0, 2); err == nil {
		t.Fatal("expected reorder to fail")
	}

	// Whole-snapshot revert, not a partial one
	got := s.Projects()
	wantOrder := []string{"A", "B", "C"}
	for i, p := range got {
		if p.ID != wantOrder[i] || p.Order != i {
			t.Errorf("projects[%d] = %s(%d), want %s(%d)", i, p.ID, p.Order, wantOrder[i], i)
		}
	}
}

func TestReorderNoopWhenIndexUnchanged(t *testing.T) {
	backend := newFakeBackend()
	s := newTestStore(t, backend)
	seedProjects(s, "A", "B")

	if err := s.ReorderProjects(context.Background(), 1, 1); err != nil {
		t.Fatalf("ReorderProjects failed: %v", err)
	}
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.puts != 0 {
		t.Errorf("no-op reorder issued %d updates, want 0", backend.puts)
	}
}

func TestCreateProjectAssignsNextOrder(t *testing.T) {
	backend := newFakeBackend()
	s := newTestStore(t, backend)
	seedProjects(s, "A", "B")

	p, err := s.CreateProject(context.Background(), api.CreateProjectRequest{
		Name:      "C",
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Deadline:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.Order != 2 {
		t.Errorf("new project Order = %d, want current max + 1 = 2", p.Order)
	}
	if len(s.Projects()) != 3 {
		t.Errorf("store has %d projects, want 3", len(s.Projects()))
	}
}

func TestRescheduleProjectIssuesSingleUpdate(t *testing.T) {
	backend := newFakeBackend()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	backend.projects["p1"] = model.Project{ID: "p1", Name: "p1", StartDate: start, Deadline: deadline}

	s := newTestStore(t, backend)
	s.Seed(nil, []model.Project{backend.projects["p1"]}, nil)

	newDeadline := deadline.AddDate(0, 0, 2)
	p, err := s.RescheduleProject(context.Background(), "p1", start, newDeadline)
	if err != nil {
		t.Fatalf("RescheduleProject failed: %v", err)
	}
	if !p.Deadline.Equal(newDeadline) {
		t.Errorf("deadline = %v, want %v", p.Deadline, newDeadline)
	}
	if !p.StartDate.Equal(start) {
		t.Errorf("start = %v, want unchanged %v", p.StartDate, start)
	}
	backend.mu.Lock()
	defer backend.mu.Unlock()
	if backend.puts != 1 {
		t.Errorf("backend saw %d updates, want exactly 1", backend.puts)
	}
}

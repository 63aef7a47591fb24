package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ederv/plandeck/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestLoadBeforeFirstSync(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false before any snapshot was saved")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := openTestCache(t)

	planned := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	syncedAt := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Tasks: []model.Task{
			{ID: "t1", Title: "Write report", Status: model.StatusTodo, PlannedDate: &planned},
			{ID: "t2", Title: "Review draft", Status: model.StatusCompleted},
		},
		Projects: []model.Project{
			{ID: "p1", Name: "Q1 launch", Order: 0},
		},
		Segments: []model.TimeSegment{
			{ID: "s1", TaskID: "t1", Source: model.SourceApp, Date: "2026-03-04"},
		},
		SyncedAt: syncedAt,
	}
	if err := c.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after save")
	}
	if len(got.Tasks) != 2 || len(got.Projects) != 1 || len(got.Segments) != 1 {
		t.Fatalf("unexpected collection sizes: %d tasks, %d projects, %d segments",
			len(got.Tasks), len(got.Projects), len(got.Segments))
	}
	var t1 model.Task
	for _, task := range got.Tasks {
		if task.ID == "t1" {
			t1 = task
		}
	}
	if t1.Title != "Write report" {
		t.Errorf("task t1 title = %q, want %q", t1.Title, "Write report")
	}
	if t1.PlannedDate == nil || !t1.PlannedDate.Equal(planned) {
		t.Errorf("task t1 planned date not preserved")
	}
	if got.Segments[0].Date != "2026-03-04" {
		t.Errorf("segment date = %q, want %q", got.Segments[0].Date, "2026-03-04")
	}
	if !got.SyncedAt.Equal(syncedAt) {
		t.Errorf("synced at = %v, want %v", got.SyncedAt, syncedAt)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	c := openTestCache(t)

	first := Snapshot{
		Tasks: []model.Task{
			{ID: "t1", Title: "Old task"},
			{ID: "t2", Title: "Stale task"},
		},
	}
	if err := c.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := Snapshot{
		Tasks: []model.Task{{ID: "t3", Title: "Fresh task"}},
	}
	if err := c.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true after save")
	}
	if len(got.Tasks) != 1 || got.Tasks[0].ID != "t3" {
		t.Fatalf("expected only the fresh task, got %+v", got.Tasks)
	}
	if len(got.Projects) != 0 || len(got.Segments) != 0 {
		t.Fatalf("expected empty projects and segments, got %d and %d",
			len(got.Projects), len(got.Segments))
	}
}

func TestReopenPreservesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Failed to open cache: %v", err)
	}
	if err := c.Save(Snapshot{Projects: []model.Project{{ID: "p1", Name: "Keep"}}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	c, err = Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen cache: %v", err)
	}
	defer c.Close()

	got, ok, err := c.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok || len(got.Projects) != 1 || got.Projects[0].Name != "Keep" {
		t.Fatalf("snapshot not preserved across reopen: ok=%v projects=%+v", ok, got.Projects)
	}
}

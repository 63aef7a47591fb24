package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ederv/plandeck/internal/model"
)

func TestBearerHeaderAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode([]model.Task{})
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", false)
	if _, err := c.Tasks(context.Background()); err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q, want Bearer secret-token", gotAuth)
	}
	if gotReqID == "" {
		t.Error("expected an X-Request-ID header")
	}
}

func TestMissingTokenOutsideDevMode(t *testing.T) {
	c := New("http://localhost:0", "", false)
	_, err := c.Tasks(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("err = %v, want ErrNoToken", err)
	}
}

func TestMissingTokenToleratedInDevMode(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization") != ""
		json.NewEncoder(w).Encode([]model.Task{})
	}))
	defer srv.Close()

	c := New(srv.URL, "", true)
	if _, err := c.Tasks(context.Background()); err != nil {
		t.Fatalf("dev-mode request failed: %v", err)
	}
	if sawAuth {
		t.Error("dev mode without a token must not send an Authorization header")
	}
}

func TestErrorMessageFromBody(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"deadline before start_date"}`, "deadline before start_date"},
		{"message field", `{"message":"task not found"}`, "task not found"},
		{"empty body falls back to status text", ``, "Unprocessable Entity"},
		{"junk body falls back to status text", `<html>oops</html>`, "Unprocessable Entity"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, "tok", false)
			_, err := c.Tasks(context.Background())

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *api.Error", err)
			}
			if apiErr.Message != tc.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tc.want)
			}
			if apiErr.StatusCode != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", apiErr.StatusCode)
			}
		})
	}
}

func TestUpdateTaskSendsPatchAndDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/tasks/t1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var patch map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Fatalf("bad patch body: %v", err)
		}
		if patch["title"] != "renamed" {
			t.Errorf("patch title = %v, want renamed", patch["title"])
		}
		if _, ok := patch["status"]; ok {
			t.Error("nil patch fields must be omitted")
		}
		json.NewEncoder(w).Encode(model.Task{ID: "t1", Title: "renamed"})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", false)
	title := "renamed"
	task, err := c.UpdateTask(context.Background(), "t1", TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if task.Title != "renamed" {
		t.Errorf("task title = %q, want renamed", task.Title)
	}
}

func TestBulkSegmentDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/time-segments" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if len(body.IDs) != 2 {
			t.Errorf("ids = %v, want two", body.IDs)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", false)
	if err := c.DeleteSegments(context.Background(), []string{"s1", "s2"}); err != nil {
		t.Fatalf("DeleteSegments failed: %v", err)
	}
}

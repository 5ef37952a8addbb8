package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// writeTestSheet drops a small file to upload.
func writeTestSheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc-sheet-001.png")
	if err := os.WriteFile(path, []byte("not-really-a-png"), 0o600); err != nil {
		t.Fatalf("could not write test sheet: %v", err)
	}
	return path
}

func TestNew_InvalidURL(t *testing.T) {
	if _, err := New("not a url", "token"); err == nil {
		t.Error("New with invalid URL succeeded; want error")
	}
	if _, err := New("/relative", "token"); err == nil {
		t.Error("New with relative URL succeeded; want error")
	}
}

func TestUploadSheet(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("could not parse multipart form: %v", err)
		}
		if files := r.MultipartForm.File["files"]; len(files) != 1 {
			t.Errorf("got %d files; want 1", len(files))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	h, err := New(server.URL, "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	key, err := h.UploadSheet(context.Background(), writeTestSheet(t))
	if err != nil {
		t.Fatalf("UploadSheet returned error: %v", err)
	}
	if key == "" {
		t.Error("UploadSheet returned empty key")
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q; want Bearer secret", gotAuth)
	}
	if !strings.HasPrefix(gotPath, "/api/v1/sheets/") {
		t.Errorf("request path = %q; want /api/v1/sheets/<key>", gotPath)
	}
}

func TestUploadSheet_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	h, err := New(server.URL, "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := h.UploadSheet(context.Background(), writeTestSheet(t)); err != nil {
		t.Fatalf("UploadSheet returned error after retries: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("server saw %d calls; want 3", got)
	}
}

func TestUploadSheet_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad sheet", http.StatusBadRequest)
	}))
	defer server.Close()

	h, err := New(server.URL, "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := h.UploadSheet(context.Background(), writeTestSheet(t)); err == nil {
		t.Fatal("UploadSheet succeeded; want error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("server saw %d calls; want 1 (no retry on 4xx)", got)
	}
}

func TestNotifyProcessed(t *testing.T) {
	type message struct {
		Key      string `json:"key"`
		Document string `json:"document"`
		Sheet    int    `json:"sheet"`
	}
	var got message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/process" {
			t.Errorf("request path = %q; want /api/v1/process", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("could not decode message: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	h, err := New(server.URL, "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := h.NotifyProcessed(context.Background(), "abc-123", "report.pdf", 2); err != nil {
		t.Fatalf("NotifyProcessed returned error: %v", err)
	}
	if got.Key != "abc-123" || got.Document != "report.pdf" || got.Sheet != 2 {
		t.Errorf("message = %+v; want {abc-123 report.pdf 2}", got)
	}
}

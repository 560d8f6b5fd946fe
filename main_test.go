package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("TEMP_DIR", t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func fakeBackend(t *testing.T, post string, gotQuery *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/process-video/" {
			http.NotFound(w, r)
			return
		}
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"blog_post": post})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateCommand(t *testing.T) {
	var query string
	srv := fakeBackend(t, "# Title\nBody", &query)

	stdout, stderr, err := runCLI(t, "generate", "--backend", srv.URL, "--raw",
		"--tone", "formal", "--audience", "beginners",
		"https://www.youtube.com/watch?v=abc123&list=x")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if stdout != "# Title\nBody\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "Processing...") {
		t.Errorf("expected progress on stderr, got %q", stderr)
	}
	want := "video_id=abc123&output_format=markdown&tone=formal&audience=beginners"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}
}

func TestGenerateCommand_Save(t *testing.T) {
	srv := fakeBackend(t, "# Saved\n", nil)
	dir := t.TempDir()

	_, stderr, err := runCLI(t, "generate", "--backend", srv.URL, "--raw", "--save", dir,
		"https://www.youtube.com/watch?v=abc123")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	path := filepath.Join(dir, "blog-post.md")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved post: %v", err)
	}
	if string(data) != "# Saved\n" {
		t.Errorf("saved content = %q", data)
	}
	if !strings.Contains(stderr, path) {
		t.Errorf("expected saved path in stderr, got %q", stderr)
	}
}

func TestGenerateCommand_InvalidURL(t *testing.T) {
	srv := fakeBackend(t, "unused", nil)

	_, _, err := runCLI(t, "generate", "--backend", srv.URL, "https://youtu.be/abc123")
	if err == nil || err.Error() != "Invalid YouTube URL" {
		t.Fatalf("expected invalid URL error, got %v", err)
	}
}

func TestGenerateCommand_InvalidOption(t *testing.T) {
	srv := fakeBackend(t, "unused", nil)

	_, _, err := runCLI(t, "generate", "--backend", srv.URL, "--format", "pdf",
		"https://www.youtube.com/watch?v=abc123")
	if err == nil || !strings.Contains(err.Error(), "Invalid output format") {
		t.Fatalf("expected option error, got %v", err)
	}
}

func TestGenerateCommand_BadBackendURL(t *testing.T) {
	_, _, err := runCLI(t, "generate", "--backend", "not a url", "https://www.youtube.com/watch?v=abc123")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestOptionsCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "options")
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	for _, want := range []string{"General Audience", "professional", "markdown", "html", "Default"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("options output missing %q:\n%s", want, stdout)
		}
	}
}

func TestGenerateCommand_ClosesLogFileOnError(t *testing.T) {
	t.Setenv("LOG_DIR", t.TempDir())
	t.Setenv("TEMP_DIR", t.TempDir())
	srv := fakeBackend(t, "unused", nil)

	ctx := &commandContext{backendFlag: srv.URL}
	cmd := newGenerateCommand(ctx)
	cmd.SetArgs([]string{"https://youtu.be/abc123"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatal("expected invalid URL error")
	}
	if ctx.logger == nil {
		t.Fatal("expected the logger to have been opened")
	}
	if ctx.closer != nil {
		t.Error("log file left open after a failed run")
	}
}

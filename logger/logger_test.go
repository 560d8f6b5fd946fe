package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer, err := NewLogger(Options{Dir: dir, Level: "debug", JSON: true})
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	log.WithField("video_id", "abc123").Debug("Submitting request")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, data)
	}
	if entry["msg"] != "Submitting request" {
		t.Errorf("expected msg 'Submitting request', got %v", entry["msg"])
	}
	if entry["video_id"] != "abc123" {
		t.Errorf("expected video_id abc123, got %v", entry["video_id"])
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected debug level, got %s", log.GetLevel())
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	if _, _, err := NewLogger(Options{Dir: t.TempDir(), Level: "chatty"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

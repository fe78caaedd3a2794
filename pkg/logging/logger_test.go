package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the package at a temporary log directory and resets global state
func setupTestDir(t *testing.T) {
	t.Helper()

	origLogDir := logDir
	origInitErr := initErr
	origSessionID := sessionID

	logDir = t.TempDir()
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		sessionID = origSessionID
		sessionIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test-component")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "test-component" {
		t.Errorf("Expected component 'test-component', got %q", logger.component)
	}
	if logger.SessionID() == "" {
		t.Error("Expected non-empty session ID")
	}
	if _, err := os.Stat(logger.LogPath()); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.LogPath())
	}
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Printf("Test message %d", 123)
	logger.Debugf("Debug message")
	logger.Infof("Info message")
	logger.Warnf("Warning message")
	logger.Errorf("Error message")

	content, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	for _, pattern := range []string{
		"[test] [INFO] Test message 123",
		"[test] [DEBUG] Debug message",
		"[test] [INFO] Info message",
		"[test] [WARN] Warning message",
		"[test] [ERROR] Error message",
	} {
		if !strings.Contains(string(content), pattern) {
			t.Errorf("Log content missing expected pattern: %q\nContent:\n%s", pattern, content)
		}
	}
}

func TestMultipleComponentsShareSession(t *testing.T) {
	setupTestDir(t)

	logger1, err := NewLogger("store")
	if err != nil {
		t.Fatalf("Failed to create logger1: %v", err)
	}
	defer logger1.Close()

	logger2, err := NewLogger("tui")
	if err != nil {
		t.Fatalf("Failed to create logger2: %v", err)
	}
	defer logger2.Close()

	if logger1.SessionID() != logger2.SessionID() {
		t.Errorf("Expected same session ID, got %q and %q", logger1.SessionID(), logger2.SessionID())
	}
	if logger1.LogPath() != logger2.LogPath() {
		t.Errorf("Expected same log path, got %q and %q", logger1.LogPath(), logger2.LogPath())
	}

	logger1.Printf("Message from store")
	logger2.Printf("Message from tui")

	content, err := os.ReadFile(logger1.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "[store]") || !strings.Contains(string(content), "[tui]") {
		t.Errorf("Expected entries from both components, got:\n%s", content)
	}
}

func TestWriterLoggerAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger("cli", &buf)
	logger.Warnf("read %s failed", "a.json")
	logger.With("store").Errorf("write failed")

	out := buf.String()
	if !strings.Contains(out, "[cli] [WARN] read a.json failed") {
		t.Errorf("missing cli entry: %q", out)
	}
	if !strings.Contains(out, "[store] [ERROR] write failed") {
		t.Errorf("missing derived component entry: %q", out)
	}
	if logger.LogPath() != "" {
		t.Errorf("writer logger should not report a log path, got %q", logger.LogPath())
	}
}

func TestGetLogDirectory(t *testing.T) {
	setupTestDir(t)

	dir, err := GetLogDirectory()
	if err != nil {
		t.Fatalf("Failed to get log directory: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("Log directory does not exist or is not a directory: %s", dir)
	}
}

func TestSetDirectory(t *testing.T) {
	setupTestDir(t)

	custom := filepath.Join(t.TempDir(), "nested", "logs")
	SetDirectory(custom)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if filepath.Dir(logger.LogPath()) != custom {
		t.Errorf("Expected log in %s, got %s", custom, logger.LogPath())
	}

	moved := filepath.Join(t.TempDir(), "moved")
	SetDirectory(moved)

	next, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger after moving: %v", err)
	}
	defer next.Close()

	if filepath.Dir(next.LogPath()) != moved {
		t.Errorf("Expected log in %s, got %s", moved, next.LogPath())
	}
	if next.SessionID() != logger.SessionID() {
		t.Error("Expected the session ID to survive a directory change")
	}
}

func TestLoggerClose(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestLogPathFormat(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	fileName := filepath.Base(logger.LogPath())
	if !strings.HasSuffix(fileName, "-promptpilot.log") {
		t.Errorf("Expected log file to end with '-promptpilot.log', got %q", fileName)
	}

	sessionPart := strings.TrimSuffix(fileName, "-promptpilot.log")
	if strings.Count(sessionPart, "-") != 4 {
		t.Errorf("Expected UUID session ID, got %q", sessionPart)
	}
}

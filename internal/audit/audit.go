// Package audit records tool-use events for the logToolUse rule. Entries
// are JSON lines appended to a log file. Hook processes can run
// concurrently, so appends are guarded by a file lock, and an oversized log
// is rotated to a gzip archive before the next append.
package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/klauspost/compress/gzip"

	"github.com/toolgate/toolgate/internal/logger"
)

// TimestampFormat is the format used for tool-use log timestamps.
const TimestampFormat = "2006-01-02T15:04:05.0Z07:00"

// DefaultMaxSize is the log size that triggers rotation.
const DefaultMaxSize = 10 << 20

// Entry is a single tool-use record.
type Entry struct {
	SessionID  string  `json:"session_id"`
	ToolName   string  `json:"tool_name"`
	Command    string  `json:"command,omitempty"`
	Query      string  `json:"query,omitempty"`
	Cwd        string  `json:"cwd,omitempty"`
	Allowed    bool    `json:"allowed"`
	Rule       string  `json:"rule,omitempty"`
	Message    string  `json:"message,omitempty"`
	DurationMs float64 `json:"duration_ms"`
	Timestamp  string  `json:"timestamp"`
}

// Log appends tool-use entries to a file.
type Log struct {
	path    string
	maxSize int64
}

// DefaultLogPath returns the default tool-use log path
// (~/.local/share/toolgate/tooluse.log).
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "toolgate", "tooluse.log"), nil
}

// New creates a Log writing to path. An empty path selects the default
// location.
func New(path string) (*Log, error) {
	if path == "" {
		var err error
		path, err = DefaultLogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tool-use log path: %w", err)
		}
	}
	return &Log{path: path, maxSize: DefaultMaxSize}, nil
}

// Record appends one entry. The timestamp is set here.
func (l *Log) Record(entry Entry) error {
	entry.Timestamp = time.Now().UTC().Format(TimestampFormat)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal tool-use entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create tool-use log directory: %w", err)
	}

	fileLock := flock.New(l.path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("failed to lock tool-use log: %w", err)
	}
	defer func() {
		if err := fileLock.Unlock(); err != nil {
			logger.Debug("failed to unlock tool-use log", "error", err)
		}
	}()

	if err := l.rotateIfNeeded(); err != nil {
		logger.Debug("tool-use log rotation failed", "error", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open tool-use log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write tool-use entry: %w", err)
	}

	return nil
}

// rotateIfNeeded gzips the current log to <path>.1.gz once it exceeds the
// size limit. Must be called with the file lock held.
func (l *Log) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() < l.maxSize {
		return nil
	}

	src, err := os.Open(l.path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(l.path + ".1.gz")
	if err != nil {
		return err
	}
	defer dst.Close()

	zw := gzip.NewWriter(dst)
	if _, err := io.Copy(zw, src); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}

	return os.Truncate(l.path, 0)
}

// Package eventlog is the append-only error log for rejected input.
//
// Every entry is one plain-text line, "[dd/mm/yyyy HH:MM:SS] message". The
// file is opened, written, synced and closed on each append, so no handle is
// held between operations. There is no rotation.
package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampLayout renders as 12/11/2025 14:35:20.
const TimestampLayout = "02/01/2006 15:04:05"

// ErrNoLog indicates nothing has been logged yet.
var ErrNoLog = errors.New("no log file found")

// Log appends timestamped lines to a file.
type Log struct {
	path string

	// Now returns the entry timestamp; tests replace it with a fixed clock.
	Now func() time.Time
}

// New creates a Log writing to path. The file is created on first append.
func New(path string) *Log {
	return &Log{path: path, Now: time.Now}
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Format renders one entry without the trailing newline.
func Format(at time.Time, msg string) string {
	return fmt.Sprintf("[%s] %s", at.Format(TimestampLayout), msg)
}

// Append writes msg as a single entry. Newlines inside msg are folded to
// spaces so one call is always one line.
func (l *Log) Append(msg string) (err error) {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close log file: %w", cerr)
		}
	}()

	line := Format(l.Now(), strings.ReplaceAll(msg, "\n", " ")) + "\n"
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	return f.Sync()
}

// Lines reads the log back in write order. It returns ErrNoLog when the file
// does not exist.
func (l *Log) Lines() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoLog
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}
	return lines, nil
}

// Package activity maintains the append-only JSONL log of archive
// operations. The log doubles as the dedup index for batch runs: a URL that
// already has an "archived" entry is skipped.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logFileName   = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Actions recorded in the log.
const (
	ActionArchived = "archived"
	ActionSkipped  = "skipped"
	ActionFailed   = "failed"
	ActionRenamed  = "renamed"
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	URL       string    `json:"url,omitempty"`
	File      string    `json:"file,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Append appends a log entry to the activity log file.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
func Append(archiveDir string, entry Entry) error {
	path := filepath.Join(archiveDir, logFileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path from trusted archive dir
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling log entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing log entry: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateLogIfNeeded(path)

	return nil
}

// truncateLogIfNeeded reads the log file and, if it exceeds maxLogEntries,
// rewrites it keeping only the most recent entries.
func truncateLogIfNeeded(path string) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxLogEntries {
		return nil
	}

	// Keep only the last maxLogEntries lines.
	lines = lines[len(lines)-maxLogEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// Record appends an activity log entry. Errors are silently discarded
// because logging should never fail a command.
func Record(archiveDir, action, url, file, detail string) {
	entry := Entry{
		Timestamp: time.Now(),
		Action:    action,
		URL:       url,
		File:      file,
		Detail:    detail,
	}
	_ = Append(archiveDir, entry)
}

// ArchivedURLs returns the set of URLs with an archived entry in the log,
// keyed by the raw URL string recorded at archive time. A missing log file
// yields an empty set.
func ArchivedURLs(archiveDir string) (map[string]bool, error) {
	path := filepath.Join(archiveDir, logFileName)
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	urls := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue // tolerate corrupt lines
		}
		if entry.Action == ActionArchived && entry.URL != "" {
			urls[entry.URL] = true
		}
	}
	return urls, scanner.Err()
}

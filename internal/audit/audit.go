package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/PolarWolf314/rotp/internal/utils"
)

// Entry is one line of the audit log. It never carries labels or secrets.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds.
	Session   string `json:"session"` // One UUID per process.
	User      string `json:"user"`    // OS user name.
	Operation string `json:"op"`
	Archive   string `json:"archive,omitempty"`

	Added    int `json:"added,omitempty"`
	Replaced int `json:"replaced,omitempty"`
	Removed  int `json:"removed,omitempty"`
	Skipped  int `json:"skipped,omitempty"`
	Total    int `json:"total,omitempty"` // Entries in the archive after the operation.
}

// Log appends entries to a JSON Lines file. A nil *Log discards everything.
type Log struct {
	path    string
	session string
	user    string
}

// New returns a Log writing to path with a fresh session id.
func New(path string) *Log {
	user, err := utils.GetUsername()
	if err != nil {
		user = "unknown"
	}
	return &Log{path: path, session: uuid.NewString(), user: user}
}

// Path returns the log file location.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Record appends entry, filling in the timestamp, session and user.
// Failures are ignored: an operation never fails because auditing did.
func (l *Log) Record(entry Entry) {
	if l == nil || l.path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	entry.Session = l.session
	entry.User = l.user

	if err := os.MkdirAll(filepath.Dir(l.path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the log at path.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data, skipping malformed lines left by
// interrupted writes.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries
}

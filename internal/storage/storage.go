// Package storage provides the filesystem resource layer for divisions.
//
// Each division owns one directory named by its identifier, holding a
// fixed set of named resources plus a logs/ area with one day-bucketed
// append-only file per log type. Machine-owned resources are JSON;
// settings.yml and other.yml are YAML so operators can edit them by hand.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: division directory does not exist
//   - ErrMissingResource: a resource file is absent
//   - ErrCorrupt: a resource file exists but cannot be decoded
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, storage.ErrMissingResource) {
//	    // optional resource absent
//	}
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Standard errors for resource access. Use errors.Is() in calling code.
var (
	// ErrNotFound indicates the division directory does not exist.
	ErrNotFound = errors.New("division directory not found")

	// ErrMissingResource indicates a resource file is absent.
	ErrMissingResource = errors.New("missing division resource")

	// ErrCorrupt indicates a resource file exists but cannot be decoded.
	ErrCorrupt = errors.New("corrupt division resource")
)

// SchemaVersion tags every persisted resource so the format can evolve
// without parallel type hierarchies.
const SchemaVersion = 1

// Resource file names within a division directory.
const (
	InfoFile         = "info.json"
	MembersFile      = "members.json"
	BansFile         = "bans.json"
	AchievementsFile = "achievements.json"
	SocialsFile      = "socials.json"
	AuditFile        = "audit.json"
	SettingsFile     = "settings.yml"
	OtherFile        = "other.yml"

	// LogsDir holds one subdirectory per log type with day-bucketed files.
	LogsDir = "logs"
)

// Log types under LogsDir.
const (
	AuditLog = "audit"
	ChatLog  = "chat"
)

// Dir is a handle on one division's directory.
type Dir struct {
	path string
}

// NewDir wraps a division directory path.
func NewDir(path string) Dir {
	return Dir{path: path}
}

// Path returns the directory path.
func (d Dir) Path() string {
	return d.path
}

// Init creates the directory if needed.
func (d Dir) Init() error {
	return os.MkdirAll(d.path, 0o755)
}

// Exists reports whether the directory is present.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.path)
	return err == nil && info.IsDir()
}

// Remove deletes the directory and every resource under it.
func (d Dir) Remove() error {
	return os.RemoveAll(d.path)
}

// AppendLog appends one line to the day-bucketed file for the given log
// type, creating the bucket as needed. Lines carry a "[HH:MM:SS] " prefix.
func (d Dir) AppendLog(logType string, at time.Time, line string) error {
	dir := filepath.Join(d.path, LogsDir, logType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	name := filepath.Join(dir, at.Format("2006-01-02")+".log")
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s%s\n", at.Format("[15:04:05] "), line); err != nil {
		return err
	}
	return f.Sync()
}

// ReadLog returns the lines of the day bucket for the given log type. An
// absent bucket yields no lines and no error.
func (d Dir) ReadLog(logType string, day time.Time) ([]string, error) {
	name := filepath.Join(d.path, LogsDir, logType, day.Format("2006-01-02")+".log")
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// writeAtomic writes a resource through a temp file and rename so a crash
// mid-write never leaves a truncated resource behind.
func (d Dir) writeAtomic(name string, data []byte) error {
	target := filepath.Join(d.path, name)
	tmp, err := os.CreateTemp(d.path, name+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// readResource loads a resource's raw bytes, mapping absence to
// ErrMissingResource.
func (d Dir) readResource(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(d.path, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingResource, name)
		}
		return nil, err
	}
	return data, nil
}

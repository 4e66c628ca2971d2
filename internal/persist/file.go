package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// File loads and saves PersistentData as JSON.
type File struct {
	Path   string
	Limit  int // leaderboard bucket size applied on load
	Logger *log.Logger

	now func() time.Time
}

// NewFile creates a save file handle. A leading ~ in path is expanded.
func NewFile(path string, limit int, logger *log.Logger) (*File, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("persist: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &File{Path: path, Limit: limit, Logger: logger, now: time.Now}, nil
}

// Load reads the save file. It never fails: a missing file yields defaults,
// an unreadable or malformed one is moved aside to a timestamped backup and
// yields defaults, and older schema versions are upgraded.
func (f *File) Load() *PersistentData {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		f.logger().Debug("no save file, using defaults", "path", f.Path)
		return Default()
	}
	if err != nil {
		f.logger().Warn("cannot read save file", "path", f.Path, "err", err)
		f.backupCorrupt()
		return Default()
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		f.logger().Warn("save file is not valid JSON", "path", f.Path, "err", err)
		f.backupCorrupt()
		return Default()
	}
	doc, ok := payload.(map[string]any)
	if !ok {
		f.logger().Warn("save file is not a JSON object", "path", f.Path)
		f.backupCorrupt()
		return Default()
	}

	if v := schemaVersion(doc); v < CurrentSchemaVersion {
		f.logger().Info("upgrading save file", "from", v, "to", CurrentSchemaVersion)
	}
	return decode(Migrate(doc), f.Limit)
}

// Save writes d to disk, creating parent directories as needed, and stamps
// d with the current schema version.
func (f *File) Save(d *PersistentData) error {
	d.SchemaVersion = CurrentSchemaVersion
	body, err := json.MarshalIndent(encode(d), "", "  ")
	if err != nil {
		return fmt.Errorf("persist: cannot encode save data: %w", err)
	}

	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("persist: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.Path, body, 0o644); err != nil {
		return fmt.Errorf("persist: cannot write %s: %w", f.Path, err)
	}
	return nil
}

// BackupPath returns where a corrupt save made at t is moved.
func BackupPath(path string, t time.Time) string {
	return path + ".corrupt-" + t.Format("20060102150405")
}

// backupCorrupt is best effort; a failed rename is only logged.
func (f *File) backupCorrupt() {
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	dst := BackupPath(f.Path, now())
	if err := os.Rename(f.Path, dst); err != nil {
		f.logger().Debug("cannot back up corrupt save file", "path", f.Path, "err", err)
		return
	}
	f.logger().Warn("corrupt save file backed up", "backup", dst)
}

func (f *File) logger() *log.Logger {
	if f.Logger == nil {
		f.Logger = log.New(io.Discard)
	}
	return f.Logger
}

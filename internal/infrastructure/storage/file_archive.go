package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"PulseBriefing/internal/domain"
	"PulseBriefing/internal/ports"
)

// FileArchive persists the briefing archive as one pretty-printed JSON
// document, fully replaced on every run. The mobile client reads this file
// over a raw-content URL and treats it as read-only.
type FileArchive struct {
	path   string
	logger *slog.Logger
}

var _ ports.ArchiveStore = (*FileArchive)(nil)

// NewFileArchive stores the archive at path.
func NewFileArchive(path string, logger *slog.Logger) *FileArchive {
	return &FileArchive{path: path, logger: logger}
}

// Load reads the stored archive. A missing or corrupt file is treated as an
// empty archive so a damaged artifact never blocks regeneration.
func (f *FileArchive) Load(ctx context.Context) ([]domain.DailyBriefings, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("could not read existing archive", "path", f.path, "error", err)
		}
		return nil, nil
	}

	var days []domain.DailyBriefings
	if err := json.Unmarshal(raw, &days); err != nil {
		f.logger.Warn("existing archive is corrupt, starting empty", "path", f.path, "error", err)
		return nil, nil
	}
	return days, nil
}

// Save writes the archive atomically: marshal to a temp file in the target
// directory, then rename over the previous artifact. A failure leaves the
// prior archive untouched and is fatal to the run.
func (f *FileArchive) Save(ctx context.Context, days []domain.DailyBriefings) error {
	raw, err := json.MarshalIndent(days, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "briefings-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace archive: %w", err)
	}

	f.logger.Info("archive saved", "path", f.path, "days", len(days))
	return nil
}

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"promfeed/internal/logger"
)

// Exporter publishes encoded feeds to the local filesystem.
type Exporter struct {
	logger *logger.Logger
}

func New(logger *logger.Logger) *Exporter {
	return &Exporter{
		logger: logger,
	}
}

// WriteFile replaces path with data atomically: readers see either the old
// feed or the complete new one.
func (e *Exporter) WriteFile(ctx context.Context, path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}

	// Last point at which the old file is still untouched.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	e.logger.Info("Wrote feed to %s (%d bytes)", path, len(data))
	return nil
}

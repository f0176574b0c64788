// Package platform holds filesystem helpers shared by the commands.
package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Replaceable for testing error paths.
var (
	osCreateTemp = os.CreateTemp
	osChmod      = os.Chmod
	osRename     = os.Rename
)

// AtomicWrite replaces path with data by writing a temp file in the same
// directory and renaming it over the target, so readers never observe a
// partially written section file.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp, err := osCreateTemp(filepath.Dir(path), ".texsplit-*.tmp")
	if err != nil {
		return fmt.Errorf("atomic write: create temp: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		return fmt.Errorf("atomic write: write: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("atomic write: close: %w", closeErr)
	}
	if err := osChmod(tmpName, perm); err != nil {
		return fmt.Errorf("atomic write: chmod: %w", err)
	}
	if err := osRename(tmpName, path); err != nil {
		return fmt.Errorf("atomic write: rename: %w", err)
	}

	committed = true
	slog.Debug("file written", "component", "platform", "operation", "atomic_write", "path", path, "bytes", len(data))
	return nil
}

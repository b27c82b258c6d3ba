package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile creates path's parent directory if needed, writes data to a
// sibling temp file, then renames it into place — the same
// create-lazily/write-temp/rename-atomically discipline as the teacher's
// dailylogger, generalized from "append to a rolling log" to "replace a
// whole artifact" (spec.md §4.F).
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s to %s: %w", tmpName, path, err)
	}
	return nil
}

// WriteText is WriteFile for a text artifact with the conventional
// world-readable permission every feed in this module uses.
func WriteText(path, text string) error {
	return WriteFile(path, []byte(text), 0o644)
}

package engines

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stageInput copies a PDDL file into dir with its text encoding
// normalized (UTF-8 BOM stripped, CRLF folded to LF) so external
// engines always see clean input. The staged copy lives only for the
// duration of the engine call; callers remove dir on every exit path.
func stageInput(dir, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("engines: read %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	staged := filepath.Join(dir, filepath.Base(path))
	if err := os.WriteFile(staged, data, 0o644); err != nil {
		return "", fmt.Errorf("engines: stage %s: %w", path, err)
	}
	return staged, nil
}

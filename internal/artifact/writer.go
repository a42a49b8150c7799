package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"happyminds/internal/domain"
)

// Writer echoes analysis results to disk as pretty-printed JSON files with
// generated names, one file per saved analysis.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "out"
	}
	return &Writer{dir: dir}
}

// Write persists the result to <dir>/<uuid>.json and returns the path.
func (w *Writer) Write(result domain.AnalysisResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ".json"
	path := filepath.Join(w.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

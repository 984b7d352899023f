// Package export writes backend-produced summary documents to disk. The
// client does not generate document content itself; it only lands the
// downloaded bytes where the user can find them.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SummaryFileName matches the download name the backend serves.
const SummaryFileName = "summary.docx"

type Exporter struct {
	overrideDir string
	cwd         string
}

func New(overrideDir string) (*Exporter, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve cwd: %w", err)
	}
	return &Exporter{overrideDir: strings.TrimSpace(overrideDir), cwd: cwd}, nil
}

// SaveSummary writes the document bytes to summary.docx in the export
// directory (or the working directory when none is configured) and
// returns the path written.
func (e *Exporter) SaveSummary(data []byte) (string, error) {
	path := e.outputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func (e *Exporter) outputPath() string {
	dir := e.cwd
	if e.overrideDir != "" {
		dir = e.overrideDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(e.cwd, dir)
		}
	}
	return filepath.Join(dir, SummaryFileName)
}

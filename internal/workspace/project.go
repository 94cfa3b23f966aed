package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive is the on-disk location of the latest saved report of one document.
type Archive struct {
	ID         string
	Root       string
	ReportPath string
}

// ArchiveReport writes report as indented JSON under reports/<id>/report.json,
// where id is derived from the document title. A later save of the same
// title replaces the earlier file.
func ArchiveReport(workspaceRoot, title string, report any) (*Archive, error) {
	id := titleHash(title)
	dir := filepath.Join(workspaceRoot, "reports", id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	reportPath := filepath.Join(dir, "report.json")
	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(reportPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	return &Archive{
		ID:         id,
		Root:       dir,
		ReportPath: reportPath,
	}, nil
}

func titleHash(title string) string {
	trimmed := strings.TrimSpace(strings.ToLower(title))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

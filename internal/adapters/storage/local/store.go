package local

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"3tcapital/myob_attachments/internal/core/invoice"
)

// DefaultDir is the output directory when none is configured.
const DefaultDir = "invoice_pdfs"

// Store writes attachment content to a flat directory on local disk.
type Store struct {
	dir string
	log *slog.Logger
}

// NewStore creates a store rooted at dir, defaulting to DefaultDir.
// The directory is created lazily on first save.
func NewStore(dir string, log *slog.Logger) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	return &Store{dir: dir, log: log}
}

// FileName builds the deterministic output name for one attachment:
// invoice_<YYYYMMDD>_<invoiceNumber>_<originalFilename>. Re-running over
// the same range overwrites the same files.
func FileName(inv invoice.Invoice, att invoice.Attachment) string {
	return "invoice_" + inv.IssueDate.Format("20060102") + "_" + sanitize(inv.Number) + "_" + sanitize(att.OriginalFileName)
}

// sanitize strips anything that could escape the output directory from an
// API-supplied name component.
func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "unknown"
	}
	return name
}

// Save writes content into the output directory, creating it if absent.
func (s *Store) Save(inv invoice.Invoice, att invoice.Attachment, content []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &invoice.StoreError{Path: s.dir, Err: err}
	}

	path := filepath.Join(s.dir, FileName(inv, att))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", &invoice.StoreError{Path: path, Err: err}
	}

	s.log.Debug("file written", "path", path, "size_bytes", len(content))
	return path, nil
}

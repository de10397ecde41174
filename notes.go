package optfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Notes is a free-form scratchpad persisted next to the ledger. A missing
// file reads as empty; the file is created on first save.
type Notes struct {
	path string
}

// NewNotes returns a Notes store backed by the given file path.
func NewNotes(path string) *Notes { return &Notes{path: path} }

// Load returns the saved text, "" when no notes exist yet.
func (n *Notes) Load() (string, error) {
	content, err := os.ReadFile(n.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading notes: %w", err)
	}
	return string(content), nil
}

// Save replaces the notes with text.
func (n *Notes) Save(text string) error {
	if err := os.WriteFile(n.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	return nil
}

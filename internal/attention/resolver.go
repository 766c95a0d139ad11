package attention

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a fragment id maps to no readable content.
// The selector treats it as COLD rather than failing the turn.
var ErrNotFound = errors.New("fragment content not found")

// Resolver turns a fragment id into injectable text.
type Resolver interface {
	// Full returns the complete fragment body.
	Full(id string) (string, error)
	// Header returns at most maxLines leading lines, with a truncation
	// marker appended when the body is longer.
	Header(id string, maxLines int) (string, error)
}

// truncationMarker is appended to headers cut short of the full body.
const truncationMarker = "[... truncated]"

// FileResolver resolves fragment ids as paths under a documents root.
type FileResolver struct {
	Root string
}

// path maps a fragment id to a file path, rejecting ids that escape the
// documents root.
func (r FileResolver) path(id string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(id))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("fragment id %q escapes documents root: %w", id, ErrNotFound)
	}
	return filepath.Join(r.Root, clean), nil
}

func (r FileResolver) Full(id string) (string, error) {
	p, err := r.path(id)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read fragment %s: %w", id, err)
	}
	return string(data), nil
}

func (r FileResolver) Header(id string, maxLines int) (string, error) {
	full, err := r.Full(id)
	if err != nil {
		return "", err
	}

	lines := strings.Split(full, "\n")
	if len(lines) <= maxLines {
		return full, nil
	}
	head := strings.Join(lines[:maxLines], "\n")
	return head + "\n" + truncationMarker, nil
}

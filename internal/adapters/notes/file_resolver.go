package notes

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

var (
	ErrPathOutsideVault = errors.New("note path escapes the vault")
)

var _ domain.NoteResolver = (*FileResolver)(nil)

// FileResolver reads notes from a vault directory on disk. Note paths are
// vault-relative and use forward slashes.
type FileResolver struct {
	root string
}

func NewFileResolver(root string) *FileResolver {
	return &FileResolver{root: root}
}

func (r *FileResolver) Root() string {
	return r.root
}

func (r *FileResolver) localPath(notePath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(notePath))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutsideVault, notePath)
	}
	return filepath.Join(r.root, clean), nil
}

// ResolveNote reads the note at notePath. A missing file is not an error.
// A note whose frontmatter cannot be parsed still exists, without
// properties.
func (r *FileResolver) ResolveNote(ctx context.Context, notePath string) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	local, err := r.localPath(notePath)
	if err != nil {
		return domain.Note{}, err
	}

	content, err := os.ReadFile(local)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Note{Path: notePath}, nil
		}
		return domain.Note{}, fmt.Errorf("read note %s: %w", notePath, err)
	}

	props, err := ParseFrontmatter(content)
	if err != nil {
		log.Printf("[NOTES] Ignoring frontmatter of %s: %v", notePath, err)
		props = map[string]any{}
	}

	return domain.Note{
		Path:       notePath,
		Exists:     true,
		Properties: props,
	}, nil
}

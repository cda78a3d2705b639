package notes

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
)

var _ domain.NoteResolver = (*MemoryResolver)(nil)

type MemoryResolver struct {
	notes map[string]map[string]any

	mu sync.RWMutex
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		notes: make(map[string]map[string]any),
	}
}

func (r *MemoryResolver) Put(path string, properties map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make(map[string]any, len(properties))
	for k, v := range properties {
		copied[k] = v
	}
	r.notes[path] = copied
}

func (r *MemoryResolver) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.notes, path)
}

func (r *MemoryResolver) ResolveNote(ctx context.Context, path string) (domain.Note, error) {
	if err := ctx.Err(); err != nil {
		return domain.Note{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	props, ok := r.notes[path]
	if !ok {
		return domain.Note{Path: path}, nil
	}

	copied := make(map[string]any, len(props))
	for k, v := range props {
		copied[k] = v
	}
	return domain.Note{Path: path, Exists: true, Properties: copied}, nil
}

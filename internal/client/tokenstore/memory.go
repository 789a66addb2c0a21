package tokenstore

import (
	"context"
	"sync"
)

// MemoryRepository holds the credential in process memory only. Used by
// tests and by sessions that should not outlive the process.
type MemoryRepository struct {
	mu         sync.Mutex
	credential string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Save(ctx context.Context, credential string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credential = credential
	return nil
}

func (r *MemoryRepository) Load(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.credential, nil
}

func (r *MemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credential = ""
	return nil
}

package otpcodes

import (
	"context"
	"sync"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/server/models"
)

// MemoryRepository is an in-memory Repository used in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*models.OtpCode // keyed by contact
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*models.OtpCode)}
}

func (r *MemoryRepository) Replace(ctx context.Context, code *models.OtpCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *code
	r.records[code.Contact] = &cp
	return nil
}

func (r *MemoryRepository) FindByContact(ctx context.Context, contact string) (*models.OtpCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[contact]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *rec
	return &out, nil
}

func (r *MemoryRepository) DeleteByContact(ctx context.Context, contact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, contact)
	return nil
}

package identities

import (
	"context"
	"sync"
	"time"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/server/models"
)

// MemoryStore is an in-memory Store used in tests and local runs without a
// database. Uniqueness on email/phone is enforced the same way the SQL
// schema does.
type MemoryStore struct {
	mu      sync.RWMutex
	role    models.Role
	records map[string]*models.Identity // keyed by record ID
}

func NewMemoryStore(role models.Role) *MemoryStore {
	return &MemoryStore{role: role, records: make(map[string]*models.Identity)}
}

func (s *MemoryStore) Create(ctx context.Context, identity *models.Identity) (*models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.Email == identity.Email || (identity.Phone != "" && rec.Phone == identity.Phone) {
			return nil, common.ErrorInternal
		}
	}

	cp := *identity
	cp.Role = s.role
	cp.CreatedAt = time.Now()
	s.records[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *MemoryStore) FindByContact(ctx context.Context, contact string) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.MatchesContact(contact) {
			out := *rec
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Email == email {
			out := *rec
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *MemoryStore) ExistsByContact(ctx context.Context, contact string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.MatchesContact(contact) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) SetVerified(ctx context.Context, email string, verified bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.Email == email {
			rec.Verified = verified
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) SetPassword(ctx context.Context, email string, passwordHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.Email == email {
			rec.PasswordHash = passwordHash
			return true, nil
		}
	}
	return false, nil
}

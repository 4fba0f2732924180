package transfer

import (
	"context"
	"strings"
	"sync"
	"time"

	"transfer-storefront/internal/common/models"
)

// MemoryRepository serves the same queries as Repository from a map.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Transfer
	now   func() time.Time
}

func NewMemoryRepo(seed ...models.Transfer) *MemoryRepository {
	r := &MemoryRepository{items: map[string]models.Transfer{}, now: time.Now}
	for _, t := range seed {
		r.items[t.ID] = t
	}
	return r
}

func (r *MemoryRepository) Create(_ context.Context, trx *models.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	if trx.CreatedAt.IsZero() {
		trx.CreatedAt = now
	}
	trx.UpdatedAt = now
	r.items[trx.ID] = *trx
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) FindByTrackingCode(_ context.Context, code string) (*models.Transfer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.items {
		if t.TrackingCode == code {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Update(_ context.Context, trx *models.Transfer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[trx.ID]; !ok {
		return ErrNotFound
	}
	trx.UpdatedAt = r.now().UTC()
	r.items[trx.ID] = *trx
	return nil
}

func (r *MemoryRepository) ApplyOutcome(_ context.Context, trx *models.Transfer) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[trx.ID]
	if !ok {
		return false, ErrNotFound
	}
	if cur.Status.IsTerminal() {
		return false, nil
	}
	cur.Status = trx.Status
	cur.ProviderReference = trx.ProviderReference
	cur.FailureReason = trx.FailureReason
	cur.Timeline = trx.Timeline
	cur.PaidAt = trx.PaidAt
	cur.UpdatedAt = r.now().UTC()
	r.items[trx.ID] = cur
	return true, nil
}

func (r *MemoryRepository) SetReceiptKey(_ context.Context, id, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	cur.ReceiptKey = key
	r.items[id] = cur
	return nil
}

func (r *MemoryRepository) List(_ context.Context, q Query) ([]models.Transfer, int64, error) {
	r.mu.RLock()
	all := make([]models.Transfer, 0, len(r.items))
	for _, t := range r.items {
		all = append(all, t)
	}
	r.mu.RUnlock()

	items, total := ApplyQuery(all, q)
	return items, total, nil
}

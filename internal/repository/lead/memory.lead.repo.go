package lead

import (
	"context"
	"sync"

	"transfer-storefront/internal/common/models"
)

type MemoryRepository struct {
	mu    sync.Mutex
	leads []models.EmailLead
}

func NewMemoryRepo() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, lead *models.EmailLead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead.ID = uint(len(r.leads) + 1)
	r.leads = append(r.leads, *lead)
	return nil
}

func (r *MemoryRepository) All() []models.EmailLead {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.EmailLead, len(r.leads))
	copy(out, r.leads)
	return out
}

package stock

import (
	"encoding/json"
	"fmt"

	"transfer-storefront/internal/pkg/redis"
	"transfer-storefront/internal/pkg/stock"
)

type IRepository interface {
	// Get returns the stored state and whether one existed.
	Get(product, variant string) (stock.State, bool, error)
	Save(product, variant string, s stock.State) error
}

type Repository struct {
	rds redis.IRedis
}

func NewRepo(rds redis.IRedis) IRepository {
	return &Repository{rds: rds}
}

func Key(product, variant string) string {
	return fmt.Sprintf("stock:%s:%s", product, variant)
}

func (r *Repository) Get(product, variant string) (stock.State, bool, error) {
	raw, err := r.rds.Get(Key(product, variant))
	if err != nil {
		return stock.State{}, false, err
	}
	if raw == "" {
		return stock.State{}, false, nil
	}
	var s stock.State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return stock.State{}, false, fmt.Errorf("decode %s: %w", Key(product, variant), err)
	}
	return s, true, nil
}

// Save has no expiry; the state must outlive restarts.
func (r *Repository) Save(product, variant string, s stock.State) error {
	return r.rds.Set(Key(product, variant), s, 0)
}

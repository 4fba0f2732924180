package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transfer-storefront/internal/common/models"
	"transfer-storefront/internal/pkg/redis"
)

var ErrNotFound = errors.New("wizard session not found or expired")

// TTL is refreshed on every save.
const TTL = time.Hour

type IRepository interface {
	Get(id string) (*models.WizardSession, error)
	Save(w *models.WizardSession) error
	Delete(id string) error
}

type Repository struct {
	rds redis.IRedis
}

func NewRepo(rds redis.IRedis) IRepository {
	return &Repository{rds: rds}
}

func key(id string) string {
	return "wizard:" + id
}

func (r *Repository) Get(id string) (*models.WizardSession, error) {
	raw, err := r.rds.Get(key(id))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, ErrNotFound
	}
	var w models.WizardSession
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return nil, fmt.Errorf("decode wizard %s: %w", id, err)
	}
	return &w, nil
}

func (r *Repository) Save(w *models.WizardSession) error {
	return r.rds.Set(key(w.ID), w, TTL)
}

func (r *Repository) Delete(id string) error {
	return r.rds.Del(key(id))
}

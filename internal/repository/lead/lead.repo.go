package lead

import (
	"context"

	"transfer-storefront/internal/common/models"
	database "transfer-storefront/internal/pkg/db"
)

type IRepository interface {
	Create(ctx context.Context, lead *models.EmailLead) error
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, lead *models.EmailLead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

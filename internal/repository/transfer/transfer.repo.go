package transfer

import (
	"context"
	"errors"
	"strings"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	database "transfer-storefront/internal/pkg/db"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("transfer not found")

var terminalStatuses = []enum.TransferStatusEnum{
	enum.TransferCompleted,
	enum.TransferFailed,
	enum.TransferCancelled,
}

type IRepository interface {
	Create(ctx context.Context, trx *models.Transfer) error
	FindByID(ctx context.Context, id string) (*models.Transfer, error)
	FindByTrackingCode(ctx context.Context, code string) (*models.Transfer, error)
	Update(ctx context.Context, trx *models.Transfer) error
	// ApplyOutcome stores a terminal status unless one is already stored.
	// It reports whether trx was written.
	ApplyOutcome(ctx context.Context, trx *models.Transfer) (bool, error)
	SetReceiptKey(ctx context.Context, id, key string) error
	List(ctx context.Context, q Query) ([]models.Transfer, int64, error)
}

type Repository struct {
	db *database.Database
}

func NewRepo(db *database.Database) IRepository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, trx *models.Transfer) error {
	return r.db.WithContext(ctx).Create(trx).Error
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*models.Transfer, error) {
	var trx models.Transfer
	err := r.db.WithContext(ctx).Where(query, arg).First(&trx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Transfer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) FindByTrackingCode(ctx context.Context, code string) (*models.Transfer, error) {
	return r.first(ctx, "tracking_code = ?", strings.ToUpper(strings.TrimSpace(code)))
}

func (r *Repository) Update(ctx context.Context, trx *models.Transfer) error {
	return r.db.WithContext(ctx).Save(trx).Error
}

func (r *Repository) ApplyOutcome(ctx context.Context, trx *models.Transfer) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Transfer{}).
		Where("id = ? AND status NOT IN ?", trx.ID, terminalStatuses).
		Updates(map[string]any{
			"status":             trx.Status,
			"provider_reference": trx.ProviderReference,
			"failure_reason":     trx.FailureReason,
			"timeline":           trx.Timeline,
			"paid_at":            trx.PaidAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *Repository) SetReceiptKey(ctx context.Context, id, key string) error {
	return r.db.WithContext(ctx).Model(&models.Transfer{}).Where("id = ?", id).Update("receipt_key", key).Error
}

func (r *Repository) List(ctx context.Context, q Query) ([]models.Transfer, int64, error) {
	q = q.Normalize()

	tx := r.db.WithContext(ctx).Model(&models.Transfer{})
	if q.SenderEmail != "" {
		tx = tx.Where("LOWER(sender_email) = ?", strings.ToLower(q.SenderEmail))
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	for _, term := range q.searchTerms() {
		like := "%" + term + "%"
		tx = tx.Where(
			"LOWER(receiver_first_name) LIKE ? OR LOWER(receiver_last_name) LIKE ? OR LOWER(tracking_code) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Transfer
	err := tx.
		Order(q.SortBy + " " + q.Direction).
		Order("id " + q.Direction).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

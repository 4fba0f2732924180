package transfer

import (
	"slices"
	"strings"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	database "transfer-storefront/internal/pkg/db"

	"github.com/samber/lo"
)

const (
	SortCreatedAt = "created_at"
	SortAmount    = "amount"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Query filters, sorts and pages transfer history. SenderEmail scopes the
// result to one account and is set by the service, never by the client.
type Query struct {
	Status      enum.TransferStatusEnum `form:"status" json:"status" validate:"omitempty,enum"`
	Search      string                  `form:"search" json:"search"`
	SortBy      string                  `form:"sort_by" json:"sort_by" validate:"omitempty,oneof=created_at amount"`
	Direction   string                  `form:"direction" json:"direction" validate:"omitempty,oneof=asc desc"`
	Page        int                     `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize    int                     `form:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
	SenderEmail string                  `form:"-" json:"-"`
}

func (q Query) Normalize() Query {
	if q.SortBy != SortAmount {
		q.SortBy = SortCreatedAt
	}
	q.Direction = database.ParseDirection(q.Direction, database.DESC).ToString()
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// searchTerms splits the search on whitespace; every term must match the
// receiver first name, last name or tracking code.
func (q Query) searchTerms() []string {
	return strings.Fields(strings.ToLower(q.Search))
}

func matches(t models.Transfer, q Query) bool {
	if q.SenderEmail != "" && !strings.EqualFold(t.SenderEmail, q.SenderEmail) {
		return false
	}
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	fields := []string{
		strings.ToLower(t.ReceiverFirstName),
		strings.ToLower(t.ReceiverLastName),
		strings.ToLower(t.TrackingCode),
	}
	return lo.EveryBy(q.searchTerms(), func(term string) bool {
		return lo.SomeBy(fields, func(f string) bool { return strings.Contains(f, term) })
	})
}

// ApplyQuery runs q over items in memory with the same semantics as the
// database repository: filter, stable sort with id as tie breaker, page.
func ApplyQuery(items []models.Transfer, q Query) ([]models.Transfer, int64) {
	q = q.Normalize()
	filtered := lo.Filter(items, func(t models.Transfer, _ int) bool { return matches(t, q) })

	desc := q.Direction == database.DESC.ToString()
	slices.SortStableFunc(filtered, func(a, b models.Transfer) int {
		var c int
		if q.SortBy == SortAmount {
			c = a.Amount.Cmp(b.Amount)
		} else {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		if desc {
			return -c
		}
		return c
	})

	total := int64(len(filtered))
	return lo.Subset(filtered, q.Offset(), uint(q.PageSize)), total
}

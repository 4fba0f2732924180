package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNoTier          = errors.New("no price tier covers the quantity")
	ErrInvalidTable    = errors.New("invalid price tier table")
)

// Tier is a quantity band. Max 0 means the band has no upper bound.
type Tier struct {
	Min      int             `json:"min"`
	Max      int             `json:"max"`
	Price    decimal.Decimal `json:"price"`
	Discount int             `json:"discount"`
}

func (t Tier) Contains(qty int) bool {
	return qty >= t.Min && (t.Max == 0 || qty <= t.Max)
}

type Table struct {
	tiers []Tier
}

// NewTable checks that bands are ordered, do not overlap and have positive
// prices. Only the last band may be unbounded.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers", ErrInvalidTable)
	}
	for i, t := range tiers {
		if t.Min < 1 {
			return nil, fmt.Errorf("%w: tier %d min %d < 1", ErrInvalidTable, i, t.Min)
		}
		if t.Max != 0 && t.Max < t.Min {
			return nil, fmt.Errorf("%w: tier %d max %d < min %d", ErrInvalidTable, i, t.Max, t.Min)
		}
		if !t.Price.IsPositive() {
			return nil, fmt.Errorf("%w: tier %d price must be positive", ErrInvalidTable, i)
		}
		if t.Discount < 0 || t.Discount >= 100 {
			return nil, fmt.Errorf("%w: tier %d discount %d out of range", ErrInvalidTable, i, t.Discount)
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if prev.Max == 0 {
			return nil, fmt.Errorf("%w: tier %d follows an unbounded tier", ErrInvalidTable, i)
		}
		if t.Min <= prev.Max {
			return nil, fmt.Errorf("%w: tier %d overlaps tier %d", ErrInvalidTable, i, i-1)
		}
	}
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return &Table{tiers: out}, nil
}

// MustTable panics on an invalid table. Used for the static catalog.
func MustTable(tiers ...Tier) *Table {
	t, err := NewTable(tiers)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

// BasePrice is the single-unit price of the first band.
func (t *Table) BasePrice() decimal.Decimal {
	return t.tiers[0].Price
}

// TierFor returns the first band containing qty.
func (t *Table) TierFor(qty int) (Tier, error) {
	if qty < 1 {
		return Tier{}, ErrInvalidQuantity
	}
	for _, tier := range t.tiers {
		if tier.Contains(qty) {
			return tier, nil
		}
	}
	return Tier{}, fmt.Errorf("%w: %d", ErrNoTier, qty)
}

type Quote struct {
	Quantity  int             `json:"quantity"`
	Tier      Tier            `json:"tier"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Savings   decimal.Decimal `json:"savings"`
}

func (t *Table) Quote(qty int) (Quote, error) {
	tier, err := t.TierFor(qty)
	if err != nil {
		return Quote{}, err
	}
	q := decimal.NewFromInt(int64(qty))
	total := q.Mul(tier.Price).Round(2)
	return Quote{
		Quantity:  qty,
		Tier:      tier,
		UnitPrice: tier.Price,
		Total:     total,
		Savings:   q.Mul(t.BasePrice()).Round(2).Sub(total),
	}, nil
}

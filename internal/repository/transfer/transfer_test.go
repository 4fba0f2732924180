package transfer

import (
	"context"
	"strings"
	"testing"
	"time"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestApplyQuery_StatusFilter(t *testing.T) {
	items, total := ApplyQuery(Seed(seedNow), Query{Status: enum.TransferCompleted, PageSize: 100})
	require.NotEmpty(t, items)
	assert.EqualValues(t, len(items), total)
	for _, it := range items {
		assert.Equal(t, enum.TransferCompleted, it.Status)
	}
}

func TestApplyQuery_AmountDescNonIncreasing(t *testing.T) {
	items, _ := ApplyQuery(Seed(seedNow), Query{SortBy: SortAmount, Direction: "desc", PageSize: 100})
	require.Len(t, items, len(seedRows))
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Amount.GreaterThan(items[i-1].Amount), "index %d", i)
	}
}

func TestApplyQuery_DefaultIsNewestFirst(t *testing.T) {
	items, _ := ApplyQuery(Seed(seedNow), Query{})
	require.Len(t, items, DefaultPageSize)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].CreatedAt.After(items[i-1].CreatedAt))
	}
}

func TestApplyQuery_SearchAndPaging(t *testing.T) {
	seed := Seed(seedNow)

	items, total := ApplyQuery(seed, Query{Search: "marie jos"})
	require.EqualValues(t, 1, total)
	assert.Equal(t, "Marie", items[0].ReceiverFirstName)

	items, total = ApplyQuery(seed, Query{Search: strings.ToLower(seed[3].TrackingCode)})
	require.EqualValues(t, 1, total)
	assert.Equal(t, seed[3].ID, items[0].ID)

	page1, total := ApplyQuery(seed, Query{PageSize: 5, Page: 1})
	page3, _ := ApplyQuery(seed, Query{PageSize: 5, Page: 3})
	assert.EqualValues(t, len(seedRows), total)
	assert.Len(t, page1, 5)
	assert.Len(t, page3, len(seedRows)-10)

	empty, _ := ApplyQuery(seed, Query{PageSize: 5, Page: 9})
	assert.Empty(t, empty)
}

func TestMemoryRepository_ApplyOutcomeFirstWins(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	trx := &models.Transfer{ID: "t1", TrackingCode: "TRK1", Status: enum.TransferPending}
	require.NoError(t, repo.Create(ctx, trx))

	done := *trx
	done.Status = enum.TransferCompleted
	applied, err := repo.ApplyOutcome(ctx, &done)
	require.NoError(t, err)
	assert.True(t, applied)

	failed := *trx
	failed.Status = enum.TransferFailed
	applied, err = repo.ApplyOutcome(ctx, &failed)
	require.NoError(t, err)
	assert.False(t, applied)

	got, err := repo.FindByTrackingCode(ctx, " trk1 ")
	require.NoError(t, err)
	assert.Equal(t, enum.TransferCompleted, got.Status)
}

func TestSeed_Timelines(t *testing.T) {
	for _, trx := range Seed(seedNow) {
		h := trx.History()
		require.NotEmpty(t, h)
		assert.Equal(t, enum.TransferPending, h[0].Status)
		assert.Equal(t, trx.Status, h[len(h)-1].Status)
	}
}

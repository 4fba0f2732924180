package wizard

import (
	"context"
	"testing"

	"transfer-storefront/internal/common/enum"
	"transfer-storefront/internal/common/models"
	"transfer-storefront/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	rds, err := redis.Setup(context.Background(), &redis.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	repo := NewRepo(rds)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	w := &models.WizardSession{ID: "w1", Step: enum.StepRecipient, Amount: "25.00"}
	w.Receiver.FirstName = "Marie"
	require.NoError(t, repo.Save(w))
	assert.Equal(t, TTL, mr.TTL("wizard:w1"))

	got, err := repo.Get("w1")
	require.NoError(t, err)
	assert.Equal(t, enum.StepRecipient, got.Step)
	assert.Equal(t, "Marie", got.Receiver.FirstName)

	mr.FastForward(TTL + 1)
	_, err = repo.Get("w1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(w))
	require.NoError(t, repo.Delete("w1"))
	_, err = repo.Get("w1")
	assert.ErrorIs(t, err, ErrNotFound)
}

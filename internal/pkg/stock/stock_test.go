package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = Config{Window: 120 * time.Minute, Cooldown: 30 * time.Minute, RefillPercent: 60}

func TestValue_NonIncreasingWhileActive(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(37, start)

	prev := cfg.Value(s, start)
	assert.Equal(t, 37, prev)
	for m := 1; m <= 120; m++ {
		v := cfg.Value(s, start.Add(time.Duration(m)*time.Minute))
		assert.LessOrEqual(t, v, prev, "minute %d", m)
		assert.GreaterOrEqual(t, v, 0)
		prev = v
	}
	assert.Equal(t, 0, prev)
}

func TestValue_Formula(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(10, start)
	// 10 * (1 - 30/120) = 7.5 -> 8
	assert.Equal(t, 8, cfg.Value(s, start.Add(30*time.Minute)))
	// 10 * (1 - 119/120) = 0.083 -> 1
	assert.Equal(t, 1, cfg.Value(s, start.Add(119*time.Minute)))
}

func TestCurrent_CooldownThenRefill(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewState(25, start)

	snap, next, changed := cfg.Current(s, start.Add(130*time.Minute))
	assert.False(t, changed)
	assert.Equal(t, 0, snap.Value)
	assert.Equal(t, PhaseCooldown, snap.Phase)
	assert.Equal(t, start.Add(150*time.Minute), snap.NextRefillAt)

	snap, next, changed = cfg.Current(next, start.Add(150*time.Minute))
	require.True(t, changed)
	// ceil(25 * 60 / 100) = 15
	assert.Equal(t, 15, snap.Value)
	assert.Equal(t, 15, next.Level)
	assert.Equal(t, PhaseActive, snap.Phase)
	assert.Equal(t, start.Add(150*time.Minute), next.CycleStart)
}

func TestAdvance_SkipsSeveralCycles(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := NewState(10, start)
	next, changed := cfg.Advance(s, start.Add(7*time.Hour+10*time.Minute))
	require.True(t, changed)
	// cycles are 150 minutes; two full cycles fit in 430 minutes
	assert.Equal(t, start.Add(300*time.Minute), next.CycleStart)
	assert.Equal(t, 6, next.Level)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, cfg.Validate())
	assert.ErrorIs(t, Config{Window: 0, RefillPercent: 50}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Window: time.Minute, RefillPercent: 0}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, Config{Window: time.Minute, Cooldown: -1, RefillPercent: 10}.Validate(), ErrInvalidConfig)
}

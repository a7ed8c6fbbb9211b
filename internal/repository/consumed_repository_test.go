package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festwine/tasting-gate/internal/clock"
)

func TestMemoryConsumedStoreFirstWins(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	s := NewMemoryConsumedStore(clk)

	first, err := s.MarkConsumed(context.Background(), "tkt_1", 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := s.MarkConsumed(context.Background(), "tkt_1", 30*time.Minute)
	require.NoError(t, err)
	assert.False(t, again)
}

func TestMemoryConsumedStoreEntriesLapse(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	s := NewMemoryConsumedStore(clk)

	_, err := s.MarkConsumed(context.Background(), "tkt_1", 30*time.Minute)
	require.NoError(t, err)

	// Once the ticket could no longer validate anyway, the mark is
	// free to go; the id will never be presented validly again.
	clk.Advance(30*time.Minute + time.Millisecond)
	first, err := s.MarkConsumed(context.Background(), "tkt_1", 30*time.Minute)
	require.NoError(t, err)
	assert.True(t, first)
}

func TestMemoryConsumedStoreConcurrentMarks(t *testing.T) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	s := NewMemoryConsumedStore(clk)

	const goroutines = 32
	var wins int32
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			first, err := s.MarkConsumed(context.Background(), "tkt_contested", 30*time.Minute)
			assert.NoError(t, err)
			if first {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

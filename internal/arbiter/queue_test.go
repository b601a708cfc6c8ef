package arbiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	in := []core.Command{core.CommandLeft, core.CommandTick, core.CommandRotate, core.CommandDown}
	for _, c := range in {
		require.True(t, q.Push(c))
	}
	assert.Equal(t, len(in), q.Len())

	for _, want := range in {
		got, err := q.Pop(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Zero(t, q.Len())
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue()
	got := make(chan core.Command, 1)
	go func() {
		c, err := q.Pop(context.Background())
		if err == nil {
			got <- c
		}
	}()

	select {
	case <-got:
		t.Fatal("Pop returned before anything was pushed")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(core.CommandRight)
	select {
	case c := <-got:
		assert.Equal(t, core.CommandRight, c)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake up after Push")
	}
}

func TestQueuePopHonoursContext(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := q.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	q.Push(core.CommandDown)
	q.Close()
	q.Close()

	assert.False(t, q.Push(core.CommandLeft))
	assert.Zero(t, q.Len())
	_, err := q.Pop(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers, each = 8, 100

	done := make(chan struct{})
	for i := 0; i < producers; i++ {
		go func() {
			for j := 0; j < each; j++ {
				q.Push(core.CommandDown)
			}
			done <- struct{}{}
		}()
	}

	received := 0
	for received < producers*each {
		_, err := q.Pop(context.Background())
		require.NoError(t, err)
		received++
	}
	for i := 0; i < producers; i++ {
		<-done
	}
	assert.Zero(t, q.Len())
}

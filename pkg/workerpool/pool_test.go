package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Submit(t *testing.T) {
	p := New(&Config{MaxWorkers: 2, QueueSize: 4}, nil)
	defer p.Shutdown(context.Background())

	var n int32
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Submit(context.Background(), func(ctx context.Context) error {
			atomic.AddInt32(&n, 1)
			return nil
		}))
	}
	assert.Equal(t, int32(10), atomic.LoadInt32(&n))
	assert.Equal(t, int64(10), p.GetMetrics().Completed)
}

func TestPool_ErrorsAndPanics(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)
	defer p.Shutdown(context.Background())

	boom := errors.New("boom")
	assert.Equal(t, boom, p.Submit(context.Background(), func(context.Context) error { return boom }))
	assert.Error(t, p.Submit(context.Background(), func(context.Context) error { panic("x") }))
	assert.Equal(t, int64(2), p.GetMetrics().Failed)
}

func TestPool_SubmitAsyncAndShutdown(t *testing.T) {
	p := New(&Config{MaxWorkers: 1, QueueSize: 1}, nil)

	release := make(chan struct{})
	first, err := p.SubmitAsync(context.Background(), func(context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	// wait for the worker to pick up the first job so the queue slot frees
	assert.Eventually(t, func() bool { return p.GetMetrics().ActiveCount == 1 }, time.Second, time.Millisecond)

	_, err = p.SubmitAsync(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)
	_, err = p.SubmitAsync(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolFull)

	close(release)
	assert.NoError(t, <-first)
	require.NoError(t, p.Shutdown(context.Background()))

	_, err = p.SubmitAsync(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerPoolClosed)
	assert.True(t, p.GetMetrics().IsClosed)
}

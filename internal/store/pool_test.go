package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeConn struct{ id int64 }

func TestPool_ConcurrentFirstCallsShareOneConnect(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})
	pool := NewPool("test", func(ctx context.Context) (*fakeConn, error) {
		n := calls.Add(1)
		<-release
		return &fakeConn{id: n}, nil
	}, nil, testLogger)

	const callers = 32
	var wg sync.WaitGroup
	got := make([]*fakeConn, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = pool.Get(context.Background())
		}(i)
	}
	// let the callers pile up on the in-flight attempt
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, got[0], got[i])
	}

	again, err := pool.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, got[0], again)
	assert.Equal(t, int64(1), calls.Load())
}

func TestPool_FailedConnectIsRetried(t *testing.T) {
	var calls atomic.Int64
	pool := NewPool("test", func(ctx context.Context) (*fakeConn, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("connection refused")
		}
		return &fakeConn{id: 2}, nil
	}, nil, testLogger)

	_, err := pool.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	conn, err := pool.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), conn.id)
	require.NoError(t, pool.Ping(context.Background()))
}

func TestPool_CallerCancellationDoesNotPoisonAttempt(t *testing.T) {
	release := make(chan struct{})
	pool := NewPool("test", func(ctx context.Context) (*fakeConn, error) {
		<-release
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &fakeConn{id: 1}, nil
	}, nil, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := pool.Get(ctx)
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-done, context.Canceled)

	close(release)
	conn, err := pool.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), conn.id)
}

func TestPool_Close(t *testing.T) {
	var closed []*fakeConn
	pool := NewPool("test", func(ctx context.Context) (*fakeConn, error) {
		return &fakeConn{id: 7}, nil
	}, func(ctx context.Context, c *fakeConn) error {
		closed = append(closed, c)
		return nil
	}, testLogger)

	// closing before first use has nothing to release
	unused := NewPool("unused", func(ctx context.Context) (*fakeConn, error) {
		t.Fatal("connect must not be called")
		return nil, nil
	}, nil, testLogger)
	require.NoError(t, unused.Close(context.Background()))

	conn, err := pool.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, pool.Close(context.Background()))
	require.NoError(t, pool.Close(context.Background()))
	assert.Equal(t, []*fakeConn{conn}, closed)

	_, err = pool.Get(context.Background())
	require.ErrorIs(t, err, ErrClosed)
}

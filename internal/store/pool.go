// Package store holds the process-wide connection cache shared by repositories.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ErrClosed is returned by Get after Close.
var ErrClosed = errors.New("store: pool closed")

// Connector opens a new connection.
type Connector[T any] func(ctx context.Context) (T, error)

// Closer releases a connection opened by a Connector.
type Closer[T any] func(ctx context.Context, conn T) error

// Pool lazily opens one shared connection and hands it to every caller. Concurrent
// first calls share a single connect attempt. A failed attempt is not cached.
type Pool[T any] struct {
	name    string
	connect Connector[T]
	close   Closer[T]
	logger  *slog.Logger

	group singleflight.Group

	mu     sync.RWMutex
	conn   T
	ready  bool
	closed bool
}

// NewPool returns a Pool named name (used in logs) that opens connections with
// connect and releases them with closeFn. closeFn may be nil.
func NewPool[T any](name string, connect Connector[T], closeFn Closer[T], logger *slog.Logger) *Pool[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool[T]{
		name:    name,
		connect: connect,
		close:   closeFn,
		logger:  logger,
	}
}

// Get returns the shared connection, opening it on first use.
func (p *Pool[T]) Get(ctx context.Context) (T, error) {
	p.mu.RLock()
	conn, ready, closed := p.conn, p.ready, p.closed
	p.mu.RUnlock()
	if closed {
		var zero T
		return zero, ErrClosed
	}
	if ready {
		return conn, nil
	}

	ch := p.group.DoChan(p.name, func() (any, error) {
		return p.open(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (p *Pool[T]) open(ctx context.Context) (T, error) {
	p.mu.RLock()
	conn, ready, closed := p.conn, p.ready, p.closed
	p.mu.RUnlock()
	if closed {
		return conn, ErrClosed
	}
	if ready {
		return conn, nil
	}

	conn, err := p.connect(ctx)
	if err != nil {
		p.logger.Error("connection failed", "store", p.name, "err", err)
		var zero T
		return zero, fmt.Errorf("connect %s: %w", p.name, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		if p.close != nil {
			_ = p.close(ctx, conn)
		}
		var zero T
		return zero, ErrClosed
	}
	p.conn, p.ready = conn, true
	p.logger.Info("connected", "store", p.name)
	return conn, nil
}

// Ping reports whether a connection can be obtained.
func (p *Pool[T]) Ping(ctx context.Context) error {
	_, err := p.Get(ctx)
	return err
}

// Close releases the shared connection, if one was opened. Later calls to Get fail.
func (p *Pool[T]) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if !p.ready || p.close == nil {
		return nil
	}
	p.ready = false
	return p.close(ctx, p.conn)
}

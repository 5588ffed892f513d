package models

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"go.viam.com/markerviz/logging"
	"go.viam.com/markerviz/utils"
)

// Registry lazily loads meshes and caches them by key. Concurrent loads of the same key share a
// single fetch. Failed loads are not cached, so a later Load retries.
type Registry struct {
	fetcher Fetcher
	logger  logging.Logger

	group   singleflight.Group
	workers utils.StoppableWorkers

	mu     sync.RWMutex
	meshes map[Key]*Mesh
}

// NewRegistry returns an empty Registry backed by fetcher.
func NewRegistry(fetcher Fetcher, logger logging.Logger) *Registry {
	return &Registry{
		fetcher: fetcher,
		logger:  logger,
		workers: utils.NewStoppableWorkers(),
		meshes:  make(map[Key]*Mesh),
	}
}

// Get returns the mesh for key if it has already been loaded. A miss is the normal state while a
// load is pending or after a failed load.
func (r *Registry) Get(key Key) (*Mesh, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mesh, ok := r.meshes[key]
	return mesh, ok
}

// Load returns the mesh for key, fetching and decoding it on first use. If ctx is cancelled Load
// returns early, but a fetch already in flight keeps running for the other waiters.
func (r *Registry) Load(ctx context.Context, key Key) (*Mesh, error) {
	if mesh, ok := r.Get(key); ok {
		return mesh, nil
	}
	if !key.Valid() {
		return nil, errors.Errorf("unknown model key %d", int(key))
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key.String(), func() (interface{}, error) {
		if mesh, ok := r.Get(key); ok {
			return mesh, nil
		}
		r.logger.Debugw("loading model", "model", key)
		data, err := r.fetcher.Fetch(fetchCtx, key)
		if err != nil {
			return nil, err
		}
		mesh, err := decodeMesh(key, data)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.meshes[key] = mesh
		r.mu.Unlock()
		return mesh, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		mesh, ok := res.Val.(*Mesh)
		if !ok {
			return nil, utils.NewUnexpectedTypeError(mesh, res.Val)
		}
		return mesh, nil
	}
}

// LoadAll loads every key in parallel and returns the first error.
func (r *Registry) LoadAll(ctx context.Context, keys ...Key) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			_, err := r.Load(ctx, key)
			return err
		})
	}
	return g.Wait()
}

// Prefetch starts loading keys in the background without waiting. Failures are logged; the
// corresponding instances stay unrendered until a later Load succeeds.
func (r *Registry) Prefetch(keys ...Key) {
	for _, key := range keys {
		key := key
		r.workers.AddWorkers(func(ctx context.Context) {
			if _, err := r.Load(ctx, key); err != nil && ctx.Err() == nil {
				r.logger.Warnw("failed to load model", "model", key, "error", err)
			}
		})
	}
}

// Close stops any background prefetches and waits for them to exit.
func (r *Registry) Close() {
	r.workers.Stop()
}

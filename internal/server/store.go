// Package server exposes the explorer as an HTTP dashboard with a JSON API.
package server

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/shrutipatidar/Google-Play-Store-App-Review-Sentiment-Analysis/internal/review"
)

// Loader produces a fresh dataset snapshot.
type Loader func(ctx context.Context) (*review.Dataset, error)

// Store holds the current immutable dataset. Requests read one snapshot and
// never observe a partial reload.
type Store struct {
	load Loader
	cur  atomic.Pointer[review.Dataset]
}

// NewStore loads the first snapshot; failure here is fatal to the caller.
func NewStore(ctx context.Context, load Loader) (*Store, error) {
	if load == nil {
		return nil, errors.New("server: nil loader")
	}
	s := &Store{load: load}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// StaticStore wraps an already loaded dataset; Reload keeps it.
func StaticStore(ds *review.Dataset) *Store {
	s := &Store{load: func(context.Context) (*review.Dataset, error) { return ds, nil }}
	s.cur.Store(ds)
	return s
}

// Current returns the snapshot to use for one request.
func (s *Store) Current() *review.Dataset { return s.cur.Load() }

// Reload replaces the snapshot. On error the previous one is kept.
func (s *Store) Reload(ctx context.Context) error {
	ds, err := s.load(ctx)
	if err != nil {
		return err
	}
	s.cur.Store(ds)
	return nil
}

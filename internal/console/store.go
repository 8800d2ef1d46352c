package console

import (
	"context"
	"sync/atomic"

	"github.com/IgorGrieder/encurtador-console/internal/links"
)

// Snapshot is one fetched link set. It is never modified after publication.
type Snapshot struct {
	Links  []links.Link
	Loaded bool
}

// Store holds the last fetched link set. Every refresh replaces the set as a
// whole; links are never patched locally.
type Store struct {
	api  LinksAPI
	snap atomic.Pointer[Snapshot]
}

func NewStore(api LinksAPI) *Store {
	s := &Store{api: api}
	s.snap.Store(&Snapshot{})
	return s
}

func (s *Store) Snapshot() Snapshot {
	return *s.snap.Load()
}

// Refresh fetches the full list. On failure the previous links stay in place
// and the store is still marked loaded.
func (s *Store) Refresh(ctx context.Context) error {
	fetched, err := s.api.List(ctx)
	if err != nil {
		for {
			prev := s.snap.Load()
			if prev.Loaded {
				break
			}
			if s.snap.CompareAndSwap(prev, &Snapshot{Links: prev.Links, Loaded: true}) {
				break
			}
		}
		return err
	}

	if fetched == nil {
		fetched = []links.Link{}
	}
	s.snap.Store(&Snapshot{Links: fetched, Loaded: true})
	return nil
}

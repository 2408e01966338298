// Package session keeps browser sessions, and the order drafts held in
// them, in the application's key-value backend.
package session

import (
	"context"
	"time"

	"foodcost/internal/kv"
)

const keyPrefix = "session:"

type record struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

// Store implements scs.Store and scs.CtxStore over a kv.Backend.
type Store struct {
	backend kv.Backend
	now     func() time.Time
}

// NewStore returns a session store persisting through backend.
func NewStore(backend kv.Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

func (s *Store) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	var rec record
	found, err := s.backend.Get(ctx, keyPrefix+token, &rec)
	if err != nil || !found {
		return nil, false, err
	}
	if !rec.Expiry.After(s.now()) {
		return nil, false, s.backend.Remove(ctx, keyPrefix+token)
	}
	return rec.Data, true, nil
}

func (s *Store) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	return s.backend.Set(ctx, keyPrefix+token, record{Data: b, Expiry: expiry.UTC()})
}

func (s *Store) DeleteCtx(ctx context.Context, token string) error {
	return s.backend.Remove(ctx, keyPrefix+token)
}

func (s *Store) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *Store) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *Store) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

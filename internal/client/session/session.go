// Package session holds the signed-in user for the lifetime of the CLI.
//
// The value is whatever the auth endpoint answered as "user", kept verbatim.
// Subscribers are notified synchronously on every change.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
)

// User is the opaque user object returned by the auth endpoint.
type User = json.RawMessage

// Persister optionally keeps the user across CLI restarts.
type Persister interface {
	Load(ctx context.Context) (User, bool, error)
	Save(ctx context.Context, u User) error
	Clear(ctx context.Context) error
}

type subscriber struct {
	id int
	fn func(User, bool)
}

type Store struct {
	mu     sync.RWMutex
	user   User
	set    bool
	p      Persister
	subs   []subscriber
	nextID int
}

// NewStore returns an empty store. p may be nil for a memory-only store.
func NewStore(p Persister) *Store {
	return &Store{p: p}
}

func (s *Store) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set {
		return nil, false
	}
	return append(User(nil), s.user...), true
}

// SetUser replaces the current user. A persister failure is returned but the
// in-memory value is already set.
func (s *Store) SetUser(ctx context.Context, u User) error {
	stored := append(User(nil), u...)

	s.mu.Lock()
	s.user = stored
	s.set = true
	subs := s.snapshot()
	s.mu.Unlock()

	notify(subs, append(User(nil), stored...), true)

	if s.p != nil {
		return s.p.Save(ctx, append(User(nil), stored...))
	}
	return nil
}

// Clear empties the store (logout).
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	wasSet := s.set
	s.user, s.set = nil, false
	subs := s.snapshot()
	s.mu.Unlock()

	if wasSet {
		notify(subs, nil, false)
	}

	if s.p != nil {
		return s.p.Clear(ctx)
	}
	return nil
}

// Restore loads a previously saved user, if any.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	if s.p == nil {
		return false, nil
	}
	u, ok, err := s.p.Load(ctx)
	if err != nil || !ok {
		return false, err
	}

	stored := append(User(nil), u...)

	s.mu.Lock()
	s.user, s.set = stored, true
	subs := s.snapshot()
	s.mu.Unlock()

	notify(subs, append(User(nil), stored...), true)
	return true, nil
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (s *Store) Subscribe(fn func(User, bool)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// UserID extracts a numeric "id" member from the stored user.
func (s *Store) UserID() (int64, bool) {
	u, ok := s.User()
	if !ok {
		return 0, false
	}
	var v struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(u, &v); err != nil || len(v.ID) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(string(v.ID), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// snapshot must be called with mu held.
func (s *Store) snapshot() []subscriber {
	return append([]subscriber(nil), s.subs...)
}

func notify(subs []subscriber, u User, ok bool) {
	for _, sub := range subs {
		sub.fn(u, ok)
	}
}

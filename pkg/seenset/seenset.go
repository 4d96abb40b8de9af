// Package seenset implements the client-side read-state tracker for the
// notification feed. A Set is a bounded, insertion-ordered record of
// notification keys the client has already shown; it exists to compute the
// unread badge and nothing else. The server never reads or validates it, and
// losing it (e.g. cleared browser storage) simply resets everything to
// unread.
package seenset

import "encoding/json"

// DefaultCapacity bounds the set; the oldest key is evicted first once full.
const DefaultCapacity = 500

type Set struct {
	capacity int
	order    []string
	index    map[string]struct{}
}

func New() *Set {
	return NewWithCapacity(DefaultCapacity)
}

func NewWithCapacity(capacity int) *Set {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Set{
		capacity: capacity,
		index:    make(map[string]struct{}),
	}
}

// MarkSeen records a key. Re-marking an already seen key keeps its original
// position. Inserting past capacity evicts the oldest entry.
func (s *Set) MarkSeen(key string) {
	if key == "" {
		return
	}
	if _, ok := s.index[key]; ok {
		return
	}
	if len(s.order) == s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.index, oldest)
	}
	s.order = append(s.order, key)
	s.index[key] = struct{}{}
}

func (s *Set) Seen(key string) bool {
	_, ok := s.index[key]
	return ok
}

func (s *Set) Len() int {
	return len(s.order)
}

// UnreadCount returns how many of the given keys have not been seen yet:
// the badge count for one feed response.
func (s *Set) UnreadCount(keys []string) int {
	unread := 0
	for _, key := range keys {
		if !s.Seen(key) {
			unread++
		}
	}
	return unread
}

// MarshalJSON stores the keys oldest-first, the shape persisted to the
// client's local storage.
func (s *Set) MarshalJSON() ([]byte, error) {
	keys := s.order
	if keys == nil {
		keys = []string{}
	}
	return json.Marshal(keys)
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if s.capacity == 0 {
		s.capacity = DefaultCapacity
	}
	s.order = nil
	s.index = make(map[string]struct{}, len(keys))
	for _, key := range keys {
		s.MarkSeen(key)
	}
	return nil
}

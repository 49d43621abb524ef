// Package dedupe tracks match keys that must not be recommended again.
package dedupe

import "sync"

// Set records keys in insertion order.
type Set interface {
	// SeenAndRecord checks if key was seen and records it if not.
	// Returns true if key was already present, false if it was newly recorded.
	SeenAndRecord(key string) bool

	// Unrecord removes a key so it becomes eligible again.
	Unrecord(key string)

	Contains(key string) bool

	// Keys returns the recorded keys, oldest first.
	Keys() []string

	// Reset forgets every key.
	Reset()

	Size() int
}

// node is an entry of the insertion-ordered list.
type node struct {
	key        string
	prev, next *node
}

// inMemorySet implements Set with a map plus a doubly linked list.
// When maxSize > 0 the oldest key is evicted to make room for a new one.
type inMemorySet struct {
	mu      sync.RWMutex
	seen    map[string]*node
	head    *node // oldest
	tail    *node // newest
	maxSize int   // 0 or negative = unbounded
}

// NewInMemorySet creates an empty set.
func NewInMemorySet(opts ...Option) Set {
	s := &inMemorySet{}
	for _, opt := range opts {
		opt(s)
	}
	s.seen = make(map[string]*node)
	return s
}

func (s *inMemorySet) SeenAndRecord(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[key]; exists {
		return true
	}
	if s.maxSize > 0 && len(s.seen) >= s.maxSize {
		s.unlink(s.head)
	}
	n := &node{key: key, prev: s.tail}
	if s.tail != nil {
		s.tail.next = n
	} else {
		s.head = n
	}
	s.tail = n
	s.seen[key] = n
	return false
}

func (s *inMemorySet) Unrecord(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.seen[key]; ok {
		s.unlink(n)
	}
}

// unlink removes n from the list and the map. Must be called with s.mu held.
func (s *inMemorySet) unlink(n *node) {
	if n == nil {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
	delete(s.seen, n.key)
}

func (s *inMemorySet) Contains(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.seen[key]
	return ok
}

func (s *inMemorySet) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.seen))
	for n := s.head; n != nil; n = n.next {
		out = append(out, n.key)
	}
	return out
}

func (s *inMemorySet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]*node)
	s.head, s.tail = nil, nil
}

func (s *inMemorySet) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seen)
}

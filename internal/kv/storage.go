// Package kv implements an ordered key/value store used to back query strings.
package kv

import "strings"

// Pair is a single entry of the Storage. Null marks a key that is present without a value.
type Pair struct {
	Key   string
	Value string
	Null  bool
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which is efficient for the small number of entries a query string
// usually holds. Keys are unique and compared case-insensitively; the casing of the first
// insertion is kept.
type Storage struct {
	pairs []Pair
}

// New returns an empty Storage.
func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Add adds the value under the key. If the key already exists, the value is appended to the
// existing one separated by a comma.
func (s *Storage) Add(key, value string) *Storage {
	idx := s.indexOf(key)
	if idx < 0 {
		s.pairs = append(s.pairs, Pair{Key: key, Value: value})

		return s
	}

	pair := &s.pairs[idx]
	if pair.Null {
		pair.Value = value
		pair.Null = false
	} else {
		pair.Value += "," + value
	}

	return s
}

// AddNull registers the key without a value. It is a no-op if the key already exists.
func (s *Storage) AddNull(key string) *Storage {
	if s.indexOf(key) >= 0 {
		return s
	}

	s.pairs = append(s.pairs, Pair{Key: key, Null: true})

	return s
}

// Set replaces the value of the key, keeping its position, or adds a new pair.
func (s *Storage) Set(key, value string) *Storage {
	idx := s.indexOf(key)
	if idx < 0 {
		s.pairs = append(s.pairs, Pair{Key: key, Value: value})

		return s
	}

	s.pairs[idx].Value = value
	s.pairs[idx].Null = false

	return s
}

// Get returns the pair stored under the key and a bool indicating whether it was found.
func (s *Storage) Get(key string) (Pair, bool) {
	idx := s.indexOf(key)
	if idx < 0 {
		return Pair{}, false
	}

	return s.pairs[idx], true
}

// Has indicates whether there's an entry for the key.
func (s *Storage) Has(key string) bool {
	return s.indexOf(key) >= 0
}

// Keys returns the keys in insertion order.
func (s *Storage) Keys() []string {
	keys := make([]string, len(s.pairs))
	for i, pair := range s.pairs {
		keys[i] = pair.Key
	}

	return keys
}

// Pairs returns a copy of the stored pairs in insertion order.
func (s *Storage) Pairs() []Pair {
	pairs := make([]Pair, len(s.pairs))
	copy(pairs, s.pairs)

	return pairs
}

// Len returns the number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

func (s *Storage) indexOf(key string) int {
	for i, pair := range s.pairs {
		if strings.EqualFold(pair.Key, key) {
			return i
		}
	}

	return -1
}

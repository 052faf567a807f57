package nearmatch

import (
	"cmp"
	"fmt"
	"sort"
)

// Table is a dynamically growing, always-sorted array of unique fixed-arity
// composite keys, each paired with one payload. Keys are ordered
// lexicographically with field 0 most significant. Entries are never
// removed.
//
// K is the key field type and P the payload type. Inserts shift higher
// entries up one slot, so cost is linear in table size; the table is meant
// for key cardinalities far below the record count it aggregates.
type Table[K cmp.Ordered, P any] struct {
	arity    int
	maxSize  int
	keys     [][]K
	payloads []P
}

// NewTable returns an empty table for composite keys of the given arity.
// maxSize caps the number of unique entries; 0 means unlimited. Exceeding
// the cap is a configuration error surfaced by Insert.
func NewTable[K cmp.Ordered, P any](arity, maxSize int) (*Table[K, P], error) {
	if arity < 1 {
		return nil, fmt.Errorf("nearmatch: Table arity must be >= 1, got %d", arity)
	}
	if maxSize < 0 {
		return nil, fmt.Errorf("nearmatch: Table maxSize must be >= 0, got %d", maxSize)
	}
	return &Table[K, P]{arity: arity, maxSize: maxSize}, nil
}

// Len returns the number of entries.
func (t *Table[K, P]) Len() int { return len(t.keys) }

// Arity returns the number of fields per key.
func (t *Table[K, P]) Arity() int { return t.arity }

// Key returns the key at position i. Callers must not mutate it.
func (t *Table[K, P]) Key(i int) []K { return t.keys[i] }

// Payload returns a pointer to the payload at position i, so accumulating
// callers can update it in place.
func (t *Table[K, P]) Payload(i int) *P { return &t.payloads[i] }

// Locate returns the upper-bound position for key: the number of entries
// lexicographically <= key. An exact match, if present, sits at position
// Locate(key)-1; a new key belongs at position Locate(key).
// Panics if key does not have exactly Arity fields.
func (t *Table[K, P]) Locate(key []K) int {
	t.checkArity(key)
	return sort.Search(len(t.keys), func(i int) bool {
		return compareKeys(t.keys[i], key) > 0
	})
}

// IsMatch reports whether the entry just below the Locate result equals key
// exactly. pos follows the Locate convention: the entry inspected is
// pos-1. Panics if key does not have exactly Arity fields.
func (t *Table[K, P]) IsMatch(pos int, key []K) bool {
	t.checkArity(key)
	return pos > 0 && pos <= len(t.keys) && compareKeys(t.keys[pos-1], key) == 0
}

func (t *Table[K, P]) checkArity(key []K) {
	if len(key) != t.arity {
		panic(fmt.Sprintf("nearmatch: key has %d fields, want %d", len(key), t.arity))
	}
}

// Insert places key and payload at position pos, shifting entries at or
// above pos up one slot. pos must come from Locate for a key not already
// present, or the sort invariant breaks. The key fields are copied.
func (t *Table[K, P]) Insert(pos int, key []K, payload P) error {
	if len(key) != t.arity {
		return fmt.Errorf("nearmatch: key has %d fields, want %d", len(key), t.arity)
	}
	if t.maxSize > 0 && len(t.keys) >= t.maxSize {
		return fmt.Errorf("nearmatch: too many unique key combinations (limit %d)", t.maxSize)
	}

	k := make([]K, t.arity)
	copy(k, key)

	t.keys = append(t.keys, nil)
	copy(t.keys[pos+1:], t.keys[pos:])
	t.keys[pos] = k

	var zero P
	t.payloads = append(t.payloads, zero)
	copy(t.payloads[pos+1:], t.payloads[pos:])
	t.payloads[pos] = payload

	return nil
}

// FindOrInsert returns the position of key, inserting a zero-payload entry
// if the key is new. The second return reports whether an insert happened.
func (t *Table[K, P]) FindOrInsert(key []K) (pos int, inserted bool, err error) {
	if len(key) != t.arity {
		return 0, false, fmt.Errorf("nearmatch: key has %d fields, want %d", len(key), t.arity)
	}
	ub := t.Locate(key)
	if t.IsMatch(ub, key) {
		return ub - 1, false, nil
	}
	var zero P
	if err := t.Insert(ub, key, zero); err != nil {
		return 0, false, err
	}
	return ub, true, nil
}

// compareKeys orders composite keys lexicographically; the first differing
// field decides.
func compareKeys[K cmp.Ordered](a, b []K) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Package intervaldict provides a dictionary whose keys are intervals over a
// totally ordered type. Stored intervals never overlap, so a point maps to at
// most one entry. Lookups, insertions and removals take O(log n).
//
// A Dictionary is not safe for concurrent use; callers sharing one must
// synchronize access, see package rangetable for a guarded table.
package intervaldict

import (
	"io"
	"iter"

	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/tree"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

type Dictionary[B, V any] struct {
	compare interval.CompareFunc[B]
	tree    *tree.Tree[B, V]
}

// New returns an empty dictionary ordering bounds with compare.
func New[B, V any](compare interval.CompareFunc[B]) *Dictionary[B, V] {
	return &Dictionary[B, V]{
		compare: compare,
		tree:    tree.NewTree[B, V](),
	}
}

// NewOrdered returns an empty dictionary using the natural ordering of B.
func NewOrdered[B constraints.Ordered, V any]() *Dictionary[B, V] {
	return New[B, V](interval.OrderedCompare[B]())
}

// Clone returns a copy of the dictionary; values are not deep copied.
func (r *Dictionary[B, V]) Clone() *Dictionary[B, V] {
	return &Dictionary[B, V]{
		compare: r.compare,
		tree:    r.tree.Clone(),
	}
}

// Add stores v under iv. It fails with ErrNullArgument for a zero interval
// and with ErrOverlapConflict when iv intersects an existing entry.
func (r *Dictionary[B, V]) Add(iv interval.Interval[B], v V) error {
	if iv.IsZero() {
		return errors.Wrap(ErrNullArgument, "interval")
	}
	return r.tree.Insert(iv, v)
}

// AddRange stores v under the closed interval [lower,upper].
func (r *Dictionary[B, V]) AddRange(lower, upper B, v V) error {
	if isNil(lower) {
		return errors.Wrap(ErrNullArgument, "lower")
	}
	if isNil(upper) {
		return errors.Wrap(ErrNullArgument, "upper")
	}
	iv, err := interval.ClosedFunc(r.compare, lower, upper)
	if err != nil {
		return err
	}
	return r.Add(iv, v)
}

// Get returns the value stored under exactly iv.
func (r *Dictionary[B, V]) Get(iv interval.Interval[B]) (V, error) {
	var v V
	if iv.IsZero() {
		return v, errors.Wrap(ErrNullArgument, "interval")
	}
	v, ok := r.tree.Get(iv)
	if !ok {
		return v, errors.Wrapf(ErrNotFound, "interval %s", iv)
	}
	return v, nil
}

// GetKey returns the value of the entry whose interval contains key.
func (r *Dictionary[B, V]) GetKey(key B) (V, error) {
	var v V
	if isNil(key) {
		return v, errors.Wrap(ErrNullArgument, "key")
	}
	_, v, ok := r.tree.Lookup(key)
	if !ok {
		return v, errors.Wrapf(ErrNotFound, "key %v", key)
	}
	return v, nil
}

// Lookup returns the entry whose interval contains key.
func (r *Dictionary[B, V]) Lookup(key B) (Entry[B, V], bool) {
	if isNil(key) {
		return nil, false
	}
	iv, v, ok := r.tree.Lookup(key)
	if !ok {
		return nil, false
	}
	return NewEntry(iv, v), true
}

// Set replaces the value stored under exactly iv, or adds a new entry when
// iv is not stored. Adding still fails with ErrOverlapConflict when iv
// intersects another entry.
func (r *Dictionary[B, V]) Set(iv interval.Interval[B], v V) error {
	if iv.IsZero() {
		return errors.Wrap(ErrNullArgument, "interval")
	}
	if r.tree.Has(iv) {
		return r.tree.SetValue(iv, v)
	}
	return r.tree.Insert(iv, v)
}

// SetKey replaces the value of the entry whose interval contains key.
func (r *Dictionary[B, V]) SetKey(key B, v V) error {
	if isNil(key) {
		return errors.Wrap(ErrNullArgument, "key")
	}
	return r.tree.SetKeyValue(key, v)
}

// ContainsInterval reports whether exactly iv is stored.
func (r *Dictionary[B, V]) ContainsInterval(iv interval.Interval[B]) bool {
	return r.tree.Has(iv)
}

// ContainsKey reports whether a stored interval contains key.
func (r *Dictionary[B, V]) ContainsKey(key B) bool {
	if isNil(key) {
		return false
	}
	return r.tree.HasKey(key)
}

// Remove deletes the entry stored under exactly iv and reports whether
// there was one.
func (r *Dictionary[B, V]) Remove(iv interval.Interval[B]) (bool, error) {
	if iv.IsZero() {
		return false, errors.Wrap(ErrNullArgument, "interval")
	}
	return r.tree.Delete(iv), nil
}

// RemoveKey deletes the entry whose interval contains key and reports
// whether there was one.
func (r *Dictionary[B, V]) RemoveKey(key B) (bool, error) {
	if isNil(key) {
		return false, errors.Wrap(ErrNullArgument, "key")
	}
	return r.tree.DeleteKey(key), nil
}

// TryGet returns the value stored under exactly iv; ok is false when there
// is none or iv is zero.
func (r *Dictionary[B, V]) TryGet(iv interval.Interval[B]) (v V, ok bool) {
	return r.tree.Get(iv)
}

// TryGetKey returns the value of the entry whose interval contains key.
func (r *Dictionary[B, V]) TryGetKey(key B) (v V, ok bool) {
	if isNil(key) {
		return v, false
	}
	_, v, ok = r.tree.Lookup(key)
	return v, ok
}

// Clear removes all entries.
func (r *Dictionary[B, V]) Clear() { r.tree.Clear() }

// Count returns the number of entries.
func (r *Dictionary[B, V]) Count() int { return r.tree.Len() }

// All returns an iterator over all entries in ascending interval order.
func (r *Dictionary[B, V]) All() iter.Seq2[interval.Interval[B], V] { return r.tree.All() }

// Iterate returns a stateful iterator over all entries in ascending
// interval order.
func (r *Dictionary[B, V]) Iterate() *tree.Iterator[B, V] { return r.tree.Iterate() }

// Intervals returns the stored intervals in ascending order.
func (r *Dictionary[B, V]) Intervals() []interval.Interval[B] { return r.tree.Intervals() }

// Values returns the stored values in ascending interval order.
func (r *Dictionary[B, V]) Values() []V { return r.tree.Values() }

// Entries returns all entries in ascending interval order.
func (r *Dictionary[B, V]) Entries() Entries[B, V] {
	entries := make(Entries[B, V], 0, r.Count())
	for iv, v := range r.tree.All() {
		entries = append(entries, NewEntry(iv, v))
	}
	return entries
}

// Overlapping returns the entries whose intervals intersect iv in
// ascending order.
func (r *Dictionary[B, V]) Overlapping(iv interval.Interval[B]) Entries[B, V] {
	entries := Entries[B, V]{}
	for eiv, v := range r.tree.Overlapping(iv) {
		entries = append(entries, NewEntry(eiv, v))
	}
	return entries
}

// Min returns the entry with the lowest interval.
func (r *Dictionary[B, V]) Min() (Entry[B, V], bool) {
	iv, v, ok := r.tree.Min()
	if !ok {
		return nil, false
	}
	return NewEntry(iv, v), true
}

// Max returns the entry with the highest interval.
func (r *Dictionary[B, V]) Max() (Entry[B, V], bool) {
	iv, v, ok := r.tree.Max()
	if !ok {
		return nil, false
	}
	return NewEntry(iv, v), true
}

// FirstFree returns the lowest key inside within that no entry contains.
// next steps to the following key of a discrete domain.
func (r *Dictionary[B, V]) FirstFree(within interval.Interval[B], next func(B) B) (B, bool) {
	var zero B
	if within.IsZero() {
		return zero, false
	}

	candidate := within.Lower().Value()
	if !within.Lower().IsInclusive() {
		candidate = next(candidate)
	}
	for iv := range r.tree.All() {
		c := iv.CompareKey(candidate)
		if c < 0 {
			// gap before this entry
			break
		}
		if c > 0 {
			continue
		}
		candidate = iv.Upper().Value()
		if iv.Upper().IsInclusive() {
			candidate = next(candidate)
		}
	}
	if !within.Contains(candidate) {
		return zero, false
	}
	return candidate, true
}

// Validate checks the invariants of the underlying tree.
func (r *Dictionary[B, V]) Validate() error { return r.tree.Validate() }

// Dump writes the shape of the underlying tree to w.
func (r *Dictionary[B, V]) Dump(w io.Writer) { r.tree.Dump(w) }

func isNil[B any](key B) bool {
	return any(key) == nil
}

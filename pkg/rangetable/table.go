// Package rangetable stores label sets under non-overlapping intervals and
// guards them with a read/write mutex so a table can be shared between
// goroutines.
package rangetable

import (
	"errors"
	"fmt"
	"sync"

	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/intervaldict"
	perrors "github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"k8s.io/apimachinery/pkg/labels"
)

type Table[B any] interface {
	Get(key B) (Entry[B], error)
	GetRange(iv interval.Interval[B]) (Entry[B], error)
	Claim(iv interval.Interval[B], labels labels.Set) error
	ClaimRange(from, to B, labels labels.Set) error
	Update(iv interval.Interval[B], labels labels.Set) error
	Release(iv interval.Interval[B]) error
	ReleaseKey(key B) error
	ReleaseRange(iv interval.Interval[B]) error
	ReleaseByLabel(selector labels.Selector) error

	Iterate() *Iterator[B]

	Count() int
	Has(key B) bool
	IsFree(key B) bool
	FindFree(within interval.Interval[B]) (B, error)

	GetAll() Entries[B]
	GetByLabel(selector labels.Selector) Entries[B]
}

// ValidationFn is called before an interval is claimed, updated or released.
type ValidationFn[B any] func(iv interval.Interval[B]) error

// Domain describes a discrete ordered type: Next and Prev return the
// neighbouring values of v.
type Domain[B any] struct {
	Compare interval.CompareFunc[B]
	Next    func(v B) B
	Prev    func(v B) B
}

// IntegerDomain returns the domain of an integer type.
func IntegerDomain[B constraints.Integer]() Domain[B] {
	return Domain[B]{
		Compare: interval.OrderedCompare[B](),
		Next:    func(v B) B { return v + 1 },
		Prev:    func(v B) B { return v - 1 },
	}
}

// New returns a table over the given domain. Intervals are stored closed,
// so [10,20) is claimed as [10,19]. The init entries are claimed without
// running the validation function.
func New[B any](d Domain[B], initEntries Entries[B], v ValidationFn[B]) (Table[B], error) {
	r := &table[B]{
		m:          new(sync.RWMutex),
		dict:       intervaldict.New[B, labels.Set](d.Compare),
		domain:     d,
		validateFn: v,
	}

	var errm error
	for _, e := range initEntries {
		if err := r.add(e.Interval(), e.Labels(), true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type table[B any] struct {
	m          *sync.RWMutex
	dict       *intervaldict.Dictionary[B, labels.Set]
	domain     Domain[B]
	validateFn ValidationFn[B]
}

// normalize returns iv as a closed interval after validating it.
func (r *table[B]) normalize(iv interval.Interval[B], init bool) (interval.Interval[B], error) {
	if iv.IsZero() {
		return iv, perrors.Wrap(intervaldict.ErrNullArgument, "interval")
	}
	iv, err := iv.Canonical(r.domain.Prev, r.domain.Next)
	if err != nil {
		return iv, err
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(iv); err != nil {
			return iv, err
		}
	}
	return iv, nil
}

func (r *table[B]) Get(key B) (Entry[B], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.dict.Lookup(key)
	if !ok {
		return nil, perrors.Wrapf(intervaldict.ErrNotFound, "no match found for: %v", key)
	}
	return NewEntry(e.Interval(), e.Value()), nil
}

func (r *table[B]) GetRange(iv interval.Interval[B]) (Entry[B], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	iv, err := r.normalize(iv, true)
	if err != nil {
		return nil, err
	}
	d, err := r.dict.Get(iv)
	if err != nil {
		return nil, err
	}
	return NewEntry(iv, d), nil
}

func (r *table[B]) Claim(iv interval.Interval[B], labels labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(iv, labels, false)
}

func (r *table[B]) ClaimRange(from, to B, labels labels.Set) error {
	iv, err := interval.ClosedFunc(r.domain.Compare, from, to)
	if err != nil {
		return err
	}
	return r.Claim(iv, labels)
}

func (r *table[B]) Update(iv interval.Interval[B], labels labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.update(iv, labels)
}

func (r *table[B]) Release(iv interval.Interval[B]) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(iv)
}

func (r *table[B]) ReleaseKey(key B) error {
	r.m.Lock()
	defer r.m.Unlock()

	e, ok := r.dict.Lookup(key)
	if !ok {
		return nil
	}
	return r.delete(e.Interval())
}

// ReleaseRange frees every value inside iv. Entries partially covered by iv
// are trimmed and keep their labels.
func (r *table[B]) ReleaseRange(iv interval.Interval[B]) error {
	r.m.Lock()
	defer r.m.Unlock()

	iv, err := r.normalize(iv, false)
	if err != nil {
		return err
	}
	for _, e := range r.dict.Overlapping(iv) {
		if _, err := r.dict.Remove(e.Interval()); err != nil {
			return err
		}
		for _, rest := range e.Interval().Subtract(iv) {
			c, err := rest.Canonical(r.domain.Prev, r.domain.Next)
			if err != nil {
				// nothing left on this side
				continue
			}
			if err := r.dict.Add(c, e.Value()); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReleaseByLabel frees every entry matching selector. Nothing is released
// when any of the matches fails validation.
func (r *table[B]) ReleaseByLabel(selector labels.Selector) error {
	r.m.Lock()
	defer r.m.Unlock()

	entries := r.getByLabel(selector)
	for _, e := range entries {
		if _, err := r.normalize(e.Interval(), false); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := r.delete(e.Interval()); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[B]) Iterate() *Iterator[B] {
	r.m.RLock()
	defer r.m.RUnlock()

	return &Iterator[B]{iter: r.dict.Iterate()}
}

func (r *table[B]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.dict.Count()
}

func (r *table[B]) Has(key B) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.dict.ContainsKey(key)
}

func (r *table[B]) IsFree(key B) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return !r.dict.ContainsKey(key)
}

// FindFree returns the lowest value inside within that no entry covers.
func (r *table[B]) FindFree(within interval.Interval[B]) (B, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	var zero B
	if within.IsZero() {
		return zero, perrors.Wrap(intervaldict.ErrNullArgument, "interval")
	}
	v, ok := r.dict.FirstFree(within, r.domain.Next)
	if !ok {
		return zero, fmt.Errorf("no free entry found in %s", within)
	}
	return v, nil
}

func (r *table[B]) GetAll() Entries[B] {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(Entries[B], 0, r.dict.Count())
	for iv, d := range r.dict.All() {
		entries = append(entries, NewEntry(iv, d))
	}
	return entries
}

func (r *table[B]) GetByLabel(selector labels.Selector) Entries[B] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.getByLabel(selector)
}

func (r *table[B]) getByLabel(selector labels.Selector) Entries[B] {
	entries := Entries[B]{}
	for iv, d := range r.dict.All() {
		if selector.Matches(d) {
			entries = append(entries, NewEntry(iv, d))
		}
	}
	return entries
}

func (r *table[B]) add(iv interval.Interval[B], d labels.Set, init bool) error {
	iv, err := r.normalize(iv, init)
	if err != nil {
		return err
	}
	if err := r.dict.Add(iv, d); err != nil {
		return perrors.Wrapf(err, "claim %s failed", iv)
	}
	return nil
}

func (r *table[B]) update(iv interval.Interval[B], d labels.Set) error {
	iv, err := r.normalize(iv, false)
	if err != nil {
		return err
	}
	if !r.dict.ContainsInterval(iv) {
		return perrors.Wrapf(intervaldict.ErrNotFound, "entry %s not found", iv)
	}
	return r.dict.Set(iv, d)
}

func (r *table[B]) delete(iv interval.Interval[B]) error {
	iv, err := r.normalize(iv, false)
	if err != nil {
		return err
	}
	if _, err := r.dict.Remove(iv); err != nil {
		return err
	}
	return nil
}

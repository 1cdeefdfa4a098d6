package vxlantable

import (
	"fmt"

	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/rangetable"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	MinVNI int64 = 1
	MaxVNI int64 = 1<<24 - 1
)

type VXLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimRange(s string, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	Release(id int64) error
	Update(id int64, d labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)

	GetAll() rangetable.Entries[int64]
	GetByLabel(selector labels.Selector) rangetable.Entries[int64]
}

// New returns a table handing out VNIs from offset up to and including max.
func New(offset, max int64) (VXLANTable, error) {
	if offset < MinVNI || max > MaxVNI {
		return nil, fmt.Errorf("vni range %d-%d does not fit in %d-%d", offset, max, MinVNI, MaxVNI)
	}
	within, err := interval.Closed(offset, max)
	if err != nil {
		return nil, err
	}

	t, err := rangetable.New(
		rangetable.IntegerDomain[int64](),
		nil,
		func(iv interval.Interval[int64]) error {
			if !iv.IsSubsetOf(within) {
				return fmt.Errorf("vni range %s does not fit in %s", iv, within)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &vxlanTable{
		table:  t,
		within: within,
	}, nil
}

type vxlanTable struct {
	table  rangetable.Table[int64]
	within interval.Interval[int64]
}

func (r *vxlanTable) Get(id int64) (labels.Set, error) {
	e, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}
	return e.Labels(), nil
}

func (r *vxlanTable) Claim(id int64, d labels.Set) error {
	if !r.table.IsFree(id) {
		return fmt.Errorf("id %d is already claimed", id)
	}
	return r.table.Claim(interval.Point(id), d)
}

func (r *vxlanTable) ClaimRange(s string, d labels.Set) error {
	iv, err := interval.ParseInt(s)
	if err != nil {
		return err
	}
	return r.table.Claim(iv, d)
}

func (r *vxlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	id, err := r.FindFree()
	if err != nil {
		return -1, err
	}
	if err := r.table.Claim(interval.Point(id), d); err != nil {
		return -1, err
	}
	return id, nil
}

func (r *vxlanTable) Release(id int64) error {
	return r.table.ReleaseRange(interval.Point(id))
}

func (r *vxlanTable) Update(id int64, d labels.Set) error {
	e, err := r.table.Get(id)
	if err != nil {
		return fmt.Errorf("id %d is not claimed", id)
	}
	return r.table.Update(e.Interval(), d)
}

func (r *vxlanTable) Count() int {
	return r.table.Count()
}

func (r *vxlanTable) Has(id int64) bool {
	return r.table.Has(id)
}

func (r *vxlanTable) IsFree(id int64) bool {
	return r.table.IsFree(id)
}

func (r *vxlanTable) FindFree() (int64, error) {
	return r.table.FindFree(r.within)
}

func (r *vxlanTable) GetAll() rangetable.Entries[int64] {
	return r.table.GetAll()
}

func (r *vxlanTable) GetByLabel(selector labels.Selector) rangetable.Entries[int64] {
	return r.table.GetByLabel(selector)
}

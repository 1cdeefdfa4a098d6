package vlantable

import (
	"fmt"

	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/rangetable"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	minVLAN int64 = 0
	maxVLAN int64 = 4095
)

type VLANTable interface {
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

var initEntries = rangetable.Entries[int64]{
	rangetable.NewEntry(interval.Point[int64](0), map[string]string{"type": "untagged", "status": "reserved"}),
	rangetable.NewEntry(interval.Point[int64](1), map[string]string{"type": "default", "status": "reserved"}),
	rangetable.NewEntry(interval.Point(maxVLAN), map[string]string{"type": "reserved", "status": "reserved"}),
}

func New() (VLANTable, error) {
	t, err := rangetable.New(
		rangetable.IntegerDomain[int64](),
		initEntries,
		validate,
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{
		table:  t,
		within: interval.MustParseInt(fmt.Sprintf("[%d,%d]", minVLAN, maxVLAN)),
	}, nil
}

func validate(iv interval.Interval[int64]) error {
	if iv.Lower().Value() < minVLAN || iv.Upper().Value() > maxVLAN {
		return fmt.Errorf("VLAN range %s does not fit in [%d,%d]", iv, minVLAN, maxVLAN)
	}
	switch {
	case iv.Contains(0):
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", 0)
	case iv.Contains(1):
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", 1)
	case iv.Contains(maxVLAN):
		return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", maxVLAN)
	}
	return nil
}

type vlanTable struct {
	table  rangetable.Table[int64]
	within interval.Interval[int64]
}

func (r *vlanTable) Get(id int64) (labels.Set, error) {
	e, err := r.table.Get(id)
	if err != nil {
		return nil, err
	}
	return e.Labels(), nil
}

func (r *vlanTable) Claim(id int64, d labels.Set) error {
	if !r.table.IsFree(id) {
		return fmt.Errorf("id %d is already claimed", id)
	}
	return r.table.Claim(interval.Point(id), d)
}

// ClaimRange claims a range given as "100-200" or in bracket notation.
func (r *vlanTable) ClaimRange(s string, d labels.Set) error {
	iv, err := interval.ParseInt(s)
	if err != nil {
		return err
	}
	return r.table.Claim(iv, d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (int64, error) {
	id, err := r.FindFree()
	if err != nil {
		return -1, err
	}
	if err := r.table.Claim(interval.Point(id), d); err != nil {
		return -1, err
	}
	return id, nil
}

// Release frees a single id; a range claimed around it keeps the remaining
// ids.
func (r *vlanTable) Release(id int64) error {
	return r.table.ReleaseRange(interval.Point(id))
}

func (r *vlanTable) Update(id int64, d labels.Set) error {
	e, err := r.table.Get(id)
	if err != nil {
		return fmt.Errorf("id %d is not claimed", id)
	}
	return r.table.Update(e.Interval(), d)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(id int64) bool {
	return r.table.Has(id)
}

func (r *vlanTable) IsFree(id int64) bool {
	return r.table.IsFree(id)
}

func (r *vlanTable) FindFree() (int64, error) {
	id, err := r.table.FindFree(r.within)
	if err != nil {
		return -1, err
	}
	return id, nil
}

func (r *vlanTable) GetAll() rangetable.Entries[int64] {
	return r.table.GetAll()
}

func (r *vlanTable) GetByLabel(selector labels.Selector) rangetable.Entries[int64] {
	return r.table.GetByLabel(selector)
}


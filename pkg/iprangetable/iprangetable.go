// Package iprangetable maps ranges of IP addresses to routes. Claimed ranges
// never overlap and must fit in the address range the table was created for.
package iprangetable

import (
	"fmt"
	"net/netip"
	"strings"
	"sync"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/intervaldict"
	"github.com/pkg/errors"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type IPRangeTable interface {
	Get(addr string) (table.Route, error)
	Claim(s string, d table.Route) error
	ClaimPrefix(prefix netip.Prefix, d table.Route) error
	Release(addr string) error
	Update(s string, d table.Route) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)

	GetAll() table.Routes
	GetByLabel(selector labels.Selector) table.Routes
}

func New(from, to netip.Addr) (IPRangeTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from, to)
	}
	return &ipRangeTable{
		m:       new(sync.RWMutex),
		dict:    intervaldict.New[netip.Addr, table.Route](netip.Addr.Compare),
		ipRange: ipRange,
	}, nil
}

type ipRangeTable struct {
	m       *sync.RWMutex
	dict    *intervaldict.Dictionary[netip.Addr, table.Route]
	ipRange netipx.IPRange
}

func (r *ipRangeTable) Get(addr string) (table.Route, error) {
	ip, err := r.validateIP(addr)
	if err != nil {
		return table.Route{}, err
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return r.dict.GetKey(ip)
}

// Claim claims a single address, a range "10.0.0.1-10.0.0.9" or a prefix
// "10.0.0.0/28".
func (r *ipRangeTable) Claim(s string, d table.Route) error {
	ipRange, err := r.validateRange(s)
	if err != nil {
		return err
	}
	return r.claim(ipRange, d)
}

func (r *ipRangeTable) ClaimPrefix(prefix netip.Prefix, d table.Route) error {
	if !prefix.IsValid() {
		return fmt.Errorf("prefix %s is invalid", prefix)
	}
	ipRange := netipx.RangeOfPrefix(prefix.Masked())
	if err := r.fits(ipRange); err != nil {
		return err
	}
	return r.claim(ipRange, d)
}

func (r *ipRangeTable) claim(ipRange netipx.IPRange, d table.Route) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.dict.Add(toInterval(ipRange), d); err != nil {
		return errors.Wrapf(err, "claim failed ip range %s", ipRange)
	}
	return nil
}

// Release frees addr; the rest of a range claimed around it stays claimed.
func (r *ipRangeTable) Release(addr string) error {
	ip, err := r.validateIP(addr)
	if err != nil {
		return err
	}

	r.m.Lock()
	defer r.m.Unlock()

	e, ok := r.dict.Lookup(ip)
	if !ok {
		return nil
	}
	if _, err := r.dict.Remove(e.Interval()); err != nil {
		return err
	}
	for _, rest := range e.Interval().Subtract(toInterval(netipx.IPRangeFrom(ip, ip))) {
		c, err := rest.Canonical(netip.Addr.Prev, netip.Addr.Next)
		if err != nil {
			continue
		}
		if err := r.dict.Add(c, e.Value()); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces the route of a range claimed before with exactly the same
// bounds.
func (r *ipRangeTable) Update(s string, d table.Route) error {
	ipRange, err := r.validateRange(s)
	if err != nil {
		return err
	}

	r.m.Lock()
	defer r.m.Unlock()

	iv := toInterval(ipRange)
	if !r.dict.ContainsInterval(iv) {
		return fmt.Errorf("update failed ip range %s not claimed", s)
	}
	return r.dict.Set(iv, d)
}

func (r *ipRangeTable) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.dict.Count()
}

func (r *ipRangeTable) Has(addr string) bool {
	ip, err := r.validateIP(addr)
	if err != nil {
		return false
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return r.dict.ContainsKey(ip)
}

func (r *ipRangeTable) IsFree(addr string) bool {
	ip, err := r.validateIP(addr)
	if err != nil {
		return false
	}

	r.m.RLock()
	defer r.m.RUnlock()

	return !r.dict.ContainsKey(ip)
}

func (r *ipRangeTable) FindFree() (netip.Addr, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	addr, ok := r.dict.FirstFree(toInterval(r.ipRange), netip.Addr.Next)
	if !ok {
		return netip.Addr{}, fmt.Errorf("no free address in range %s", r.ipRange)
	}
	return addr, nil
}

func (r *ipRangeTable) GetAll() table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	routes := make(table.Routes, 0, r.dict.Count())
	for _, route := range r.dict.All() {
		routes = append(routes, route)
	}
	return routes
}

func (r *ipRangeTable) GetByLabel(selector labels.Selector) table.Routes {
	r.m.RLock()
	defer r.m.RUnlock()

	var routes table.Routes
	for _, route := range r.dict.All() {
		if selector.Matches(route.Labels()) {
			routes = append(routes, route)
		}
	}
	return routes
}

func (r *ipRangeTable) validateIP(addr string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(ip) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From(), r.ipRange.To())
	}
	return ip, nil
}

func (r *ipRangeTable) validateRange(s string) (netipx.IPRange, error) {
	ipRange, err := parseRange(s)
	if err != nil {
		return netipx.IPRange{}, err
	}
	if err := r.fits(ipRange); err != nil {
		return netipx.IPRange{}, err
	}
	return ipRange, nil
}

func (r *ipRangeTable) fits(ipRange netipx.IPRange) error {
	if !r.ipRange.Contains(ipRange.From()) || !r.ipRange.Contains(ipRange.To()) {
		return fmt.Errorf("ip range %s, does not fit in the range from %s to %s", ipRange, r.ipRange.From(), r.ipRange.To())
	}
	return nil
}

func parseRange(s string) (netipx.IPRange, error) {
	switch {
	case strings.Contains(s, "-"):
		ipRange, err := netipx.ParseIPRange(s)
		if err != nil {
			return netipx.IPRange{}, errors.Wrapf(err, "ip range %s is invalid", s)
		}
		return ipRange, nil
	case strings.Contains(s, "/"):
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netipx.IPRange{}, errors.Wrapf(err, "prefix %s is invalid", s)
		}
		return netipx.RangeOfPrefix(prefix.Masked()), nil
	default:
		ip, err := netip.ParseAddr(s)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("ip address %s is invalid", s)
		}
		return netipx.IPRangeFrom(ip, ip), nil
	}
}

func toInterval(ipRange netipx.IPRange) interval.Interval[netip.Addr] {
	// a valid IPRange never has From after To
	iv, _ := interval.ClosedFunc(netip.Addr.Compare, ipRange.From(), ipRange.To())
	return iv
}

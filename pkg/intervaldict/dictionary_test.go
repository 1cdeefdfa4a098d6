package intervaldict

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var numbers = []string{
	"one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "zwulf", "thirteen", "fourteen", "fifteen",
}

var months = []struct {
	from, to int
	name     string
}{
	{1, 31, "January"},
	{32, 59, "February"},
	{60, 90, "March"},
	{91, 120, "April"},
	{121, 151, "May"},
	{152, 181, "June"},
	{182, 212, "July"},
	{213, 243, "August"},
	{244, 273, "September"},
	{274, 304, "October"},
	{305, 334, "November"},
	{335, 365, "December"},
}

func closed(lower, upper int) interval.Interval[int] {
	iv, err := interval.Closed(lower, upper)
	if err != nil {
		panic(err)
	}
	return iv
}

func TestFifteenSingletons(t *testing.T) {
	d := NewOrdered[int, string]()
	for i, name := range numbers {
		require.NoError(t, d.AddRange(i+1, i+1, name))
	}
	require.Equal(t, 15, d.Count())

	for _, k := range []int{12, 1, 2} {
		ok, err := d.RemoveKey(k)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, d.Validate())
	}

	assert.Equal(t, 12, d.Count())
	assert.False(t, d.ContainsKey(12))
	assert.False(t, d.ContainsKey(1))
	assert.False(t, d.ContainsKey(2))
	for i, name := range numbers {
		k := i + 1
		if k == 12 || k == 1 || k == 2 {
			continue
		}
		v, err := d.GetKey(k)
		require.NoError(t, err)
		assert.Equal(t, name, v)
	}
}

func TestMonths(t *testing.T) {
	d := NewOrdered[int, string]()
	for _, m := range months {
		require.NoError(t, d.AddRange(m.from, m.to, m.name))
	}
	require.NoError(t, d.Validate())

	cases := map[string]struct {
		day      int
		expected string
	}{
		"FirstDay":   {day: 1, expected: "January"},
		"LastOfJan":  {day: 31, expected: "January"},
		"FirstOfFeb": {day: 32, expected: "February"},
		"Day264":     {day: 264, expected: "September"},
		"FirstOfOct": {day: 274, expected: "October"},
		"MidOctober": {day: 300, expected: "October"},
		"LastDay":    {day: 365, expected: "December"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v, err := d.GetKey(tc.day)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}

	_, err := d.GetKey(366)
	assert.True(t, errors.Is(err, ErrNotFound))

	first, ok := d.Min()
	require.True(t, ok)
	assert.Equal(t, "January", first.Value())
	last, ok := d.Max()
	require.True(t, ok)
	assert.Equal(t, "December", last.Value())
	assert.Equal(t, "[335,365]: December", last.String())
}

func TestErrors(t *testing.T) {
	d := NewOrdered[int, string]()
	require.NoError(t, d.Add(closed(10, 20), "a"))

	cases := map[string]struct {
		fn          func() error
		expectedErr error
	}{
		"AddZero": {
			fn:          func() error { return d.Add(interval.Interval[int]{}, "x") },
			expectedErr: ErrNullArgument,
		},
		"AddOverlap": {
			fn:          func() error { return d.Add(closed(15, 25), "x") },
			expectedErr: ErrOverlapConflict,
		},
		"AddRangeReversed": {
			fn:          func() error { return d.AddRange(5, 1, "x") },
			expectedErr: ErrInvalidRange,
		},
		"GetZero": {
			fn: func() error {
				_, err := d.Get(interval.Interval[int]{})
				return err
			},
			expectedErr: ErrNullArgument,
		},
		"GetMissing": {
			fn: func() error {
				_, err := d.Get(closed(10, 19))
				return err
			},
			expectedErr: ErrNotFound,
		},
		"GetKeyMissing": {
			fn: func() error {
				_, err := d.GetKey(21)
				return err
			},
			expectedErr: ErrNotFound,
		},
		"SetKeyMissing": {
			fn:          func() error { return d.SetKey(9, "x") },
			expectedErr: ErrNotFound,
		},
		"SetZero": {
			fn:          func() error { return d.Set(interval.Interval[int]{}, "x") },
			expectedErr: ErrNullArgument,
		},
		"SetOverlap": {
			fn:          func() error { return d.Set(closed(20, 30), "x") },
			expectedErr: ErrOverlapConflict,
		},
		"RemoveZero": {
			fn: func() error {
				_, err := d.Remove(interval.Interval[int]{})
				return err
			},
			expectedErr: ErrNullArgument,
		},
		"IntersectDisjoint": {
			fn: func() error {
				_, err := closed(1, 2).Intersect(closed(3, 4))
				return err
			},
			expectedErr: ErrNoOverlap,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.fn()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
			// failed calls leave the dictionary untouched
			assert.Equal(t, 1, d.Count())
		})
	}
}

func TestNilKeys(t *testing.T) {
	compare := func(a, b any) int {
		return interval.OrderedCompare[int]()(a.(int), b.(int))
	}
	d := New[any, string](compare)

	assert.True(t, errors.Is(d.AddRange(nil, 5, "x"), ErrNullArgument))
	assert.True(t, errors.Is(d.AddRange(1, nil, "x"), ErrNullArgument))
	require.NoError(t, d.AddRange(1, 5, "x"))

	_, err := d.GetKey(nil)
	assert.True(t, errors.Is(err, ErrNullArgument))
	assert.True(t, errors.Is(d.SetKey(nil, "y"), ErrNullArgument))
	_, err = d.RemoveKey(nil)
	assert.True(t, errors.Is(err, ErrNullArgument))

	assert.False(t, d.ContainsKey(nil))
	_, ok := d.TryGetKey(nil)
	assert.False(t, ok)
	_, ok = d.Lookup(nil)
	assert.False(t, ok)

	v, err := d.GetKey(3)
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestSet(t *testing.T) {
	d := NewOrdered[int, string]()
	require.NoError(t, d.Set(closed(1, 5), "a"))
	require.NoError(t, d.Set(closed(1, 5), "b"))
	assert.Equal(t, 1, d.Count())

	v, err := d.Get(closed(1, 5))
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	require.NoError(t, d.SetKey(3, "c"))
	v, ok := d.TryGet(closed(1, 5))
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = d.TryGet(interval.Interval[int]{})
	assert.False(t, ok)
	_, ok = d.TryGetKey(6)
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	d := NewOrdered[int, string]()

	type stored struct {
		iv interval.Interval[int]
		v  string
	}
	var all []stored
	for lower := 0; lower < 10000; {
		width := 1 + r.IntN(20)
		iv := closed(lower, lower+width-1)
		v := fmt.Sprintf("v%d", lower)
		require.NoError(t, d.Add(iv, v))
		all = append(all, stored{iv: iv, v: v})
		lower += width + r.IntN(5)
	}
	require.NoError(t, d.Validate())
	require.Equal(t, len(all), d.Count())

	for _, s := range all {
		v, err := d.Get(s.iv)
		require.NoError(t, err)
		assert.Equal(t, s.v, v)
		for k := s.iv.Lower().Value(); k <= s.iv.Upper().Value(); k++ {
			v, err := d.GetKey(k)
			require.NoError(t, err)
			require.Equal(t, s.v, v)
		}
		assert.True(t, d.ContainsInterval(s.iv))
	}

	// remove every other entry and check the rest
	for i, s := range all {
		if i%2 == 0 {
			ok, err := d.Remove(s.iv)
			require.NoError(t, err)
			require.True(t, ok)
		}
	}
	require.NoError(t, d.Validate())
	for i, s := range all {
		_, err := d.GetKey(s.iv.Lower().Value())
		if i%2 == 0 {
			assert.True(t, errors.Is(err, ErrNotFound))
		} else {
			assert.NoError(t, err)
		}
	}
}

func TestIteration(t *testing.T) {
	d := NewOrdered[int, string]()
	for _, k := range []int{5, 3, 9, 1} {
		require.NoError(t, d.Add(interval.Point(k), fmt.Sprint(k)))
	}

	assert.Equal(t, []string{"1", "3", "5", "9"}, d.Values())

	var got []string
	for _, e := range d.Entries() {
		got = append(got, e.String())
	}
	if diff := cmp.Diff([]string{"[1,1]: 1", "[3,3]: 3", "[5,5]: 5", "[9,9]: 9"}, got); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}

	ivs := d.Intervals()
	require.Len(t, ivs, 4)
	assert.Equal(t, "[9,9]", ivs[3].String())

	over := d.Overlapping(closed(2, 6))
	require.Len(t, over, 2)
	assert.Equal(t, "3", over[0].Value())
	assert.Equal(t, "5", over[1].Value())

	n := 0
	iter := d.Iterate()
	for iter.Next() {
		n++
	}
	assert.Equal(t, 4, n)

	e, ok := d.Lookup(9)
	require.True(t, ok)
	assert.Equal(t, "[9,9]", e.Interval().String())

	c := d.Clone()
	d.Clear()
	assert.Equal(t, 0, d.Count())
	assert.Equal(t, 4, c.Count())
	_, ok = d.Min()
	assert.False(t, ok)
	_, ok = d.Max()
	assert.False(t, ok)
}

func TestFirstFree(t *testing.T) {
	next := func(v int) int { return v + 1 }
	d := NewOrdered[int, string]()
	require.NoError(t, d.Add(closed(0, 4), ""))
	iv, err := interval.New(5, interval.Inclusive, 8, interval.Exclusive)
	require.NoError(t, err)
	require.NoError(t, d.Add(iv, ""))
	require.NoError(t, d.Add(closed(10, 12), ""))

	cases := map[string]struct {
		within   interval.Interval[int]
		expected int
		ok       bool
	}{
		"FromStart":    {within: closed(0, 100), expected: 8, ok: true},
		"InsideGap":    {within: closed(9, 100), expected: 9, ok: true},
		"AfterLast":    {within: closed(10, 100), expected: 13, ok: true},
		"Full":         {within: closed(0, 7), ok: false},
		"ExclusiveLow": {within: mustOpenLower(8, 20), expected: 9, ok: true},
		"Zero":         {within: interval.Interval[int]{}, ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := d.FirstFree(tc.within, next)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func mustOpenLower(lower, upper int) interval.Interval[int] {
	iv, err := interval.New(lower, interval.Exclusive, upper, interval.Inclusive)
	if err != nil {
		panic(err)
	}
	return iv
}

package rangetable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/intervaldict"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/labels"
)

var initEntries = Entries[int64]{
	NewEntry(interval.Point[int64](0), labels.Set{"status": "reserved"}),
	NewEntry(interval.MustParseInt("[1000,1010]"), labels.Set{"status": "reserved"}),
}

func rangeStrings(entries Entries[int64]) []string {
	out := []string{}
	for _, e := range entries {
		out = append(out, e.Interval().String())
	}
	return out
}

func TestNew(t *testing.T) {
	cases := map[string]struct {
		initEntries     Entries[int64]
		validation      ValidationFn[int64]
		expectedEntries int
		expectedErr     bool
	}{
		"NewWithoutInitEntries": {
			initEntries:     nil,
			expectedEntries: 0,
		},
		"NewWithInitEntries": {
			initEntries:     initEntries,
			validation:      func(iv interval.Interval[int64]) error { return errors.New("not called for init entries") },
			expectedEntries: 2,
		},
		"NewErrorOverlap": {
			initEntries: append(Entries[int64]{
				NewEntry(interval.MustParseInt("[5,1005]"), labels.Set{}),
			}, initEntries...),
			expectedEntries: 2,
			expectedErr:     true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New(IntegerDomain[int64](), tc.initEntries, tc.validation)
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, r)
			assert.Equal(t, tc.expectedEntries, r.Count())
		})
	}
}

func TestClaim(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, func(iv interval.Interval[int64]) error {
		if iv.Contains(0) {
			return fmt.Errorf("0 is reserved")
		}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, r.ClaimRange(10, 20, labels.Set{}))

	cases := map[string]struct {
		iv          string
		expected    string
		expectedErr error
	}{
		"Closed":     {iv: "[100,120]", expected: "[100,120]"},
		"HalfOpen":   {iv: "[121,130)", expected: "[121,129]"},
		"Open":       {iv: "(129,140)", expected: "[130,139]"},
		"Overlap":    {iv: "[15,16]", expectedErr: intervaldict.ErrOverlapConflict},
		"EmptyOpen":  {iv: "(41,42)", expectedErr: interval.ErrInvalidRange},
		"Validation": {iv: "[0,5]"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			iv := interval.MustParseInt(tc.iv)
			err := r.Claim(iv, labels.Set{"name": name})
			switch {
			case tc.expectedErr != nil:
				assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
			case tc.expected == "":
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				e, err := r.Get(iv.Lower().Value() + 1)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, e.Interval().String())
				assert.Equal(t, name, e.Labels()["name"])
			}
		})
	}

	require.NoError(t, r.ClaimRange(50, 60, labels.Set{}))
	assert.True(t, r.Has(55))
	assert.False(t, r.IsFree(55))
	assert.Error(t, r.ClaimRange(70, 60, labels.Set{}))
	assert.Error(t, r.Claim(interval.Interval[int64]{}, labels.Set{}))
}

func TestGetRange(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, nil)
	require.NoError(t, err)

	e, err := r.GetRange(interval.MustParseInt("[1000,1011)"))
	require.NoError(t, err)
	assert.Equal(t, "reserved", e.Labels()["status"])

	_, err = r.GetRange(interval.MustParseInt("[1000,1009]"))
	assert.True(t, errors.Is(err, intervaldict.ErrNotFound))

	_, err = r.Get(500)
	assert.True(t, errors.Is(err, intervaldict.ErrNotFound))
}

func TestUpdate(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, nil)
	require.NoError(t, err)

	require.NoError(t, r.Update(interval.MustParseInt("[1000,1010]"), labels.Set{"status": "free"}))
	e, err := r.Get(1005)
	require.NoError(t, err)
	assert.True(t, e.Equal(NewEntry(interval.MustParseInt("[1000,1010]"), labels.Set{"status": "free"})))

	err = r.Update(interval.MustParseInt("[1000,1009]"), labels.Set{})
	assert.True(t, errors.Is(err, intervaldict.ErrNotFound))
}

func TestRelease(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, nil)
	require.NoError(t, err)

	require.NoError(t, r.Release(interval.MustParseInt("[1000,1010]")))
	assert.Equal(t, 1, r.Count())
	// releasing an absent interval is not an error
	require.NoError(t, r.Release(interval.MustParseInt("[1000,1010]")))

	require.NoError(t, r.ReleaseKey(0))
	require.NoError(t, r.ReleaseKey(0))
	assert.Equal(t, 0, r.Count())
}

func TestReleaseRange(t *testing.T) {
	cases := map[string]struct {
		release  string
		expected []string
	}{
		"Middle":     {release: "[15,16]", expected: []string{"[10,14]", "[17,20]", "[30,40]"}},
		"Head":       {release: "[5,12]", expected: []string{"[13,20]", "[30,40]"}},
		"AcrossTwo":  {release: "[18,35)", expected: []string{"[10,17]", "[35,40]"}},
		"Everything": {release: "[0,100]", expected: []string{}},
		"Gap":        {release: "[21,29]", expected: []string{"[10,20]", "[30,40]"}},
		"Point":      {release: "[40,40]", expected: []string{"[10,20]", "[30,39]"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New(IntegerDomain[int64](), nil, nil)
			require.NoError(t, err)
			require.NoError(t, r.ClaimRange(10, 20, labels.Set{"pool": "a"}))
			require.NoError(t, r.ClaimRange(30, 40, labels.Set{"pool": "b"}))

			require.NoError(t, r.ReleaseRange(interval.MustParseInt(tc.release)))
			if diff := cmp.Diff(tc.expected, rangeStrings(r.GetAll())); diff != "" {
				t.Errorf("-want, +got:\n%s", diff)
			}
			// trimmed entries keep their labels
			for _, e := range r.GetAll() {
				assert.NotEmpty(t, e.Labels()["pool"])
			}
		})
	}
}

func TestLabels(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, nil)
	require.NoError(t, err)
	require.NoError(t, r.ClaimRange(10, 20, labels.Set{"pool": "a"}))
	require.NoError(t, r.ClaimRange(30, 40, labels.Set{"pool": "b"}))

	reserved := labels.SelectorFromSet(labels.Set{"status": "reserved"})
	assert.Equal(t, []string{"[0,0]", "[1000,1010]"}, rangeStrings(r.GetByLabel(reserved)))

	sel, err := labels.Parse("pool in (a,b)")
	require.NoError(t, err)
	assert.Equal(t, []string{"[10,20]", "[30,40]"}, rangeStrings(r.GetByLabel(sel)))

	require.NoError(t, r.ReleaseByLabel(reserved))
	assert.Equal(t, []string{"[10,20]", "[30,40]"}, rangeStrings(r.GetAll()))

	var got []string
	iter := r.Iterate()
	for iter.Next() {
		got = append(got, iter.Entry().String())
	}
	assert.Equal(t, []string{"range: [10,20], labels: pool=a", "range: [30,40], labels: pool=b"}, got)
}

func TestReleaseByLabelValidation(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, func(iv interval.Interval[int64]) error {
		if iv.Contains(1005) {
			return fmt.Errorf("%s holds a protected id", iv)
		}
		return nil
	})
	require.NoError(t, err)

	reserved := labels.SelectorFromSet(labels.Set{"status": "reserved"})
	assert.Error(t, r.ReleaseByLabel(reserved))
	// [0,0] sorts first and is kept as well
	assert.Equal(t, []string{"[0,0]", "[1000,1010]"}, rangeStrings(r.GetAll()))
}

func TestFindFree(t *testing.T) {
	r, err := New(IntegerDomain[int64](), initEntries, nil)
	require.NoError(t, err)

	id, err := r.FindFree(interval.MustParseInt("[0,2000]"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = r.FindFree(interval.MustParseInt("[1000,2000]"))
	require.NoError(t, err)
	assert.Equal(t, int64(1011), id)

	_, err = r.FindFree(interval.MustParseInt("[1000,1010]"))
	assert.Error(t, err)
	_, err = r.FindFree(interval.Interval[int64]{})
	assert.True(t, errors.Is(err, intervaldict.ErrNullArgument))
}

func TestConcurrentClaim(t *testing.T) {
	r, err := New(IntegerDomain[int64](), nil, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// every id is claimed twice, one of each pair fails
			_ = r.Claim(interval.Point(int64(i%25)), labels.Set{})
			_ = r.Has(int64(i))
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, r.Count())
}

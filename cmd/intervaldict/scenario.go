package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/henderiw/intervaldict/pkg/interval"
	"github.com/henderiw/intervaldict/pkg/intervaldict"
	"github.com/pkg/errors"
)

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

var numbers = []string{
	"one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "zwulf", "thirteen", "fourteen", "fifteen",
}

func newMonths() (*intervaldict.Dictionary[int, string], error) {
	d := intervaldict.NewOrdered[int, string]()
	for _, m := range months {
		if err := d.AddRange(m.from, m.to, m.name); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// runMonths returns the month the day of the year falls in.
func runMonths(log *slog.Logger, day int, verbose bool) (string, error) {
	d, err := newMonths()
	if err != nil {
		return "", err
	}
	if verbose {
		if err := d.Validate(); err != nil {
			return "", err
		}
		dumpTree(d)
	}

	month, err := d.GetKey(day)
	if err != nil {
		return "", errors.Wrapf(err, "day %d", day)
	}
	first, _ := d.Min()
	log.Info("months", "day", day, "month", month, "first", first.Value(), "count", d.Count())
	return month, nil
}

// runFifteen stores fifteen singletons, removes 12, 1 and 2 and checks the
// remaining entries.
func runFifteen(log *slog.Logger, verbose bool) error {
	d := intervaldict.NewOrdered[int, string]()
	for i, name := range numbers {
		if err := d.AddRange(i+1, i+1, name); err != nil {
			return err
		}
	}

	removed := map[int]bool{12: true, 1: true, 2: true}
	for _, key := range []int{12, 1, 2} {
		ok, err := d.RemoveKey(key)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(intervaldict.ErrNotFound, "remove %d", key)
		}
		log.Debug("removed", "key", key, "count", d.Count())
	}
	if err := d.Validate(); err != nil {
		return err
	}
	if verbose {
		dumpTree(d)
	}

	if d.Count() != len(numbers)-len(removed) {
		return fmt.Errorf("expected %d entries, got %d", len(numbers)-len(removed), d.Count())
	}
	for i, name := range numbers {
		key := i + 1
		v, ok := d.TryGetKey(key)
		switch {
		case removed[key] && ok:
			return fmt.Errorf("key %d still present", key)
		case !removed[key] && !ok:
			return fmt.Errorf("key %d missing", key)
		case !removed[key] && v != name:
			return fmt.Errorf("key %d: want %s, got %s", key, name, v)
		}
	}
	log.Info("fifteen", "count", d.Count(), "intervals", fmt.Sprint(d.Intervals()))
	return nil
}

// runBulk inserts n adjacent intervals of the given width and reports the
// mean insertion time.
func runBulk(log *slog.Logger, n, width int) error {
	if n <= 0 || width <= 0 {
		return fmt.Errorf("bulk size %d and width %d must be positive", n, width)
	}
	d := intervaldict.NewOrdered[int, string]()

	start := time.Now()
	for i := 0; i < n*width; i += width {
		iv, err := interval.New(i, interval.Inclusive, i+width, interval.Exclusive)
		if err != nil {
			return err
		}
		if err := d.Add(iv, ""); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	if err := d.Validate(); err != nil {
		return err
	}
	log.Info("bulk", "count", d.Count(), "elapsed", elapsed, "perInsert", elapsed/time.Duration(n))
	return nil
}

func dumpTree(d *intervaldict.Dictionary[int, string]) {
	d.Dump(os.Stderr)
}

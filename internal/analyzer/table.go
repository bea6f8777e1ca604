package analyzer

import (
	"fmt"

	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// NoBucket is returned by extremum queries on a table without slots.
const NoBucket = -1

// Table is an ordered count table. Slot i counts accesses whose bucket value
// is base+i. Fixed tables never change length; the yearly table grows to cover
// the years it has seen.
type Table struct {
	dim    models.Dimension
	base   int
	counts []int
	fixed  bool
}

// NewTable creates a zeroed table for the dimension.
func NewTable(dim models.Dimension) *Table {
	slots := dim.Slots()
	return &Table{
		dim:    dim,
		base:   dim.Base(),
		counts: make([]int, slots),
		fixed:  slots > 0,
	}
}

// Dimension returns the dimension the table counts.
func (t *Table) Dimension() models.Dimension {
	return t.dim
}

// Base returns the bucket value held in slot 0.
func (t *Table) Base() int {
	return t.base
}

// Len returns the number of slots.
func (t *Table) Len() int {
	return len(t.counts)
}

// Count returns the count in a slot, or 0 for an out-of-range slot.
func (t *Table) Count(slot int) int {
	if slot < 0 || slot >= len(t.counts) {
		return 0
	}
	return t.counts[slot]
}

// Counts returns a copy of the slot counts.
func (t *Table) Counts() []int {
	cp := make([]int, len(t.counts))
	copy(cp, t.counts)
	return cp
}

// Label returns the bucket value for a slot.
func (t *Table) Label(slot int) int {
	return t.base + slot
}

// Increment adds one to the slot holding bucket.
func (t *Table) Increment(bucket int) error {
	return t.add(bucket, 1)
}

func (t *Table) add(bucket, n int) error {
	if !t.fixed {
		if !t.dim.Contains(bucket) {
			return fmt.Errorf("%w: %s %d", ErrBucketOutOfRange, t.dim, bucket)
		}
		t.grow(bucket)
	}
	slot := bucket - t.base
	if slot < 0 || slot >= len(t.counts) {
		return fmt.Errorf("%w: %s %d outside [%d, %d]",
			ErrBucketOutOfRange, t.dim, bucket, t.base, t.base+len(t.counts)-1)
	}
	t.counts[slot] += n
	return nil
}

// grow extends a dynamic table so that bucket has a slot.
func (t *Table) grow(bucket int) {
	if len(t.counts) == 0 {
		t.base = bucket
		t.counts = []int{0}
		return
	}
	if bucket < t.base {
		t.counts = append(make([]int, t.base-bucket), t.counts...)
		t.base = bucket
		return
	}
	if extra := bucket - (t.base + len(t.counts) - 1); extra > 0 {
		t.counts = append(t.counts, make([]int, extra)...)
	}
}

// merge adds every count of other into t, aligned by bucket value.
func (t *Table) merge(other *Table) error {
	for i, c := range other.counts {
		if c == 0 && t.fixed {
			continue
		}
		if err := t.add(other.Label(i), c); err != nil {
			return err
		}
	}
	return nil
}

// clear zeroes the table. Dynamic tables drop back to zero slots.
func (t *Table) clear() {
	if !t.fixed {
		t.counts = nil
		t.base = t.dim.Base()
		return
	}
	clear(t.counts)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return &Table{dim: t.dim, base: t.base, counts: t.Counts(), fixed: t.fixed}
}

// Total returns the sum of all slots.
func (t *Table) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Busiest returns the first slot holding the strict maximum, or NoBucket.
func (t *Table) Busiest() int {
	best := NoBucket
	for i, c := range t.counts {
		if best == NoBucket || c > t.counts[best] {
			best = i
		}
	}
	return best
}

// Quietest returns the first slot holding the strict minimum, or NoBucket.
func (t *Table) Quietest() int {
	best := NoBucket
	for i, c := range t.counts {
		if best == NoBucket || c < t.counts[best] {
			best = i
		}
	}
	return best
}

// BusiestWindow returns the first start slot i maximising the sum of slots
// i..i+width-1. Windows never extend past the last slot; NoBucket is
// returned when the table is shorter than width or width < 1.
func (t *Table) BusiestWindow(width int) int {
	if width < 1 || len(t.counts) < width {
		return NoBucket
	}

	sum := 0
	for i := 0; i < width; i++ {
		sum += t.counts[i]
	}
	best, bestSum := 0, sum
	for i := 1; i+width <= len(t.counts); i++ {
		sum += t.counts[i+width-1] - t.counts[i-1]
		if sum > bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// WindowSum returns the sum of width slots starting at start.
func (t *Table) WindowSum(start, width int) int {
	sum := 0
	for i := start; i < start+width; i++ {
		sum += t.Count(i)
	}
	return sum
}

package analyzer

import (
	"errors"
	"testing"

	"github.com/j-veylop/weblog-analyzer/internal/models"
)

// tableOf builds a fixed hourly-style table holding counts.
func tableOf(counts []int) *Table {
	cp := make([]int, len(counts))
	copy(cp, counts)
	return &Table{dim: models.DimensionHour, counts: cp, fixed: true}
}

func TestTable_Extremes(t *testing.T) {
	tests := []struct {
		name     string
		counts   []int
		busiest  int
		quietest int
	}{
		{"FirstMaxWins", []int{5, 3, 9, 9, 0}, 2, 4},
		{"FirstMinWins", []int{4, 1, 1, 7}, 3, 1},
		{"AllEqual", []int{2, 2, 2}, 0, 0},
		{"Single", []int{8}, 0, 0},
		{"Empty", nil, NoBucket, NoBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := tableOf(tt.counts)
			if got := tb.Busiest(); got != tt.busiest {
				t.Errorf("Busiest() = %d, want %d", got, tt.busiest)
			}
			if got := tb.Quietest(); got != tt.quietest {
				t.Errorf("Quietest() = %d, want %d", got, tt.quietest)
			}
		})
	}
}

func TestTable_BusiestWindow(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		width  int
		want   int
	}{
		{"Pairs", []int{1, 1, 10, 10, 1}, 2, 2},
		{"LastPair", []int{0, 0, 0, 1, 5}, 2, 3},
		{"Triple", []int{3, 0, 0, 2, 2, 2}, 3, 3},
		{"WholeTable", []int{1, 2}, 2, 0},
		{"TooWide", []int{1}, 2, NoBucket},
		{"ZeroWidth", []int{1, 2}, 0, NoBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := tableOf(tt.counts)
			if got := tb.BusiestWindow(tt.width); got != tt.want {
				t.Errorf("BusiestWindow(%d) = %d, want %d", tt.width, got, tt.want)
			}
		})
	}
}

func TestTable_WindowSum(t *testing.T) {
	tb := tableOf([]int{1, 2, 3})
	if got := tb.WindowSum(1, 2); got != 5 {
		t.Errorf("WindowSum(1, 2) = %d, want 5", got)
	}
	if got := tb.WindowSum(2, 2); got != 3 {
		t.Errorf("WindowSum past the end = %d, want 3", got)
	}
}

func TestTable_IncrementFixed(t *testing.T) {
	tb := NewTable(models.DimensionMonth)
	if err := tb.Increment(1); err != nil {
		t.Fatalf("Increment(1) error = %v", err)
	}
	if err := tb.Increment(12); err != nil {
		t.Fatalf("Increment(12) error = %v", err)
	}
	if tb.Count(0) != 1 || tb.Count(11) != 1 {
		t.Errorf("counts = %v", tb.Counts())
	}

	for _, bad := range []int{0, 13, -1} {
		if err := tb.Increment(bad); !errors.Is(err, ErrBucketOutOfRange) {
			t.Errorf("Increment(%d) error = %v, want ErrBucketOutOfRange", bad, err)
		}
	}
	if tb.Total() != 2 {
		t.Errorf("Total() = %d, want 2", tb.Total())
	}
}

func TestTable_YearlyGrows(t *testing.T) {
	tb := NewTable(models.DimensionYear)
	if tb.Len() != 0 {
		t.Fatalf("new yearly table has %d slots, want 0", tb.Len())
	}

	for _, y := range []int{2015, 2017, 2013, 2015} {
		if err := tb.Increment(y); err != nil {
			t.Fatalf("Increment(%d) error = %v", y, err)
		}
	}

	if tb.Base() != 2013 || tb.Len() != 5 {
		t.Fatalf("base/len = %d/%d, want 2013/5", tb.Base(), tb.Len())
	}
	want := []int{1, 0, 2, 0, 1}
	for i, w := range want {
		if tb.Count(i) != w {
			t.Errorf("slot %d (%d) = %d, want %d", i, tb.Label(i), tb.Count(i), w)
		}
	}
	if tb.Label(tb.Busiest()) != 2015 {
		t.Errorf("busiest year = %d, want 2015", tb.Label(tb.Busiest()))
	}
}

func TestTable_YearlyRejectsImplausibleYears(t *testing.T) {
	tb := NewTable(models.DimensionYear)
	if err := tb.Increment(2016); err != nil {
		t.Fatalf("Increment(2016) error = %v", err)
	}

	for _, y := range []int{20000000, models.MaxYear + 1, 0, -3} {
		if err := tb.Increment(y); !errors.Is(err, ErrBucketOutOfRange) {
			t.Errorf("Increment(%d) error = %v, want ErrBucketOutOfRange", y, err)
		}
	}
	if tb.Len() != 1 || tb.Base() != 2016 {
		t.Errorf("table grew to base=%d len=%d, want 2016/1", tb.Base(), tb.Len())
	}
}

func TestTable_MergeYearly(t *testing.T) {
	dst := NewTable(models.DimensionYear)
	_ = dst.Increment(2020)

	src := NewTable(models.DimensionYear)
	_ = src.Increment(2018)
	_ = src.Increment(2020)

	if err := dst.merge(src); err != nil {
		t.Fatalf("merge() error = %v", err)
	}
	if dst.Base() != 2018 || dst.Count(2) != 2 || dst.Total() != 3 {
		t.Errorf("merged table base=%d counts=%v", dst.Base(), dst.Counts())
	}
}

func TestTable_CountOutOfRange(t *testing.T) {
	tb := NewTable(models.DimensionHour)
	if tb.Count(-1) != 0 || tb.Count(24) != 0 {
		t.Error("Count() outside the table should be 0")
	}
	if tb.Dimension() != models.DimensionHour {
		t.Errorf("Dimension() = %v", tb.Dimension())
	}
}

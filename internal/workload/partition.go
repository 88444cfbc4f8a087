// Package workload defines the benchmark's unit of work: half-open integer
// ranges produced by partitioning a large interval into fixed-width slices.
// Partitioning is pure and deterministic; the same arguments always produce
// the same range list.
package workload

import (
	apperrors "github.com/agbru/primebench/internal/errors"
)

// Default workload parameters. These reproduce the harness's reference
// workload: twenty consecutive ranges of ten thousand integers starting at
// one million.
const (
	// DefaultBase is the start of the first range.
	DefaultBase int64 = 1_000_000
	// DefaultWidth is the width of every range.
	DefaultWidth int64 = 10_000
	// DefaultCount is the number of ranges.
	DefaultCount = 20
)

// Range is a half-open integer interval [Start, End) describing one unit of
// work. Invariant: Start <= End. A Range is immutable once created.
type Range struct {
	// Start is the first integer of the interval (inclusive).
	Start int64
	// End is the upper bound of the interval (exclusive).
	End int64
}

// Width returns the number of integers covered by the range.
func (r Range) Width() int64 { return r.End - r.Start }

// Item pairs a Range with its position in the partitioned sequence. The
// position determines where the item's result lands in the final result
// set, regardless of which worker processes it or when it completes.
type Item struct {
	// Index is the item's position in the input sequence.
	Index int
	// Range is the interval to process.
	Range Range
}

// Partition splits the interval starting at base into count consecutive,
// non-overlapping ranges of the given width. The i-th range is
// [base+i*width, base+(i+1)*width).
//
// Parameters:
//   - base: The start of the first range.
//   - width: The width of each range; must be positive.
//   - count: The number of ranges; must be non-negative.
//
// Returns:
//   - []Range: The ordered range list (empty, non-nil, when count is 0).
//   - error: An InvalidArgumentError when width or count violate their constraints.
func Partition(base, width int64, count int) ([]Range, error) {
	if width <= 0 {
		return nil, apperrors.NewInvalidArgumentError("width", "must be positive, got %d", width)
	}
	if count < 0 {
		return nil, apperrors.NewInvalidArgumentError("count", "must be non-negative, got %d", count)
	}

	ranges := make([]Range, count)
	for i := range ranges {
		start := base + int64(i)*width
		ranges[i] = Range{Start: start, End: start + width}
	}
	return ranges, nil
}

// Items pairs each range with its position, producing the ordered work item
// sequence consumed by the schedulers.
func Items(ranges []Range) []Item {
	items := make([]Item, len(ranges))
	for i, r := range ranges {
		items[i] = Item{Index: i, Range: r}
	}
	return items
}

// DefaultRanges returns the reference workload used by the benchmark when no
// parameters are overridden.
func DefaultRanges() []Range {
	ranges, err := Partition(DefaultBase, DefaultWidth, DefaultCount)
	if err != nil {
		// Unreachable: the defaults satisfy the constraints.
		panic(err)
	}
	return ranges
}

package serial

import (
	"fmt"

	"github.com/arthur-debert/ttcg/types"
)

// Bucket maps v in [0, top] onto one of n equal-width buckets.
func Bucket(v, top, n int) int {
	return v * n / (top + 1)
}

// BucketRange returns the inclusive range of values in [0, top] that fall
// into bucket b. Buckets narrower than one value are empty and report
// lo > hi.
func BucketRange(b, top, n int) (lo, hi int) {
	lo = ceilDiv(b*(top+1), n)
	hi = ceilDiv((b+1)*(top+1), n) - 1
	return lo, hi
}

// StatBucket buckets an attack or defense cell for a card of the given
// level. Spell stats are signed bonuses and are shifted into [0, 2*bound]
// first.
func StatBucket(cell string, level int, spell bool, n int) (int, error) {
	v, err := types.ParseStat(cell)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAttribute, err)
	}

	lo, hi := types.StatRange(level, spell)
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: stat %d outside [%d, %d] for level %d", ErrInvalidAttribute, v, lo, hi, level)
	}
	return Bucket(v-lo, hi-lo, n), nil
}

// StatBucketRange returns the stat values, in card terms, that encode to
// bucket b.
func StatBucketRange(b, level int, spell bool, n int) (lo, hi int) {
	floor, ceil := types.StatRange(level, spell)
	lo, hi = BucketRange(b, ceil-floor, n)
	return lo + floor, hi + floor
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Package prime implements the benchmark's unit of work: a trial-division
// primality predicate and a counter that applies it across a range.
//
// The predicate is deliberately naive. The harness measures how work is
// scheduled, not how fast primes can be found, and trial division gives each
// range a stable, purely CPU-bound cost.
package prime

import (
	"context"

	"github.com/agbru/primebench/internal/workload"
)

// ctxCheckInterval is the number of candidates examined between context
// checks in CountInRange. Checking on every candidate would measurably slow
// the hot loop.
const ctxCheckInterval = 1024

// IsPrime reports whether n is prime. It returns false for all n < 2 and
// otherwise tests divisors up to the integer square root of n.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// CountInRange counts the primes in the half-open interval [r.Start, r.End).
// It checks the context periodically so a canceled or timed-out benchmark
// run aborts promptly instead of finishing the range.
//
// Parameters:
//   - ctx: The context governing cancellation.
//   - r: The range to scan.
//
// Returns:
//   - int: The number of primes found.
//   - error: The context's error if the scan was aborted, nil otherwise.
func CountInRange(ctx context.Context, r workload.Range) (int, error) {
	count := 0
	for n := r.Start; n < r.End; n++ {
		if (n-r.Start)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		if IsPrime(n) {
			count++
		}
	}
	return count, nil
}

// Package strip generates strips of 90-ball bingo tickets.
//
// # Overview
//
// A strip is six tickets that together hold every number from 1 to 90 exactly
// once. Each ticket is a 3x9 grid: every column holds one to three numbers from
// its decade (column 0 holds 1-9, column 8 holds 80-90), every row holds five
// numbers and four blanks, and numbers read top to bottom in ascending order.
//
// # Generation
//
// A strip is built in three phases from a single shuffled NumberPool:
//
//  1. Every column of every ticket receives one number (54 numbers).
//  2. The remaining 36 numbers are swept column-major, descending, into the
//     first ticket that can still accept a number in that column.
//  3. Each ticket's columns are sorted and padded with blanks so every row
//     ends up with exactly five numbers.
//
// All randomness comes from an explicit RandomSource. Given the same seed,
// GenerateStrip produces the same strip byte for byte, so a strip can always be
// replayed from Strip.Seed.
//
// # Usage Example
//
//	seed := uint64(42)
//	s, err := strip.GenerateStrip(&seed)
//	if err != nil {
//		return err
//	}
//	fmt.Print(s)
//
// # Errors
//
// Every error returned while generating a strip is an *InvariantError wrapping
// one of the Err* sentinels. They indicate a broken allocation invariant, never
// a transient condition, and the strip being built must be discarded.
package strip

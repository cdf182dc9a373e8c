// Package reader holds one reader per metric family. Every reader returns
// either a populated result or (nil, nil) when the source does not exist on
// this host; a non-nil error means the source exists but could not be read
// this time. Readers never abort a sampling tick.
package reader

import "math"

// Wire values are rounded to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pisum

// Evaluate sums the series described by p and returns the raw, unscaled
// result. The accumulator starts at 1.0; if p.Iterations <= 0, Evaluate
// returns exactly 1.0.
//
// Each reciprocal is computed in extended precision and folded into a
// float64 accumulator with a single rounding per update. Evaluate is pure:
// identical Params always produce bit-identical results on a given
// platform.
//
// Denominators are not checked. If i*P1 ± P2 is zero for some i, the
// division yields ±Inf and the result is NaN. Use Params.Check to
// detect this ahead of time. Denominators are exact as long as
// |i*P1| + |P2| stays below 2^53.
func Evaluate(p Params) float64 {
	result := 1.0
	for i := int64(1); i <= p.Iterations; i++ {
		hi, lo := recip(float64(i*p.P1 - p.P2))
		result = addWide(result, -hi, -lo)
		hi, lo = recip(float64(i*p.P1 + p.P2))
		result = addWide(result, hi, lo)
	}
	return result
}

// Scaled returns Evaluate(p) * Scale.
func Scaled(p Params) float64 {
	return Evaluate(p) * Scale
}

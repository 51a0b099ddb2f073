// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pisum

import "math"

// Extended precision terms, carried as unevaluated double-double sums
// hi + lo with |lo| <= ulp(hi)/2.

// recip returns 1/d as hi + lo.
func recip(d float64) (hi, lo float64) {
	hi = 1 / d
	lo = math.FMA(-hi, d, 1) / d
	return hi, lo
}

// twoSum returns s = fl(a + b) and the rounding error e, such that
// a + b = s + e exactly.
func twoSum(a, b float64) (s, e float64) {
	s = a + b
	bb := s - a
	e = (a - (s - bb)) + (b - bb)
	return s, e
}

// addWide returns acc + (hi + lo), evaluated in double-double and rounded
// once to float64.
func addWide(acc, hi, lo float64) float64 {
	s, e := twoSum(acc, hi)
	return s + (e + lo)
}

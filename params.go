// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pisum approximates π by summing the alternating series
//
//	1 - 1/3 + 1/5 - 1/7 + ...
//
// over a fixed number of iterations, and reports the value together with
// the time it took to compute.
package pisum

import (
	"errors"
	"fmt"
)

// Scale is the factor the raw series sum is multiplied by to produce the
// reported value.
const Scale = 4

// Params configures a series evaluation.
//
// Each iteration i in [1, Iterations] subtracts 1/(i*P1 - P2) from the sum
// and adds 1/(i*P1 + P2) to it. With P1 = 4 and P2 = 1 the scaled sum
// converges to π.
type Params struct {
	Iterations int64
	P1         int64
	P2         int64
}

// DefaultParams returns the parameters the pisum command runs with:
// 100,000,000 iterations, P1 = 4, P2 = 1.
func DefaultParams() Params {
	return Params{
		Iterations: 100000000,
		P1:         4,
		P2:         1,
	}
}

// ErrZeroDenominator is returned by Check if some iteration would divide
// by zero.
var ErrZeroDenominator = errors.New("pisum: zero denominator")

// Check reports whether any iteration index in [1, p.Iterations] makes one
// of the two per-step denominators zero. It does not evaluate the series.
//
// Evaluate does not call Check: a zero denominator there follows IEEE 754
// division semantics.
func (p Params) Check() error {
	if p.Iterations < 1 {
		return nil
	}
	if p.P1 == 0 {
		if p.P2 == 0 {
			return fmt.Errorf("%w at i=1: p1 = p2 = 0", ErrZeroDenominator)
		}
		return nil
	}
	for _, target := range [...]int64{p.P2, -p.P2} {
		if target%p.P1 != 0 {
			continue
		}
		if i := target / p.P1; i >= 1 && i <= p.Iterations {
			return fmt.Errorf("%w at i=%d: %d*%d = %d", ErrZeroDenominator, i, i, p.P1, target)
		}
	}
	return nil
}

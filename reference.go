// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pisum

import "github.com/ericlagergren/decimal"

// Reference evaluates the same series as Evaluate entirely in decimal
// arithmetic under ctx, and returns the raw, unscaled sum. It is orders of
// magnitude slower than Evaluate and meant for checking it on small
// iteration counts.
//
// As with Evaluate, zero denominators are not checked; the result follows
// the division semantics of ctx.
func Reference(p Params, ctx decimal.Context) *decimal.Big {
	one := decimal.New(1, 0)
	sum := decimal.New(1, 0)
	den := new(decimal.Big)
	term := new(decimal.Big)
	for i := int64(1); i <= p.Iterations; i++ {
		den.SetMantScale(i*p.P1-p.P2, 0)
		ctx.Quo(term, one, den)
		ctx.Sub(sum, sum, term)

		den.SetMantScale(i*p.P1+p.P2, 0)
		ctx.Quo(term, one, den)
		ctx.Add(sum, sum, term)
	}
	return sum
}

// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pisum

import (
	"fmt"
	"io"
	"time"
)

// Report is the outcome of one timed evaluation.
type Report struct {
	// Value is the scaled result.
	Value float64

	// Elapsed is the wall-clock duration of the evaluation, measured on
	// the monotonic clock.
	Elapsed time.Duration
}

// Seconds returns r.Elapsed truncated to whole microseconds, in seconds.
func (r Report) Seconds() float64 {
	return float64(r.Elapsed.Microseconds()) / 1e6
}

// WriteTo writes the two line report to w:
//
//	Result: 3.141592658590
//	Execution Time: 0.412345 seconds
//
// The result always carries exactly 12 fractional digits. The time uses
// the shortest representation that round-trips.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "Result: %.12f\nExecution Time: %v seconds\n", r.Value, r.Seconds())
	return int64(n), err
}

// Run evaluates the series described by p, timing only the evaluation, and
// writes the report to w.
//
// The only errors Run returns come from p.Check, before anything is timed,
// and from writing to w.
func Run(w io.Writer, p Params) (Report, error) {
	if err := p.Check(); err != nil {
		return Report{}, err
	}
	start := time.Now()
	value := Scaled(p)
	r := Report{
		Value:   value,
		Elapsed: time.Since(start),
	}
	if _, err := r.WriteTo(w); err != nil {
		return r, fmt.Errorf("pisum: writing report: %w", err)
	}
	return r, nil
}

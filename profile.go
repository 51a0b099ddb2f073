// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pisum

import "errors"

// Counters holds hardware counter readings taken around one evaluation.
type Counters struct {
	// Value is the scaled result of the profiled evaluation.
	Value float64

	// Instructions is the number of user space instructions retired.
	Instructions uint64

	// Cycles is the number of user space CPU cycles elapsed.
	Cycles uint64
}

// IPC returns instructions per cycle, or 0 if no cycles were counted.
func (c Counters) IPC() float64 {
	if c.Cycles == 0 {
		return 0
	}
	return float64(c.Instructions) / float64(c.Cycles)
}

// ErrProfileUnsupported is returned by Profile on platforms without
// hardware counter support.
var ErrProfileUnsupported = errors.New("pisum: hardware counters not supported")

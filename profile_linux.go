// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package pisum

import (
	"fmt"
	"runtime"

	"acln.ro/pisum/internal/perf"
)

// Profile evaluates the series described by p while counting user space
// instructions and CPU cycles on the calling thread.
func Profile(p Params) (Counters, error) {
	if !perf.Supported() {
		return Counters{}, ErrProfileUnsupported
	}

	var g perf.Group
	g.Options.ExcludeKernel = true
	g.Options.ExcludeHypervisor = true
	g.Add(perf.Instructions, perf.CPUCycles)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	ev, err := g.Open(perf.CallingThread, perf.AnyCPU)
	if err != nil {
		return Counters{}, fmt.Errorf("pisum: opening counters: %w", err)
	}
	defer ev.Close()

	var c Counters
	gc, err := ev.MeasureGroup(func() {
		c.Value = Scaled(p)
	})
	if err != nil {
		return Counters{}, fmt.Errorf("pisum: measuring: %w", err)
	}
	c.Instructions = gc.Values[0].Value
	c.Cycles = gc.Values[1].Value
	return c, nil
}

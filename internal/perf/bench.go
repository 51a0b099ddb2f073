// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"runtime"
	"testing"
)

// Stopper implements the Stop() method.
type Stopper func()

// Stop calls the given stopper.
func (s Stopper) Stop() { s() }

// Benchmark starts counting instructions and CPU cycles for the calling
// thread, and returns a Stopper which reports them as benchmark metrics.
// If the counters cannot be opened, the benchmark is skipped.
//
//	func BenchmarkFoo(b *testing.B) {
//		defer perf.Benchmark(b).Stop()
//		for i := 0; i < b.N; i++ {
//			foo()
//		}
//	}
func Benchmark(b *testing.B) Stopper {
	var g Group
	g.Options.ExcludeKernel = true
	g.Options.ExcludeHypervisor = true
	g.Add(Instructions, CPUCycles)

	// CallingThread is the thread that opens the events, so the benchmark
	// goroutine must be pinned to it first.
	runtime.LockOSThread()
	ev, err := g.Open(CallingThread, AnyCPU)
	if err != nil {
		runtime.UnlockOSThread()
		b.Skipf("hardware counters unavailable: %v", err)
	}

	if err := ev.arm(); err != nil {
		runtime.UnlockOSThread()
		ev.Close()
		b.Fatal(err)
	}
	b.ResetTimer()

	return Stopper(func() {
		b.StopTimer()
		defer ev.Close()
		err := ev.Disable()
		runtime.UnlockOSThread()
		if err != nil {
			b.Fatal(err)
		}

		gc, err := ev.ReadGroupCount()
		if err != nil {
			b.Fatal(err)
		}

		insns, cycles := gc.Values[0].Value, gc.Values[1].Value
		if cycles > 0 {
			b.ReportMetric(float64(insns)/float64(cycles), "instrs/cycle")
		}
		b.ReportMetric(float64(insns)/float64(b.N), "instrs/op")
		b.ReportMetric(float64(cycles)/float64(b.N), "cycles/op")
	})
}

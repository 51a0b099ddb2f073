// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Package perf provides counting access to the Linux perf API. See man 2
// perf_event_open.
//
// Only the counting half of the API is implemented: events are opened,
// enabled around a function call, and read back. Sampling and the memory
// mapped ring buffer are not supported.
package perf

import (
	"os"
	"time"
	"unsafe"
)

// Supported returns a boolean indicating whether the host kernel supports
// the perf_event_open system call, which is a prerequisite for the
// operations of this package.
//
// Supported checks for the existence of a /proc/sys/kernel/perf_event_paranoid
// file, which is the canonical method for determining if a kernel supports
// perf_event_open(2).
func Supported() bool {
	_, err := os.Stat("/proc/sys/kernel/perf_event_paranoid")
	return err == nil
}

// fields is a collection of 64-bit fields, as read from a perf file
// descriptor.
type fields []byte

// uint64 decodes the next 64 bit field into v.
func (f *fields) uint64(v *uint64) {
	*v = *(*uint64)(unsafe.Pointer(&(*f)[0]))
	f.advance(8)
}

// uint64If decodes the next 64 bit field into v, if cond is true.
func (f *fields) uint64If(cond bool, v *uint64) {
	if cond {
		f.uint64(v)
	}
}

// duration decodes a duration into d.
func (f *fields) duration(d *time.Duration) {
	*d = *(*time.Duration)(unsafe.Pointer(&(*f)[0]))
	f.advance(8)
}

// durationIf decodes a duration into d, if cond is true.
func (f *fields) durationIf(cond bool, d *time.Duration) {
	if cond {
		f.duration(d)
	}
}

// count decodes a single Count, laid out according to the CountFormat
// ev was configured with.
func (f *fields) count(c *Count, ev *Event) {
	f.uint64(&c.Value)
	f.durationIf(ev.attr.CountFormat.Enabled, &c.Enabled)
	f.durationIf(ev.attr.CountFormat.Running, &c.Running)
	f.uint64If(ev.attr.CountFormat.ID, &c.ID)
	c.Label = ev.attr.Label
}

// groupCount decodes a GroupCount for the group led by ev.
func (f *fields) groupCount(gc *GroupCount, ev *Event) {
	var nr uint64
	f.uint64(&nr)
	f.durationIf(ev.attr.CountFormat.Enabled, &gc.Enabled)
	f.durationIf(ev.attr.CountFormat.Running, &gc.Running)
	gc.Values = make([]struct {
		Value, ID uint64
		Label     string
	}, nr)
	for i := 0; i < int(nr); i++ {
		f.uint64(&gc.Values[i].Value)
		f.uint64If(ev.attr.CountFormat.ID, &gc.Values[i].ID)
		if i == 0 {
			gc.Values[i].Label = ev.attr.Label
		} else if i-1 < len(ev.group) {
			gc.Values[i].Label = ev.group[i-1].attr.Label
		}
	}
}

// advance advances through the fields by n bytes.
func (f *fields) advance(n int) {
	*f = (*f)[n:]
}

// marshalBitwiseUint64 marshals a set of bitwise flags into a
// uint64, LSB first.
func marshalBitwiseUint64(fields []bool) uint64 {
	var res uint64
	for shift, set := range fields {
		if set {
			res |= 1 << uint(shift)
		}
	}
	return res
}

// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"encoding/binary"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestCountFormatMarshal(t *testing.T) {
	tests := []struct {
		f    CountFormat
		want uint64
	}{
		{CountFormat{}, 0},
		{CountFormat{Enabled: true}, unix.PERF_FORMAT_TOTAL_TIME_ENABLED},
		{CountFormat{Running: true}, unix.PERF_FORMAT_TOTAL_TIME_RUNNING},
		{CountFormat{ID: true}, unix.PERF_FORMAT_ID},
		{CountFormat{Group: true}, unix.PERF_FORMAT_GROUP},
		{
			CountFormat{Enabled: true, ID: true, Group: true},
			unix.PERF_FORMAT_TOTAL_TIME_ENABLED | unix.PERF_FORMAT_ID | unix.PERF_FORMAT_GROUP,
		},
	}
	for _, tt := range tests {
		if got := tt.f.marshal(); got != tt.want {
			t.Errorf("%+v: got %#x, want %#x", tt.f, got, tt.want)
		}
	}
}

func TestOptionsMarshal(t *testing.T) {
	opt := Options{
		Disabled:          true,
		ExcludeKernel:     true,
		ExcludeHypervisor: true,
	}
	want := uint64(1<<0 | 1<<5 | 1<<6)
	if got := opt.marshal(); got != want {
		t.Fatalf("got %#b, want %#b", got, want)
	}
}

func TestCountFormatSizes(t *testing.T) {
	f := CountFormat{Enabled: true, Running: true, ID: true}
	if got := f.readSize(); got != 32 {
		t.Errorf("readSize: got %d, want 32", got)
	}
	if got := f.groupReadHeaderSize(); got != 24 {
		t.Errorf("groupReadHeaderSize: got %d, want 24", got)
	}
	if got := f.groupReadCountSize(); got != 16 {
		t.Errorf("groupReadCountSize: got %d, want 16", got)
	}
}

func words(vs ...uint64) fields {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.NativeEndian.PutUint64(buf[8*i:], v)
	}
	return fields(buf)
}

func TestDecodeCount(t *testing.T) {
	ev := &Event{attr: &Attr{
		Label:       "instructions",
		CountFormat: CountFormat{Running: true, ID: true},
	}}
	f := words(1234, uint64(5*time.Millisecond), 42)

	var c Count
	f.count(&c, ev)
	if c.Value != 1234 || c.Running != 5*time.Millisecond || c.ID != 42 {
		t.Fatalf("got %+v", c)
	}
	if c.Enabled != 0 {
		t.Fatalf("Enabled decoded without being requested: %v", c.Enabled)
	}
	if c.Label != "instructions" {
		t.Fatalf("got label %q", c.Label)
	}
	if len(f) != 0 {
		t.Fatalf("%d bytes left over", len(f))
	}
}

func TestDecodeGroupCount(t *testing.T) {
	follower := &Event{attr: &Attr{Label: "cpu-cycles"}}
	leader := &Event{
		attr: &Attr{
			Label:       "instructions",
			CountFormat: CountFormat{Enabled: true, Group: true},
		},
		group: []*Event{follower},
	}
	f := words(2, uint64(time.Second), 100, 300)

	var gc GroupCount
	f.groupCount(&gc, leader)
	if gc.Enabled != time.Second {
		t.Fatalf("got Enabled %v", gc.Enabled)
	}
	if len(gc.Values) != 2 {
		t.Fatalf("got %d values", len(gc.Values))
	}
	if gc.Values[0].Value != 100 || gc.Values[0].Label != "instructions" {
		t.Fatalf("leader: got %+v", gc.Values[0])
	}
	if gc.Values[1].Value != 300 || gc.Values[1].Label != "cpu-cycles" {
		t.Fatalf("follower: got %+v", gc.Values[1])
	}
}

func TestCounterConfigure(t *testing.T) {
	attr := new(Attr)
	Instructions.Configure(attr)
	if attr.Type != HardwareEvent || attr.Config != unix.PERF_COUNT_HW_INSTRUCTIONS {
		t.Fatalf("got %+v", attr)
	}
	if attr.Label != "instructions" {
		t.Fatalf("got label %q", attr.Label)
	}

	PageFaults.Configure(attr)
	if attr.Type != SoftwareEvent || attr.Config != unix.PERF_COUNT_SW_PAGE_FAULTS {
		t.Fatalf("got %+v", attr)
	}
}

func TestIoctlErrorUnwrap(t *testing.T) {
	err := wrapIoctlError("PERF_EVENT_IOC_ENABLE", unix.EBADF)
	if err.Error() != "PERF_EVENT_IOC_ENABLE: bad file descriptor" {
		t.Fatalf("got %q", err.Error())
	}
	if e, ok := err.(*ioctlError); !ok || e.Unwrap() != unix.EBADF {
		t.Fatalf("got %#v", err)
	}
	if wrapIoctlError("x", nil) != nil {
		t.Fatal("wrapping nil error produced non-nil error")
	}
}

// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"errors"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// Special pid values for Open.
const (
	// CallingThread configures the event to measure the calling thread.
	CallingThread = 0

	// AllThreads configures the event to measure all threads on the
	// specified CPU.
	AllThreads = -1
)

// AnyCPU configures the specified process/thread to be measured on any CPU.
const AnyCPU = -1

// Event states.
const (
	eventStateUninitialized = 0
	eventStateOK            = 1
	eventStateClosed        = 2
)

// Event is an active perf event.
type Event struct {
	// state is the state of the event. See eventState* constants.
	state int32

	// fd is the event file descriptor.
	fd int

	// group contains other events in the event group, if this event is an
	// event group leader. The leader owns them and closes them in Close.
	group []*Event

	// attr is the set of attributes the Event was configured with.
	// It is a clone of the original.
	attr *Attr
}

// Open opens the event configured by attr.
//
// The pid and cpu parameters specify which thread and CPU to monitor:
//
//   - if pid == CallingThread and cpu == AnyCPU, the event measures
//     the calling thread on any CPU
//
//   - if pid == CallingThread and cpu >= 0, the event measures
//     the calling thread only when running on the specified CPU
//
//   - if pid > 0 and cpu == AnyCPU, the event measures the specified
//     thread on any CPU
//
//   - if pid > 0 and cpu >= 0, the event measures the specified thread
//     only when running on the specified CPU
//
//   - if pid == AllThreads and cpu >= 0, the event measures all threads
//     on the specified CPU
//
//   - finally, the pid == AllThreads and cpu == AnyCPU setting is invalid
//
// If group is non-nil, the returned Event is made part of the group
// associated with the specified group Event, and the attr.Options.Disabled
// setting is ignored: the group leader controls when the entire group is
// enabled.
func Open(attr *Attr, pid, cpu int, group *Event) (*Event, error) {
	groupfd := -1
	if group != nil {
		if err := group.ok(); err != nil {
			return nil, err
		}
		groupfd = group.fd
	}
	fd, err := unix.PerfEventOpen(attr.sysAttr(), pid, cpu, groupfd, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("perf_event_open", err)
	}
	attrClone := new(Attr)
	*attrClone = *attr // ok to copy since no slices
	ev := &Event{
		state: eventStateOK,
		fd:    fd,
		attr:  attrClone,
	}
	if group != nil {
		group.group = append(group.group, ev)
	}
	return ev, nil
}

func (ev *Event) ok() error {
	if ev == nil {
		return os.ErrInvalid
	}
	switch ev.state {
	case eventStateUninitialized:
		return os.ErrInvalid
	case eventStateOK:
		return nil
	default: // eventStateClosed
		return os.ErrClosed
	}
}

// Measure disables the event, resets it, enables it, runs f, disables it again,
// then reads the Count associated with the event.
func (ev *Event) Measure(f func()) (Count, error) {
	if err := ev.arm(); err != nil {
		return Count{}, err
	}
	f()
	if err := ev.Disable(); err != nil {
		return Count{}, err
	}
	return ev.ReadCount()
}

// MeasureGroup is like Measure, but for event groups.
func (ev *Event) MeasureGroup(f func()) (GroupCount, error) {
	if err := ev.arm(); err != nil {
		return GroupCount{}, err
	}
	f()
	if err := ev.Disable(); err != nil {
		return GroupCount{}, err
	}
	return ev.ReadGroupCount()
}

// arm disables, resets and re-enables the event.
func (ev *Event) arm() error {
	if err := ev.Disable(); err != nil {
		return err
	}
	if err := ev.Reset(); err != nil {
		return err
	}
	return ev.Enable()
}

// Enable enables the event.
func (ev *Event) Enable() error {
	if err := ev.ok(); err != nil {
		return err
	}
	return ioctlEnable(ev.fd)
}

// Disable disables the event.
func (ev *Event) Disable() error {
	if err := ev.ok(); err != nil {
		return err
	}
	return ioctlDisable(ev.fd)
}

// Reset resets the counters associated with the event.
func (ev *Event) Reset() error {
	if err := ev.ok(); err != nil {
		return err
	}
	return ioctlReset(ev.fd)
}

// ID returns the unique event ID value for ev.
func (ev *Event) ID() (uint64, error) {
	if err := ev.ok(); err != nil {
		return 0, err
	}
	var id uint64
	err := ioctlID(ev.fd, &id)
	return id, err
}

// Count is a measurement taken by an Event.
//
// The Value field is always present and populated.
//
// The Enabled field is populated if CountFormat.Enabled is set on the Event
// the Count was read from. Ditto for Running and ID.
//
// Label is set based on the Label field of the Attr associated with the
// event.
type Count struct {
	Value   uint64
	Enabled time.Duration
	Running time.Duration
	ID      uint64
	Label   string
}

// ReadCount reads the measurement associated with ev. If the Event was
// configured with CountFormat.Group, ReadCount returns an error.
func (ev *Event) ReadCount() (Count, error) {
	var c Count
	if err := ev.ok(); err != nil {
		return c, err
	}
	if ev.attr.CountFormat.Group {
		return c, errors.New("perf: calling ReadCount on group Event")
	}
	buf := make([]byte, ev.attr.CountFormat.readSize())
	_, err := unix.Read(ev.fd, buf)
	if err != nil {
		return c, os.NewSyscallError("read", err)
	}
	f := fields(buf)
	f.count(&c, ev)
	return c, nil
}

// GroupCount is a group of measurements taken by an Event group.
//
// Fields are populated as described in the Count documentation. Values[0]
// is the group leader, followed by the other events in the order they
// were opened.
type GroupCount struct {
	Enabled time.Duration
	Running time.Duration
	Values  []struct {
		Value, ID uint64
		Label     string
	}
}

// ReadGroupCount reads the measurements associated with ev. If the Event
// was not configued with CountFormat.Group, ReadGroupCount returns an error.
func (ev *Event) ReadGroupCount() (GroupCount, error) {
	var gc GroupCount
	if err := ev.ok(); err != nil {
		return gc, err
	}
	if !ev.attr.CountFormat.Group {
		return gc, errors.New("perf: calling ReadGroupCount on non-group Event")
	}
	headerSize := ev.attr.CountFormat.groupReadHeaderSize()
	countsSize := (1 + len(ev.group)) * ev.attr.CountFormat.groupReadCountSize()
	buf := make([]byte, headerSize+countsSize)
	_, err := unix.Read(ev.fd, buf)
	if err != nil {
		return gc, os.NewSyscallError("read", err)
	}
	f := fields(buf)
	f.groupCount(&gc, ev)
	return gc, nil
}

// Close closes the event, and every event in its group if ev is a group
// leader. Close must not be called concurrently with any other methods on
// the Event.
func (ev *Event) Close() error {
	if err := ev.ok(); err != nil {
		return err
	}
	var first error
	for _, member := range ev.group {
		if err := member.Close(); err != nil && first == nil {
			first = err
		}
	}
	ev.state = eventStateClosed
	if err := unix.Close(ev.fd); err != nil && first == nil {
		first = os.NewSyscallError("close", err)
	}
	return first
}

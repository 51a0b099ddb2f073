// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"acln.ro/pisum/internal/perf"
)

// perfTestEnv holds and caches information about the testing environment
// for package perf.
type perfTestEnv struct {
	paranoid struct {
		sync.Once
		value int
	}

	open struct {
		sync.Once
		err error
	}

	pmu struct {
		sync.Mutex
		ok      map[string]struct{}
		missing map[string]error
	}
}

func (env *perfTestEnv) paranoidLevel() int {
	env.paranoid.Once.Do(env.initParanoid)
	return env.paranoid.value
}

func (env *perfTestEnv) initParanoid() {
	content, err := os.ReadFile("/proc/sys/kernel/perf_event_paranoid")
	if err != nil {
		env.paranoid.value = 3
		return
	}
	nr := strings.TrimSpace(string(content))
	paranoid, err := strconv.ParseInt(nr, 10, 32)
	if err != nil {
		env.paranoid.value = 3
		return
	}
	env.paranoid.value = int(paranoid)
}

func (env *perfTestEnv) havePMU(u string) (bool, error) {
	env.pmu.Lock()
	defer env.pmu.Unlock()

	if env.pmu.ok == nil {
		env.pmu.ok = map[string]struct{}{}
	}
	if env.pmu.missing == nil {
		env.pmu.missing = map[string]error{}
	}

	if _, ok := env.pmu.ok[u]; ok {
		return true, nil
	}
	if err, ok := env.pmu.missing[u]; ok {
		return false, err
	}

	_, err := os.Stat(filepath.Join("/sys/bus/event_source/devices", u, "type"))
	if err != nil {
		env.pmu.missing[u] = err
		return false, err
	}

	env.pmu.ok[u] = struct{}{}
	return true, nil
}

var testenv perfTestEnv

// kernelSupport requires perf_event_open(2) support from the kernel, and
// permission to call it: seccomp filters in containers commonly deny it
// even when the kernel supports it.
type kernelSupport struct{}

func (kernelSupport) Evaluate() error {
	if !perf.Supported() {
		return errors.New("perf_event_open not supported")
	}
	testenv.open.Once.Do(func() {
		attr := new(perf.Attr)
		perf.TaskClock.Configure(attr)
		attr.Options.ExcludeKernel = true
		attr.Options.ExcludeHypervisor = true
		ev, err := perf.Open(attr, perf.CallingThread, perf.AnyCPU, nil)
		if err != nil {
			testenv.open.err = err
			return
		}
		ev.Close()
	})
	return testenv.open.err
}

// paranoid specifies a perf_event_paranoid level requirement for a test.
//
// For example, a value of 1 for paranoid means that the test requires a
// perf_event_paranoid level of 1 or less.
type paranoid int

func (p paranoid) Evaluate() error {
	want, have := int(p), testenv.paranoidLevel()
	if have > want {
		return fmt.Errorf("want perf_event_paranoid <= %d, have %d", want, have)
	}
	return nil
}

// pmu specifies a PMU requirement for a test.
type pmu string

var (
	hardwarePMU = pmu("hardware")
	softwarePMU = pmu("software")
)

func (u pmu) Evaluate() error {
	device := string(u)
	if device == "hardware" {
		device = "cpu"
	}
	if ok, err := testenv.havePMU(device); !ok {
		return fmt.Errorf("%s PMU not supported: %v", device, err)
	}
	return nil
}

type testRequirement interface {
	Evaluate() error
}

func requires(t *testing.T, reqs ...testRequirement) {
	t.Helper()

	sb := new(strings.Builder)
	unmet := 0

	for _, req := range append([]testRequirement{kernelSupport{}}, reqs...) {
		if err := req.Evaluate(); err != nil {
			if unmet > 0 {
				sb.WriteString("; ")
			}
			fmt.Fprint(sb, err)
			unmet++
		}
	}

	switch unmet {
	case 0:
		return
	case 1:
		t.Skipf("unmet requirement: %s", sb.String())
	default:
		t.Skipf("unmet requirements: %s", sb.String())
	}
}

// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package pisum

// Profile is only implemented on Linux. Elsewhere it returns
// ErrProfileUnsupported.
func Profile(p Params) (Counters, error) {
	return Counters{}, ErrProfileUnsupported
}

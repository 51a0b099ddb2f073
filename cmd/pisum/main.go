// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pisum approximates π with 100,000,000 terms of the alternating
// reciprocal series and prints the result and the time it took.
package main

import (
	"log"
	"os"

	"acln.ro/pisum"
)

func main() {
	log.SetFlags(0)
	if _, err := pisum.Run(os.Stdout, pisum.DefaultParams()); err != nil {
		log.Fatal(err)
	}
}

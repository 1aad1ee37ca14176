// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"time"
)

const (
	iterationsEventually   = 200
	iterationsConsistently = 20
	interval               = 5 * time.Millisecond
)

func Eventually(f func() bool) bool {
	for i := 0; i < iterationsEventually; i++ {
		if f() {
			return true
		}
		time.Sleep(interval)
	}
	return false
}

func Consistently(f func() bool) bool {
	for i := 0; i < iterationsConsistently; i++ {
		if !f() {
			return false
		}
		time.Sleep(interval)
	}
	return true
}

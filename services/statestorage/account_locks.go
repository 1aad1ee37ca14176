// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"sort"
	"sync"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/pkg/errors"
)

type accountLocks struct {
	mutex sync.Mutex
	locks map[protocol.Address]chan struct{}
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[protocol.Address]chan struct{})}
}

func (l *accountLocks) lockFor(address protocol.Address) chan struct{} {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	lock, ok := l.locks[address]
	if !ok {
		lock = make(chan struct{}, 1)
		l.locks[address] = lock
	}
	return lock
}

// acquire takes the locks in address order so concurrent callers cannot deadlock
func (l *accountLocks) acquire(ctx context.Context, addresses []protocol.Address) (func(), error) {
	sorted := sortedUnique(addresses)

	held := make([]chan struct{}, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, address := range sorted {
		lock := l.lockFor(address)
		select {
		case lock <- struct{}{}:
			held = append(held, lock)
		case <-ctx.Done():
			release()
			return nil, errors.Wrapf(ErrAccountLockTimeout, "account %s: %s", address, ctx.Err())
		}
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func sortedUnique(addresses []protocol.Address) []protocol.Address {
	sorted := make([]protocol.Address, len(addresses))
	copy(sorted, addresses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Compare(sorted[j]) < 0 })

	unique := sorted[:0]
	for i, address := range sorted {
		if i == 0 || address != sorted[i-1] {
			unique = append(unique, address)
		}
	}
	return unique
}

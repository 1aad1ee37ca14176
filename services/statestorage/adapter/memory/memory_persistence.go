// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"sync"

	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type metrics struct {
	numberOfAccounts *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		numberOfAccounts: m.NewGauge("StateStoragePersistence.TotalNumberOfAccounts.Count"),
	}
}

type InMemoryStatePersistence struct {
	metrics  *metrics
	mutex    sync.RWMutex
	accounts map[protocol.Address]*protocol.Account
	height   primitives.BlockHeight
}

func NewStatePersistence(metricFactory metric.Factory) *InMemoryStatePersistence {
	return &InMemoryStatePersistence{
		metrics:  newMetrics(metricFactory),
		accounts: make(map[protocol.Address]*protocol.Account),
	}
}

func (sp *InMemoryStatePersistence) Write(height primitives.BlockHeight, accounts []*protocol.Account) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	for _, account := range accounts {
		if account.IsEmpty() {
			delete(sp.accounts, account.Address)
			continue
		}
		sp.accounts[account.Address] = account.Clone()
	}
	sp.height = height
	sp.metrics.numberOfAccounts.Update(int64(len(sp.accounts)))
	return nil
}

func (sp *InMemoryStatePersistence) Read(address protocol.Address) (*protocol.Account, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	account, ok := sp.accounts[address]
	if !ok {
		return nil, false, nil
	}
	return account.Clone(), true, nil
}

func (sp *InMemoryStatePersistence) ReadMetadata() (primitives.BlockHeight, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	return sp.height, nil
}

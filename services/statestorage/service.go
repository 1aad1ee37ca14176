// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package statestorage

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/statestorage/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var LogTag = log.Service("state-storage")

var (
	ErrStaleAccountVersion = errors.New("account changed since it was read")
	ErrDuplicateAccount    = errors.New("account appears twice in state diff")
	ErrAccountLockTimeout  = errors.New("timed out waiting for account lock")
	ErrBalanceOverflow     = errors.New("balance overflows")
)

type StateStorage interface {
	// ReadAccounts returns one account per address; addresses never committed read as empty accounts of version 0
	ReadAccounts(ctx context.Context, addresses []protocol.Address) ([]*protocol.Account, error)
	// CommitStateDiff writes all accounts or none; each must carry the version it was read at
	CommitStateDiff(ctx context.Context, accounts []*protocol.Account) (primitives.BlockHeight, error)
	LockAccounts(ctx context.Context, addresses []protocol.Address) (unlock func(), err error)
	GetStateStorageBlockHeight(ctx context.Context) (primitives.BlockHeight, error)
	Airdrop(ctx context.Context, address protocol.Address, amount uint64) (primitives.BlockHeight, error)
}

type metrics struct {
	blockHeight  *metric.Gauge
	commitTime   *metric.Histogram
	staleCommits *metric.Gauge
	lockWaitTime *metric.Histogram
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		blockHeight:  m.NewGauge("StateStorage.BlockHeight"),
		commitTime:   m.NewLatency("StateStorage.CommitTime.Millis", 5*time.Second),
		staleCommits: m.NewGauge("StateStorage.StaleCommits.Count"),
		lockWaitTime: m.NewLatency("StateStorage.LockWaitTime.Millis", 30*time.Second),
	}
}

type service struct {
	logger      log.Logger
	persistence adapter.StatePersistence
	metrics     *metrics
	locks       *accountLocks

	commitMutex sync.Mutex
}

func NewStateStorage(persistence adapter.StatePersistence, parentLogger log.Logger, metricFactory metric.Factory) StateStorage {
	s := &service{
		logger:      parentLogger.WithTags(LogTag),
		persistence: persistence,
		metrics:     newMetrics(metricFactory),
		locks:       newAccountLocks(),
	}

	if height, err := persistence.ReadMetadata(); err == nil {
		s.metrics.blockHeight.UpdateUint64(uint64(height))
		s.logger.Info("state storage loaded", logfields.BlockHeight(height))
	} else {
		s.logger.Error("failed to read state metadata", log.Error(err))
	}

	return s
}

func (s *service) ReadAccounts(ctx context.Context, addresses []protocol.Address) ([]*protocol.Account, error) {
	accounts := make([]*protocol.Account, 0, len(addresses))
	for _, address := range addresses {
		account, err := s.readAccount(address)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *service) readAccount(address protocol.Address) (*protocol.Account, error) {
	account, found, err := s.persistence.Read(address)
	if err != nil {
		return nil, err
	}
	if !found {
		return protocol.EmptyAccount(address), nil
	}
	return account, nil
}

func (s *service) CommitStateDiff(ctx context.Context, accounts []*protocol.Account) (primitives.BlockHeight, error) {
	s.commitMutex.Lock()
	defer s.commitMutex.Unlock()

	start := time.Now()
	defer s.metrics.commitTime.RecordSince(start)

	height, err := s.persistence.ReadMetadata()
	if err != nil {
		return 0, err
	}

	seen := make(map[protocol.Address]bool, len(accounts))
	next := make([]*protocol.Account, 0, len(accounts))
	for _, account := range accounts {
		if seen[account.Address] {
			return height, errors.Wrapf(ErrDuplicateAccount, "account %s", account.Address)
		}
		seen[account.Address] = true

		current, err := s.readAccount(account.Address)
		if err != nil {
			return height, err
		}
		if current.Version != account.Version {
			s.metrics.staleCommits.Inc()
			return height, errors.Wrapf(ErrStaleAccountVersion, "account %s read at version %d, now at %d", account.Address, account.Version, current.Version)
		}

		committed := account.Clone()
		committed.Version++
		next = append(next, committed)
	}

	height++
	if err := s.persistence.Write(height, next); err != nil {
		return height - 1, errors.Wrap(err, "failed to write state diff")
	}

	s.metrics.blockHeight.UpdateUint64(uint64(height))
	s.logger.Info("state diff committed", logfields.BlockHeight(height), log.Int("accounts", len(next)))

	return height, nil
}

func (s *service) LockAccounts(ctx context.Context, addresses []protocol.Address) (func(), error) {
	start := time.Now()
	defer s.metrics.lockWaitTime.RecordSince(start)

	return s.locks.acquire(ctx, addresses)
}

func (s *service) GetStateStorageBlockHeight(ctx context.Context) (primitives.BlockHeight, error) {
	return s.persistence.ReadMetadata()
}

func (s *service) Airdrop(ctx context.Context, address protocol.Address, amount uint64) (primitives.BlockHeight, error) {
	unlock, err := s.LockAccounts(ctx, []protocol.Address{address})
	if err != nil {
		return 0, err
	}
	defer unlock()

	account, err := s.readAccount(address)
	if err != nil {
		return 0, err
	}
	if account.Balance > math.MaxUint64-amount {
		return 0, errors.Wrapf(ErrBalanceOverflow, "account %s", address)
	}
	account.Balance += amount

	height, err := s.CommitStateDiff(ctx, []*protocol.Account{account})
	if err != nil {
		return 0, err
	}

	s.logger.Info("airdrop committed", logfields.Address("recipient", address), &log.Field{Key: "amount", Uint: amount, Type: log.UintType})
	return height, nil
}

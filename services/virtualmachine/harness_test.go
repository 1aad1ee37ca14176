// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"testing"
	"time"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	"github.com/orbs-network/knowledge-directory/services/statestorage/adapter/memory"
	"github.com/orbs-network/knowledge-directory/test/with"
	"github.com/stretchr/testify/require"
)

const testRentPerByte = 10

type harness struct {
	vm           VirtualMachine
	stateStorage statestorage.StateStorage
}

func newHarness(parent *with.LoggingHarness, repository native.Repository) *harness {
	return newHarnessWithLockTimeout(parent, repository, time.Second)
}

func newHarnessWithLockTimeout(parent *with.LoggingHarness, repository native.Repository, lockTimeout time.Duration) *harness {
	registry := metric.NewRegistry()
	cfg := config.EmptyConfig().
		SetUint32(config.VIRTUAL_MACHINE_RENT_PER_BYTE, testRentPerByte).
		SetDuration(config.VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT, lockTimeout)

	stateStorage := statestorage.NewStateStorage(memory.NewStatePersistence(registry), parent.Logger, registry)
	processor := native.NewNativeProcessorWithRepository(repository, parent.Logger, registry)

	return &harness{
		vm:           NewVirtualMachine(stateStorage, processor, cfg, parent.Logger, registry),
		stateStorage: stateStorage,
	}
}

func (h *harness) fund(t testing.TB, ctx context.Context, address protocol.Address, amount uint64) {
	_, err := h.stateStorage.Airdrop(ctx, address, amount)
	require.NoError(t, err)
}

func (h *harness) process(ctx context.Context, tx *protocol.SignedTransaction) (*protocol.TransactionReceipt, error) {
	output, err := h.vm.ProcessTransaction(ctx, &ProcessTransactionInput{SignedTransaction: tx})
	return output.TransactionReceipt, err
}

func (h *harness) account(t testing.TB, ctx context.Context, address protocol.Address) *protocol.Account {
	accounts, err := h.stateStorage.ReadAccounts(ctx, []protocol.Address{address})
	require.NoError(t, err)
	return accounts[0]
}

func (h *harness) height(t testing.TB, ctx context.Context) uint64 {
	height, err := h.stateStorage.GetStateStorageBlockHeight(ctx)
	require.NoError(t, err)
	return uint64(height)
}

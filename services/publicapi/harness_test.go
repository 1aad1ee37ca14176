// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"

	"github.com/orbs-network/go-mock"
	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	"github.com/orbs-network/knowledge-directory/services/statestorage/adapter/memory"
	"github.com/orbs-network/knowledge-directory/services/virtualmachine"
	"github.com/orbs-network/knowledge-directory/test/with"
)

type mockVirtualMachine struct {
	mock.Mock
}

func (m *mockVirtualMachine) ProcessTransaction(ctx context.Context, input *virtualmachine.ProcessTransactionInput) (*virtualmachine.ProcessTransactionOutput, error) {
	ret := m.Called(ctx, input)
	output, _ := ret.Get(0).(*virtualmachine.ProcessTransactionOutput)
	return output, ret.Error(1)
}

type harness struct {
	papi         PublicApi
	vm           *mockVirtualMachine
	stateStorage statestorage.StateStorage
}

func newHarness(parent *with.LoggingHarness, cfg config.NodeConfig) *harness {
	registry := metric.NewRegistry()
	vm := &mockVirtualMachine{}
	stateStorage := statestorage.NewStateStorage(memory.NewStatePersistence(registry), parent.Logger, registry)

	return &harness{
		papi:         NewPublicApi(cfg, vm, stateStorage, parent.Logger, registry),
		vm:           vm,
		stateStorage: stateStorage,
	}
}

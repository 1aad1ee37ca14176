// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"

	"github.com/orbs-network/govnr"
	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/services/processor/native"
	"github.com/orbs-network/knowledge-directory/services/publicapi"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	stateStorageAdapter "github.com/orbs-network/knowledge-directory/services/statestorage/adapter"
	"github.com/orbs-network/knowledge-directory/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
)

type NodeLogic interface {
	govnr.ShutdownWaiter
	PublicApi() publicapi.PublicApi
	StateStorage() statestorage.StateStorage
}

type nodeLogic struct {
	govnr.TreeSupervisor
	publicApi    publicapi.PublicApi
	stateStorage statestorage.StateStorage
}

func NewNodeLogic(
	ctx context.Context,
	statePersistence stateStorageAdapter.StatePersistence,
	logger log.Logger,
	metricRegistry metric.Registry,
	nodeConfig config.NodeConfig,
) NodeLogic {

	stateStorageService := statestorage.NewStateStorage(statePersistence, logger, metricRegistry)
	nativeProcessor := native.NewNativeProcessor(logger, metricRegistry)
	virtualMachineService := virtualmachine.NewVirtualMachine(stateStorageService, nativeProcessor, nodeConfig, logger, metricRegistry)
	publicApiService := publicapi.NewPublicApi(nodeConfig, virtualMachineService, stateStorageService, logger, metricRegistry)

	n := &nodeLogic{
		publicApi:    publicApiService,
		stateStorage: stateStorageService,
	}

	n.Supervise(metric.NewRuntimeReporter(ctx, metricRegistry, logger))
	n.Supervise(metric.NewSystemReporter(ctx, metricRegistry, logger))
	if endpoint := nodeConfig.NTPEndpoint(); endpoint != "" {
		n.Supervise(metric.NewNtpReporter(ctx, metricRegistry, logger, endpoint))
	}
	n.Supervise(metricRegistry.ReportEvery(ctx, nodeConfig.MetricsReportInterval(), logger))

	return n
}

func (n *nodeLogic) PublicApi() publicapi.PublicApi {
	return n.publicApi
}

func (n *nodeLogic) StateStorage() statestorage.StateStorage {
	return n.stateStorage
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/orbs-network/govnr"
	"github.com/orbs-network/knowledge-directory/bootstrap/httpserver"
	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	stateStorageAdapter "github.com/orbs-network/knowledge-directory/services/statestorage/adapter"
	"github.com/orbs-network/knowledge-directory/services/statestorage/adapter/memory"
	"github.com/orbs-network/knowledge-directory/services/statestorage/adapter/sqlite"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type Node interface {
	govnr.ShutdownWaiter
	GracefulShutdown(shutdownContext context.Context)
	HttpPort() int
}

type node struct {
	logger       log.Logger
	logic        NodeLogic
	httpServer   httpserver.HttpServer
	closeStorage func() error
	shutdownTime time.Duration
	ctxCancel    context.CancelFunc

	shutdownOnce sync.Once
	closed       chan struct{}
}

func NewNode(nodeConfig config.NodeConfig, logger log.Logger) (Node, error) {
	ctx, ctxCancel := context.WithCancel(context.Background())

	metricRegistry := metric.NewRegistry()
	metric.RegisterConfigIndicators(metricRegistry, nodeConfig)

	statePersistence, closeStorage, err := newStatePersistence(nodeConfig, metricRegistry)
	if err != nil {
		ctxCancel()
		return nil, err
	}

	nodeLogic := NewNodeLogic(ctx, statePersistence, logger, metricRegistry, nodeConfig)
	httpServer, err := httpserver.NewHttpServer(nodeConfig, logger, nodeLogic.PublicApi(), metricRegistry)
	if err != nil {
		ctxCancel()
		_ = closeStorage()
		return nil, err
	}

	logger.Info("node started", log.String("version", config.GetVersion().String()), log.Int("http-port", httpServer.Port()))

	return &node{
		logger:       logger,
		logic:        nodeLogic,
		httpServer:   httpServer,
		closeStorage: closeStorage,
		shutdownTime: nodeConfig.HttpShutdownTimeout(),
		ctxCancel:    ctxCancel,
		closed:       make(chan struct{}),
	}, nil
}

func newStatePersistence(nodeConfig config.NodeConfig, metricRegistry metric.Registry) (stateStorageAdapter.StatePersistence, func() error, error) {
	path := nodeConfig.StateStorageSqlitePath()
	if path == "" {
		return memory.NewStatePersistence(metricRegistry), func() error { return nil }, nil
	}

	persistence, err := sqlite.NewStatePersistence(path, metricRegistry)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open state storage")
	}
	return persistence, persistence.Close, nil
}

func (n *node) HttpPort() int {
	return n.httpServer.Port()
}

// GracefulShutdown stops accepting requests before state storage is closed
func (n *node) GracefulShutdown(shutdownContext context.Context) {
	n.shutdownOnce.Do(func() {
		timeout := n.shutdownTime
		if deadline, ok := shutdownContext.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		n.httpServer.GracefulShutdown(timeout)
		n.ctxCancel()
		n.logic.WaitUntilShutdown(shutdownContext)
		if err := n.closeStorage(); err != nil {
			n.logger.Error("failed to close state storage", log.Error(err))
		}
		close(n.closed)
	})
}

func (n *node) WaitUntilShutdown(shutdownContext context.Context) {
	select {
	case <-n.closed:
	case <-shutdownContext.Done():
	}
}

// ListenToOSShutdownSignal shuts the node down on SIGINT or SIGTERM
func ListenToOSShutdownSignal(logger log.Logger, n Node, timeout time.Duration) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	govnr.Once(logfields.GovnrErrorer(logger), func() {
		<-signalChan
		logger.Info("terminating node gracefully due to os signal received")

		shutdownContext, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		n.GracefulShutdown(shutdownContext)
	})
}

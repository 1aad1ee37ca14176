// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"time"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	"github.com/orbs-network/knowledge-directory/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
	"golang.org/x/time/rate"
)

var LogTag = log.Service("public-api")

type PublicApi interface {
	SendTransaction(ctx context.Context, input *SendTransactionInput) (*SendTransactionOutput, error)
	GetAccount(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error)
	GetContribution(ctx context.Context, input *GetContributionInput) (*GetContributionOutput, error)
	RequestAirdrop(ctx context.Context, input *RequestAirdropInput) (*RequestAirdropOutput, error)
}

type service struct {
	config         config.PublicApiConfig
	virtualMachine virtualmachine.VirtualMachine
	stateStorage   statestorage.StateStorage
	logger         log.Logger
	limiter        *rate.Limiter

	metrics *metrics
}

type metrics struct {
	sendTransactionTime              *metric.Histogram
	transactionsRate                 *metric.Rate
	totalTransactionsFromClients     *metric.Gauge
	totalTransactionsErrNilRequest   *metric.Gauge
	totalTransactionsErrRateLimited  *metric.Gauge
	totalTransactionsErrNotCommitted *metric.Gauge
	totalAirdrops                    *metric.Gauge
}

func newMetrics(factory metric.Factory, sendTransactionTimeout time.Duration) *metrics {
	return &metrics{
		sendTransactionTime:              factory.NewLatency("PublicApi.SendTransactionProcessingTime.Millis", sendTransactionTimeout),
		transactionsRate:                 factory.NewRate("PublicApi.TransactionsFromClientsPerSecond"),
		totalTransactionsFromClients:     factory.NewGauge("PublicApi.TotalTransactionsFromClients.Count"),
		totalTransactionsErrNilRequest:   factory.NewGauge("PublicApi.TotalTransactionsErrNilRequest.Count"),
		totalTransactionsErrRateLimited:  factory.NewGauge("PublicApi.TotalTransactionsErrRateLimited.Count"),
		totalTransactionsErrNotCommitted: factory.NewGauge("PublicApi.TotalTransactionsErrNotCommitted.Count"),
		totalAirdrops:                    factory.NewGauge("PublicApi.TotalAirdrops.Count"),
	}
}

func NewPublicApi(
	config config.PublicApiConfig,
	virtualMachine virtualmachine.VirtualMachine,
	stateStorage statestorage.StateStorage,
	logger log.Logger,
	metricFactory metric.Factory,
) PublicApi {
	return &service{
		config:         config,
		virtualMachine: virtualMachine,
		stateStorage:   stateStorage,
		logger:         logger.WithTags(LogTag),
		limiter:        rate.NewLimiter(rate.Limit(config.PublicApiTransactionsPerSecond()), int(config.PublicApiTransactionsBurst())),

		metrics: newMetrics(metricFactory, config.SendTransactionTimeout()),
	}
}

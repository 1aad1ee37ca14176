// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/scribe/log"
)

type StatusResponse struct {
	Uptime int64

	BlockHeight struct {
		StateStorage int64
	}

	Accounts struct {
		Total int64
	}

	Version config.Version
}

func (s *server) getStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := StatusResponse{
		Uptime:  int64(time.Since(s.startTime) / time.Second),
		Version: config.GetVersion(),
	}
	status.BlockHeight.StateStorage = metricGetGaugeValue(s.logger, s.metricRegistry, "StateStorage.BlockHeight")
	status.Accounts.Total = metricGetGaugeValue(s.logger, s.metricRegistry, "StateStoragePersistence.TotalNumberOfAccounts.Count")

	data, _ := json.MarshalIndent(status, "", "  ")

	_, err := w.Write(data)
	if err != nil {
		s.logger.Info("error writing status response", log.Error(err))
	}
}

func metricGetGaugeValue(logger log.Logger, metrics metric.Registry, name string) (value int64) {
	exported, found := metrics.ExportAll()[name]
	if !found {
		logger.Info("could not retrieve metric", log.String("metric", name))
		return 0
	}

	rows := exported.LogRow()
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Int
}

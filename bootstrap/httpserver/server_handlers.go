// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/publicapi"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
)

type requestAirdropRequest struct {
	Address protocol.Address `json:"address"`
	Amount  uint64           `json:"amount"`
}

func (s *server) robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, err := w.Write([]byte("User-agent: *\nDisallow: /\n"))
	if err != nil {
		s.logger.Info("error writing robots.txt response", log.Error(err))
	}
}

func (s *server) filterOn(w http.ResponseWriter, r *http.Request) {
	s.toggleFilters(w, r, true)
}

func (s *server) filterOff(w http.ResponseWriter, r *http.Request) {
	s.toggleFilters(w, r, false)
}

func (s *server) toggleFilters(w http.ResponseWriter, r *http.Request, on bool) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, f := range s.logger.Filters() {
		if c, ok := f.(log.ConditionalFilter); ok {
			if on {
				c.On()
			} else {
				c.Off()
			}
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	if on {
		w.Write([]byte("filter on"))
	} else {
		w.Write([]byte("filter off"))
	}
}

func (s *server) dumpMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	bytes, _ := json.Marshal(s.metricRegistry.ExportAll())
	_, err := w.Write(bytes)
	if err != nil {
		s.logger.Info("error writing response", log.Error(err))
	}
}

func (s *server) sendTransactionHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodPost); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	bytes, e := readInput(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	signedTx := &protocol.SignedTransaction{}
	if e := decodeJson(bytes, signedTx); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	if signedTx.Transaction == nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusBadRequest, nil, "http request is missing a transaction"})
		return
	}

	s.logger.Info("http server received send-transaction", logfields.Program(signedTx.Transaction.ProgramId))
	result, err := s.publicApi.SendTransaction(r.Context(), &publicapi.SendTransactionInput{SignedTransaction: signedTx})
	if result == nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "send-transaction returned no result"})
		return
	}

	var executionResult protocol.ExecutionResult
	var height primitives.BlockHeight
	if receipt := result.TransactionReceipt; receipt != nil {
		executionResult = receipt.ExecutionResult
		height = receipt.BlockHeight
	}
	s.writeJsonResponse(w, result, result.RequestStatus, executionResult, height, err)
}

func (s *server) getAccountHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodGet); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	address, e := addressFromQuery(r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	result, err := s.publicApi.GetAccount(r.Context(), &publicapi.GetAccountInput{Address: address})
	if result == nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "get-account returned no result"})
		return
	}
	s.writeJsonResponse(w, result, result.RequestStatus, protocol.EXECUTION_RESULT_RESERVED, result.BlockHeight, err)
}

func (s *server) getContributionHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodGet); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	address, e := addressFromQuery(r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	result, err := s.publicApi.GetContribution(r.Context(), &publicapi.GetContributionInput{Address: address})
	if result == nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "get-contribution returned no result"})
		return
	}
	s.writeJsonResponse(w, result, result.RequestStatus, protocol.EXECUTION_RESULT_RESERVED, result.BlockHeight, err)
}

func (s *server) requestAirdropHandler(w http.ResponseWriter, r *http.Request) {
	if e := requireMethod(r, http.MethodPost); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}
	bytes, e := readInput(w, r)
	if e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	request := &requestAirdropRequest{}
	if e := decodeJson(bytes, request); e != nil {
		s.writeErrorResponseAndLog(w, e)
		return
	}

	s.logger.Info("http server received request-airdrop", logfields.Address("recipient", request.Address), log.Uint64("amount", request.Amount))
	result, err := s.publicApi.RequestAirdrop(r.Context(), &publicapi.RequestAirdropInput{Address: request.Address, Amount: request.Amount})
	if result == nil {
		s.writeErrorResponseAndLog(w, &httpErr{http.StatusInternalServerError, log.Error(err), "request-airdrop returned no result"})
		return
	}
	s.writeJsonResponse(w, result, result.RequestStatus, protocol.EXECUTION_RESULT_RESERVED, result.BlockHeight, err)
}

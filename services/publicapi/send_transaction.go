// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"time"

	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
)

type SendTransactionInput struct {
	SignedTransaction *protocol.SignedTransaction
}

type SendTransactionOutput struct {
	RequestStatus      RequestStatus                `json:"requestStatus"`
	TransactionReceipt *protocol.TransactionReceipt `json:"transactionReceipt,omitempty"`
}

func (s *service) SendTransaction(parentCtx context.Context, input *SendTransactionInput) (*SendTransactionOutput, error) {
	start := time.Now()
	s.metrics.totalTransactionsFromClients.Inc()
	s.metrics.transactionsRate.Measure(1)

	if input == nil || input.SignedTransaction == nil {
		s.metrics.totalTransactionsErrNilRequest.Inc()
		s.logger.Info("send transaction received missing input", log.Error(ErrNilRequest))
		return &SendTransactionOutput{RequestStatus: REQUEST_STATUS_REJECTED}, ErrNilRequest
	}

	if !s.limiter.Allow() {
		s.metrics.totalTransactionsErrRateLimited.Inc()
		return &SendTransactionOutput{RequestStatus: REQUEST_STATUS_CONGESTION}, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(parentCtx, s.config.SendTransactionTimeout())
	defer cancel()

	output, err := s.virtualMachine.ProcessTransaction(ctx, &virtualmachine.ProcessTransactionInput{SignedTransaction: input.SignedTransaction})
	if output == nil || output.TransactionReceipt == nil {
		s.metrics.totalTransactionsErrNotCommitted.Inc()
		s.logger.Error("virtual machine returned no receipt", log.Error(err))
		return &SendTransactionOutput{RequestStatus: REQUEST_STATUS_SYSTEM_ERROR}, err
	}

	receipt := output.TransactionReceipt
	if err != nil {
		s.metrics.totalTransactionsErrNotCommitted.Inc()
		s.logger.Info("transaction not committed", logfields.Transaction(receipt.TxHash), logfields.ExecutionResult(receipt.ExecutionResult), log.Error(err))
	} else {
		s.metrics.sendTransactionTime.RecordSince(start)
	}

	return &SendTransactionOutput{
		RequestStatus:      translateExecutionResultToRequestStatus(receipt.ExecutionResult),
		TransactionReceipt: receipt,
	}, err
}

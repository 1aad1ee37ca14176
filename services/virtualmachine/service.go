// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"time"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/crypto/digest"
	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var LogTag = log.Service("virtual-machine")

type ProcessTransactionInput struct {
	SignedTransaction *protocol.SignedTransaction
}

type ProcessTransactionOutput struct {
	TransactionReceipt *protocol.TransactionReceipt
}

type VirtualMachine interface {
	// ProcessTransaction always returns a receipt; the error is the reason its result is not SUCCESS
	ProcessTransaction(ctx context.Context, input *ProcessTransactionInput) (*ProcessTransactionOutput, error)
}

type metrics struct {
	processTransactionTime *metric.Histogram
	transactionsRate       *metric.Rate
	successfulTransactions *metric.Gauge
	failedTransactions     *metric.Gauge
}

func newMetrics(m metric.Factory) *metrics {
	return &metrics{
		processTransactionTime: m.NewLatency("VirtualMachine.ProcessTransactionTime.Millis", 30*time.Second),
		transactionsRate:       m.NewRate("VirtualMachine.TransactionsPerSecond"),
		successfulTransactions: m.NewGauge("VirtualMachine.SuccessfulTransactions.Count"),
		failedTransactions:     m.NewGauge("VirtualMachine.FailedTransactions.Count"),
	}
}

type service struct {
	stateStorage statestorage.StateStorage
	processor    native.Processor
	config       config.VirtualMachineConfig
	logger       log.Logger
	metrics      *metrics
}

func NewVirtualMachine(
	stateStorage statestorage.StateStorage,
	processor native.Processor,
	config config.VirtualMachineConfig,
	parentLogger log.Logger,
	metricFactory metric.Factory,
) VirtualMachine {
	return &service{
		stateStorage: stateStorage,
		processor:    processor,
		config:       config,
		logger:       parentLogger.WithTags(LogTag),
		metrics:      newMetrics(metricFactory),
	}
}

func (s *service) ProcessTransaction(ctx context.Context, input *ProcessTransactionInput) (*ProcessTransactionOutput, error) {
	start := time.Now()
	defer s.metrics.processTransactionTime.RecordSince(start)
	s.metrics.transactionsRate.Measure(1)

	receipt := &protocol.TransactionReceipt{}
	if err := validateTransaction(input.SignedTransaction); err != nil {
		return s.fail(ctx, s.logger, receipt, err)
	}

	receipt.TxHash = digest.CalcTxHash(input.SignedTransaction.Transaction)
	logger := s.logger.WithTags(logfields.Transaction(receipt.TxHash))

	if err := verifyTransactionSignatures(input.SignedTransaction, receipt.TxHash); err != nil {
		return s.fail(ctx, logger, receipt, err)
	}

	output, height, err := s.execute(ctx, input.SignedTransaction.Transaction)
	if err != nil {
		return s.fail(ctx, logger, receipt, err)
	}

	receipt.BlockHeight = height
	receipt.ExecutionResult = protocol.EXECUTION_RESULT_SUCCESS
	receipt.Output = output
	s.metrics.successfulTransactions.Inc()
	logger.Info("transaction committed", logfields.BlockHeight(height), logfields.Program(input.SignedTransaction.Transaction.ProgramId))

	return &ProcessTransactionOutput{TransactionReceipt: receipt}, nil
}

func (s *service) fail(ctx context.Context, logger log.Logger, receipt *protocol.TransactionReceipt, err error) (*ProcessTransactionOutput, error) {
	receipt.ExecutionResult = protocol.ResultOf(err)
	receipt.Error = err.Error()
	if height, heightErr := s.stateStorage.GetStateStorageBlockHeight(ctx); heightErr == nil {
		receipt.BlockHeight = height
	}
	s.metrics.failedTransactions.Inc()
	logger.Info("transaction failed", logfields.ExecutionResult(receipt.ExecutionResult), log.Error(err))

	return &ProcessTransactionOutput{TransactionReceipt: receipt}, err
}

func (s *service) execute(ctx context.Context, tx *protocol.Transaction) ([]byte, primitives.BlockHeight, error) {
	unlock, err := s.lockWritableAccounts(ctx, tx)
	if err != nil {
		return nil, 0, protocol.UnexpectedFailure(err)
	}
	defer unlock()

	addresses := make([]protocol.Address, len(tx.Accounts))
	for i, meta := range tx.Accounts {
		addresses[i] = meta.Address
	}
	accounts, err := s.stateStorage.ReadAccounts(ctx, addresses)
	if err != nil {
		return nil, 0, protocol.UnexpectedFailure(errors.Wrap(err, "failed to read accounts"))
	}

	state := newTransientState(tx.Accounts, accounts)
	callOutput, err := s.processor.ProcessCall(ctx, &native.ProcessCallInput{
		Invocation: &invocation{programId: tx.ProgramId, state: state, rentPerByte: s.config.VirtualMachineRentPerByte()},
		Data:       tx.Data,
	})
	if err != nil {
		return nil, 0, err
	}

	if err := verifyAccountChanges(tx.ProgramId, state); err != nil {
		return nil, 0, err
	}

	dirty := state.dirtyAccounts()
	if len(dirty) == 0 {
		height, err := s.stateStorage.GetStateStorageBlockHeight(ctx)
		if err != nil {
			return nil, 0, protocol.UnexpectedFailure(err)
		}
		return callOutput.Output, height, nil
	}

	height, err := s.stateStorage.CommitStateDiff(ctx, dirty)
	if err != nil {
		return nil, 0, protocol.UnexpectedFailure(errors.Wrap(err, "failed to commit state diff"))
	}

	return callOutput.Output, height, nil
}

func (s *service) lockWritableAccounts(ctx context.Context, tx *protocol.Transaction) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.config.VirtualMachineAccountLockTimeout())
	defer cancel()

	return s.stateStorage.LockAccounts(lockCtx, tx.WritableAddresses())
}

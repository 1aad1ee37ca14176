// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"
	"fmt"
	"time"

	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

var LogTag = log.Service("processor-native")

var ErrProgramNotDeployed = errors.New("program is not deployed")
var ErrProgramPanicked = errors.New("program panicked")

type ProcessCallInput struct {
	Invocation types.Invocation
	Data       []byte
}

type ProcessCallOutput struct {
	Output     []byte
	CallResult protocol.ExecutionResult
}

type Processor interface {
	ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error)
}

type Repository interface {
	ProgramInfo(ctx context.Context, programId protocol.Address) (*types.ProgramInfo, error)
}

type service struct {
	logger     log.Logger
	repository Repository
	metrics    *metrics
}

type metrics struct {
	processCallTime *metric.Histogram
	failedCalls     *metric.Gauge
}

func getMetrics(m metric.Factory) *metrics {
	return &metrics{
		processCallTime: m.NewLatency("Processor.Native.ProcessCallTime.Millis", 10*time.Second),
		failedCalls:     m.NewGauge("Processor.Native.FailedCalls.Count"),
	}
}

func NewNativeProcessor(parentLogger log.Logger, metricFactory metric.Factory) Processor {
	return NewNativeProcessorWithRepository(&PrebuiltRepository{}, parentLogger, metricFactory)
}

func NewNativeProcessorWithRepository(repository Repository, parentLogger log.Logger, metricFactory metric.Factory) Processor {
	return &service{
		logger:     parentLogger.WithTags(LogTag),
		repository: repository,
		metrics:    getMetrics(metricFactory),
	}
}

func (s *service) ProcessCall(ctx context.Context, input *ProcessCallInput) (*ProcessCallOutput, error) {
	programId := input.Invocation.ProgramId()
	logger := s.logger.WithTags(logfields.Program(programId))

	programInfo, err := s.repository.ProgramInfo(ctx, programId)
	if err != nil {
		return &ProcessCallOutput{CallResult: protocol.EXECUTION_RESULT_ERROR_UNEXPECTED}, protocol.UnexpectedFailure(err)
	}
	if programInfo == nil {
		return &ProcessCallOutput{CallResult: protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED}, protocol.NotDeployedFailure(errors.Wrapf(ErrProgramNotDeployed, "program %s", programId))
	}

	start := time.Now()
	defer s.metrics.processCallTime.RecordSince(start)

	logger.Info("processor executing program", log.String("program-name", programInfo.Name))

	output, err := s.processMethodCall(ctx, programInfo, input)
	if err != nil {
		s.metrics.failedCalls.Inc()
		result := protocol.ResultOf(err)
		logger.Info("program returned error", log.String("program-name", programInfo.Name), logfields.ExecutionResult(result), log.Error(err))

		return &ProcessCallOutput{CallResult: result}, err
	}

	return &ProcessCallOutput{
		Output:     output,
		CallResult: protocol.EXECUTION_RESULT_SUCCESS,
	}, nil
}

func (s *service) processMethodCall(ctx context.Context, programInfo *types.ProgramInfo, input *ProcessCallInput) (output []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = errors.Wrap(ErrProgramPanicked, fmt.Sprintf("%s: %v", programInfo.Name, r))
		}
	}()

	return programInfo.Process(ctx, input.Invocation, input.Data)
}

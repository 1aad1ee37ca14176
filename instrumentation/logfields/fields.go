// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package logfields

import (
	"runtime/debug"

	"github.com/orbs-network/govnr"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
)

func Transaction(txHash primitives.Sha256) *log.Field {
	return log.Stringable("txHash", txHash)
}

func BlockHeight(value primitives.BlockHeight) *log.Field {
	return &log.Field{Key: "block-height", Uint: uint64(value), Type: log.UintType}
}

func Address(key string, address protocol.Address) *log.Field {
	return log.String(key, address.String())
}

func Program(programId protocol.Address) *log.Field {
	return Address("program", programId)
}

func ExecutionResult(result protocol.ExecutionResult) *log.Field {
	return log.String("execution-result", result.String())
}

type Errorer interface {
	Error(message string, fields ...*log.Field)
}

type govnrErrorer struct {
	logger Errorer
}

func (e *govnrErrorer) Error(err error) {
	e.logger.Error("recovered panic", log.Error(err), log.String("stack-trace", string(debug.Stack())))
}

// GovnrErrorer adapts a logger to the errorer govnr reports recovered panics to
func GovnrErrorer(logger Errorer) govnr.Errorer {
	return &govnrErrorer{logger}
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

type ExecutionResult uint8

const (
	EXECUTION_RESULT_RESERVED ExecutionResult = iota
	EXECUTION_RESULT_SUCCESS
	EXECUTION_RESULT_ERROR_SMART_CONTRACT
	EXECUTION_RESULT_ERROR_INPUT
	EXECUTION_RESULT_ERROR_AUTHORIZATION
	EXECUTION_RESULT_ERROR_ALLOCATION
	EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED
	EXECUTION_RESULT_ERROR_UNEXPECTED
)

var executionResultNames = map[ExecutionResult]string{
	EXECUTION_RESULT_RESERVED:                    "RESERVED",
	EXECUTION_RESULT_SUCCESS:                     "SUCCESS",
	EXECUTION_RESULT_ERROR_SMART_CONTRACT:        "ERROR_SMART_CONTRACT",
	EXECUTION_RESULT_ERROR_INPUT:                 "ERROR_INPUT",
	EXECUTION_RESULT_ERROR_AUTHORIZATION:         "ERROR_AUTHORIZATION",
	EXECUTION_RESULT_ERROR_ALLOCATION:            "ERROR_ALLOCATION",
	EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED: "ERROR_CONTRACT_NOT_DEPLOYED",
	EXECUTION_RESULT_ERROR_UNEXPECTED:            "ERROR_UNEXPECTED",
}

func (r ExecutionResult) String() string {
	if name, found := executionResultNames[r]; found {
		return name
	}
	return "UNKNOWN"
}

func (r ExecutionResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *ExecutionResult) UnmarshalText(text []byte) error {
	for result, name := range executionResultNames {
		if name == string(text) {
			*r = result
			return nil
		}
	}
	return errors.Errorf("unknown execution result %q", string(text))
}

type TransactionReceipt struct {
	TxHash          primitives.Sha256      `json:"txHash"`
	BlockHeight     primitives.BlockHeight `json:"blockHeight"`
	ExecutionResult ExecutionResult        `json:"executionResult"`
	Output          []byte                 `json:"output,omitempty"`
	Error           string                 `json:"error,omitempty"`
}

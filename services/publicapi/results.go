// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/pkg/errors"
)

type RequestStatus string

const (
	REQUEST_STATUS_COMPLETED    RequestStatus = "COMPLETED"
	REQUEST_STATUS_REJECTED     RequestStatus = "REJECTED"
	REQUEST_STATUS_NOT_FOUND    RequestStatus = "NOT_FOUND"
	REQUEST_STATUS_CONGESTION   RequestStatus = "CONGESTION"
	REQUEST_STATUS_SYSTEM_ERROR RequestStatus = "SYSTEM_ERROR"
)

var (
	ErrNilRequest       = errors.New("client request is nil")
	ErrRateLimited      = errors.New("too many transactions, try again later")
	ErrAirdropDisabled  = errors.New("airdrops are disabled on this node")
	ErrInvalidAirdrop   = errors.New("airdrop amount out of range")
	ErrNotAContribution = errors.New("account does not hold a contribution")
	ErrAccountNotFound  = errors.New("account not found")
)

func translateExecutionResultToRequestStatus(result protocol.ExecutionResult) RequestStatus {
	switch result {
	case protocol.EXECUTION_RESULT_SUCCESS:
		return REQUEST_STATUS_COMPLETED
	case protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT,
		protocol.EXECUTION_RESULT_ERROR_INPUT,
		protocol.EXECUTION_RESULT_ERROR_AUTHORIZATION,
		protocol.EXECUTION_RESULT_ERROR_ALLOCATION,
		protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED:
		return REQUEST_STATUS_REJECTED
	default:
		return REQUEST_STATUS_SYSTEM_ERROR
	}
}

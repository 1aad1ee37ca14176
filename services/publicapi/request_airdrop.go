// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"

	"github.com/orbs-network/knowledge-directory/instrumentation/logfields"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type RequestAirdropInput struct {
	Address protocol.Address
	Amount  uint64
}

type RequestAirdropOutput struct {
	RequestStatus RequestStatus          `json:"requestStatus"`
	BlockHeight   primitives.BlockHeight `json:"blockHeight"`
}

// RequestAirdrop credits test funds so clients can pay rent
func (s *service) RequestAirdrop(ctx context.Context, input *RequestAirdropInput) (*RequestAirdropOutput, error) {
	if !s.config.PublicApiAirdropEnabled() {
		return &RequestAirdropOutput{RequestStatus: REQUEST_STATUS_REJECTED}, ErrAirdropDisabled
	}
	if input.Amount == 0 || input.Amount > s.config.PublicApiAirdropMaxAmount() {
		return &RequestAirdropOutput{RequestStatus: REQUEST_STATUS_REJECTED}, errors.Wrapf(ErrInvalidAirdrop, "requested %d, max is %d", input.Amount, s.config.PublicApiAirdropMaxAmount())
	}
	if !s.limiter.Allow() {
		s.metrics.totalTransactionsErrRateLimited.Inc()
		return &RequestAirdropOutput{RequestStatus: REQUEST_STATUS_CONGESTION}, ErrRateLimited
	}

	height, err := s.stateStorage.Airdrop(ctx, input.Address, input.Amount)
	if err != nil {
		if errors.Cause(err) == statestorage.ErrBalanceOverflow {
			return &RequestAirdropOutput{RequestStatus: REQUEST_STATUS_REJECTED}, err
		}
		s.logger.Error("airdrop failed", logfields.Address("recipient", input.Address), log.Error(err))
		return &RequestAirdropOutput{RequestStatus: REQUEST_STATUS_SYSTEM_ERROR}, err
	}

	s.metrics.totalAirdrops.Inc()
	return &RequestAirdropOutput{RequestStatus: REQUEST_STATUS_COMPLETED, BlockHeight: height}, nil
}

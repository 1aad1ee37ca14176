// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository/Contributions"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

type GetAccountInput struct {
	Address protocol.Address
}

type GetAccountOutput struct {
	RequestStatus RequestStatus          `json:"requestStatus"`
	BlockHeight   primitives.BlockHeight `json:"blockHeight"`
	Account       *protocol.Account      `json:"account,omitempty"`
}

type GetContributionInput struct {
	Address protocol.Address
}

type GetContributionOutput struct {
	RequestStatus RequestStatus               `json:"requestStatus"`
	BlockHeight   primitives.BlockHeight      `json:"blockHeight"`
	Contribution  *contributions.Contribution `json:"contribution,omitempty"`
}

func (s *service) GetAccount(ctx context.Context, input *GetAccountInput) (*GetAccountOutput, error) {
	account, height, err := s.readAccount(ctx, input.Address)
	if err != nil {
		return &GetAccountOutput{RequestStatus: REQUEST_STATUS_SYSTEM_ERROR}, err
	}
	if account.IsEmpty() {
		return &GetAccountOutput{RequestStatus: REQUEST_STATUS_NOT_FOUND, BlockHeight: height}, errors.Wrapf(ErrAccountNotFound, "account %s", input.Address)
	}
	return &GetAccountOutput{RequestStatus: REQUEST_STATUS_COMPLETED, BlockHeight: height, Account: account}, nil
}

func (s *service) GetContribution(ctx context.Context, input *GetContributionInput) (*GetContributionOutput, error) {
	account, height, err := s.readAccount(ctx, input.Address)
	if err != nil {
		return &GetContributionOutput{RequestStatus: REQUEST_STATUS_SYSTEM_ERROR}, err
	}
	if account.IsEmpty() {
		return &GetContributionOutput{RequestStatus: REQUEST_STATUS_NOT_FOUND, BlockHeight: height}, errors.Wrapf(ErrAccountNotFound, "account %s", input.Address)
	}
	if account.Owner != contributions.PROGRAM_ID {
		return &GetContributionOutput{RequestStatus: REQUEST_STATUS_REJECTED, BlockHeight: height}, errors.Wrapf(ErrNotAContribution, "account %s is owned by %s", input.Address, account.Owner)
	}

	contribution, err := contributions.DecodeAccount(account.Data)
	if err != nil {
		return &GetContributionOutput{RequestStatus: REQUEST_STATUS_REJECTED, BlockHeight: height}, errors.Wrapf(ErrNotAContribution, "account %s: %s", input.Address, err)
	}

	return &GetContributionOutput{RequestStatus: REQUEST_STATUS_COMPLETED, BlockHeight: height, Contribution: contribution}, nil
}

func (s *service) readAccount(ctx context.Context, address protocol.Address) (*protocol.Account, primitives.BlockHeight, error) {
	height, err := s.stateStorage.GetStateStorageBlockHeight(ctx)
	if err != nil {
		return nil, 0, err
	}
	accounts, err := s.stateStorage.ReadAccounts(ctx, []protocol.Address{address})
	if err != nil {
		return nil, 0, err
	}
	return accounts[0], height, nil
}

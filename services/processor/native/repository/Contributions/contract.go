// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributions

import (
	"context"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
	"github.com/orbs-network/membuffers/go"
	"github.com/pkg/errors"
)

const PROGRAM_NAME = "KnowledgeDirectory"

var PROGRAM_ID = types.ProgramIdFromName(PROGRAM_NAME)

var PROGRAM = types.ProgramInfo{
	Id:      PROGRAM_ID,
	Name:    PROGRAM_NAME,
	Process: process,
}

func process(ctx context.Context, invocation types.Invocation, data []byte) ([]byte, error) {
	instruction, err := DecodeInstruction(data)
	if err != nil {
		return nil, protocol.InputFailure(err)
	}

	switch instruction := instruction.(type) {
	case *CreateContribution:
		return createContribution(invocation, instruction)
	case *RateContribution:
		return rateContribution(invocation, instruction)
	default:
		return nil, protocol.InputFailure(errors.Wrapf(ErrInstructionFallbackNotFound, "instruction %s", instruction.Name()))
	}
}

// accounts: [0] new contribution slot, [1] user (payer and creator), [2] system program
func createContribution(invocation types.Invocation, instruction *CreateContribution) ([]byte, error) {
	accounts := invocation.Accounts()
	if len(accounts) < 3 {
		return nil, errors.Wrapf(ErrNotEnoughAccountKeys, "%s needs 3 accounts, got %d", instruction.Name(), len(accounts))
	}
	slot, user, systemProgram := accounts[0], accounts[1], accounts[2]

	if err := requireSignerAndWritable(user); err != nil {
		return nil, err
	}
	if systemProgram.Address != protocol.SYSTEM_PROGRAM_ID {
		return nil, errors.Wrapf(ErrInvalidProgramId, "expected system program, got %s", systemProgram.Address)
	}

	contribution, err := NewContribution(instruction.Uri, user.Address)
	if err != nil {
		return nil, err
	}

	if err := invocation.Allocate(slot, user, ACCOUNT_SIZE_BYTES); err != nil {
		return nil, err
	}

	if err := EncodeAccount(slot.Data, contribution); err != nil {
		return nil, err
	}

	return slot.Address.Bytes(), nil
}

// accounts: [0] contribution, [1] user, [2] token program (declared, never invoked)
func rateContribution(invocation types.Invocation, instruction *RateContribution) ([]byte, error) {
	accounts := invocation.Accounts()
	if len(accounts) < 3 {
		return nil, errors.Wrapf(ErrNotEnoughAccountKeys, "%s needs 3 accounts, got %d", instruction.Name(), len(accounts))
	}
	contributionAccount, user, tokenProgram := accounts[0], accounts[1], accounts[2]

	if err := requireOwnedBy(contributionAccount, invocation.ProgramId()); err != nil {
		return nil, err
	}
	if !contributionAccount.IsWritable {
		return nil, errors.Wrapf(ErrAccountNotMutable, "contribution %s", contributionAccount.Address)
	}
	if err := requireSignerAndWritable(user); err != nil {
		return nil, err
	}
	if tokenProgram.Address != protocol.TOKEN_PROGRAM_ID {
		return nil, errors.Wrapf(ErrInvalidProgramId, "expected token program, got %s", tokenProgram.Address)
	}

	contribution, err := DecodeAccount(contributionAccount.Data)
	if err != nil {
		return nil, err
	}

	if err := contribution.Rate(instruction.Rating); err != nil {
		return nil, err
	}

	if err := EncodeAccount(contributionAccount.Data, contribution); err != nil {
		return nil, err
	}

	output := make([]byte, RATING_SIZE_BYTES)
	membuffers.WriteUint64(output, contribution.Rating)
	return output, nil
}

func requireSignerAndWritable(account *types.AccountInfo) error {
	if !account.IsSigner {
		return protocol.AuthorizationFailure(errors.Wrapf(ErrAccountNotSigner, "account %s", account.Address))
	}
	if !account.IsWritable {
		return errors.Wrapf(ErrAccountNotMutable, "account %s", account.Address)
	}
	return nil
}

func requireOwnedBy(account *types.AccountInfo, programId protocol.Address) error {
	if account.Owner == protocol.SYSTEM_PROGRAM_ID && account.Balance == 0 {
		return errors.Wrapf(ErrAccountNotInitialized, "account %s", account.Address)
	}
	if account.Owner != programId {
		return errors.Wrapf(ErrAccountOwnedByWrongProgram, "account %s is owned by %s", account.Address, account.Owner)
	}
	return nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"math"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
	"github.com/pkg/errors"
)

const (
	ACCOUNT_STORAGE_OVERHEAD_BYTES = 128
	MAX_ACCOUNT_DATA_SIZE_BYTES    = 10 * 1024 * 1024
)

type invocation struct {
	programId   protocol.Address
	state       *transientState
	rentPerByte uint64
}

func (i *invocation) ProgramId() protocol.Address {
	return i.programId
}

func (i *invocation) Accounts() []*types.AccountInfo {
	return i.state.infos
}

func RentFor(space uint64, rentPerByte uint64) (uint64, bool) {
	if space > math.MaxUint64-ACCOUNT_STORAGE_OVERHEAD_BYTES {
		return 0, false
	}
	size := ACCOUNT_STORAGE_OVERHEAD_BYTES + space
	if rentPerByte != 0 && size > math.MaxUint64/rentPerByte {
		return 0, false
	}
	return size * rentPerByte, true
}

func (i *invocation) Allocate(slot *types.AccountInfo, payer *types.AccountInfo, space uint64) error {
	slotIndex, found := i.state.indexOf(slot)
	if !found {
		return protocol.AllocationFailure(ErrUnknownAccount)
	}
	payerIndex, found := i.state.indexOf(payer)
	if !found {
		return protocol.AllocationFailure(ErrUnknownAccount)
	}

	slotMeta, payerMeta := i.state.metas[slotIndex], i.state.metas[payerIndex]
	if !slotMeta.IsSigner || !slotMeta.IsWritable {
		return protocol.AllocationFailure(errors.Wrapf(ErrAllocationSlotNotSigner, "account %s", slotMeta.Address))
	}
	if !payerMeta.IsSigner || !payerMeta.IsWritable {
		return protocol.AuthorizationFailure(errors.Wrapf(ErrPayerNotSigner, "account %s", payerMeta.Address))
	}

	slotBase, payerBase := i.state.baseline[slotIndex], i.state.baseline[payerIndex]
	if slotIndex == payerIndex || !slotBase.IsEmpty() {
		return protocol.AllocationFailure(errors.Wrapf(ErrAccountAlreadyInUse, "account %s", slotMeta.Address))
	}
	if space > MAX_ACCOUNT_DATA_SIZE_BYTES {
		return protocol.AllocationFailure(errors.Wrapf(ErrAccountDataTooLarge, "%d > %d", space, MAX_ACCOUNT_DATA_SIZE_BYTES))
	}

	rent, ok := RentFor(space, i.rentPerByte)
	if !ok || payerBase.Balance < rent {
		return protocol.AllocationFailure(errors.Wrapf(ErrInsufficientFundsForRent, "account %s has %d, rent is %d", payerMeta.Address, payerBase.Balance, rent))
	}

	payerBase.Balance -= rent
	payer.Balance -= rent

	slotBase.Balance = rent
	slotBase.Owner = i.programId
	slotBase.Data = make([]byte, space)
	slot.Balance = rent
	slot.Owner = i.programId
	slot.Data = make([]byte, space)

	return nil
}

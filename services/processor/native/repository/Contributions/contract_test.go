// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributions

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
	"github.com/orbs-network/knowledge-directory/test/crypto/keys"
	"github.com/orbs-network/membuffers/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

var errNoFunds = errors.New("no funds")

type fakeInvocation struct {
	accounts    []*types.AccountInfo
	allocations int
	allocateErr error
}

func (f *fakeInvocation) ProgramId() protocol.Address {
	return PROGRAM_ID
}

func (f *fakeInvocation) Accounts() []*types.AccountInfo {
	return f.accounts
}

func (f *fakeInvocation) Allocate(slot *types.AccountInfo, payer *types.AccountInfo, space uint64) error {
	if f.allocateErr != nil {
		return f.allocateErr
	}
	f.allocations++
	slot.Data = make([]byte, space)
	slot.Owner = PROGRAM_ID
	slot.Balance = 1
	payer.Balance--
	return nil
}

func newSlot() *types.AccountInfo {
	return &types.AccountInfo{Address: keys.AddressForTests(9), IsSigner: true, IsWritable: true}
}

func newUser(i int) *types.AccountInfo {
	return &types.AccountInfo{Address: keys.AddressForTests(i), IsSigner: true, IsWritable: true, Balance: 100}
}

func systemProgram() *types.AccountInfo {
	return &types.AccountInfo{Address: protocol.SYSTEM_PROGRAM_ID}
}

func tokenProgram() *types.AccountInfo {
	return &types.AccountInfo{Address: protocol.TOKEN_PROGRAM_ID}
}

func run(invocation types.Invocation, instruction Instruction) ([]byte, error) {
	return PROGRAM.Process(context.Background(), invocation, EncodeInstruction(instruction))
}

func rate(t *testing.T, slot *types.AccountInfo, rater *types.AccountInfo, rating uint8) (uint64, error) {
	output, err := run(&fakeInvocation{accounts: []*types.AccountInfo{slot, rater, tokenProgram()}}, &RateContribution{Rating: rating})
	if err != nil {
		require.Nil(t, output)
		return 0, err
	}
	require.Len(t, output, RATING_SIZE_BYTES)
	return membuffers.GetUint64(output), nil
}

func requireStored(t *testing.T, slot *types.AccountInfo, expected *Contribution) {
	stored, err := DecodeAccount(slot.Data)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(expected, stored), "stored contribution differs")
}

func TestContributionLifecycle(t *testing.T) {
	slot, u1 := newSlot(), newUser(1)

	output, err := run(&fakeInvocation{accounts: []*types.AccountInfo{slot, u1, systemProgram()}}, &CreateContribution{Uri: "ipfs://abc"})
	require.NoError(t, err)
	require.Equal(t, slot.Address.Bytes(), output, "create should return the slot address")
	require.Equal(t, PROGRAM_ID, slot.Owner)
	requireStored(t, slot, &Contribution{Uri: "ipfs://abc", Creator: u1.Address, Rating: 0})

	rating, err := rate(t, slot, u1, 3)
	require.NoError(t, err)
	require.EqualValues(t, 3, rating)

	_, err = rate(t, slot, u1, 0)
	require.Equal(t, ErrInvalidRating, errors.Cause(err))
	requireStored(t, slot, &Contribution{Uri: "ipfs://abc", Creator: u1.Address, Rating: 3})

	rating, err = rate(t, slot, u1, 5)
	require.NoError(t, err)
	require.EqualValues(t, 8, rating)

	_, err = rate(t, slot, u1, 6)
	require.Equal(t, ErrInvalidRating, errors.Cause(err))
	requireStored(t, slot, &Contribution{Uri: "ipfs://abc", Creator: u1.Address, Rating: 8})
}

func TestRateContribution_AnySignerMayRate(t *testing.T) {
	slot, creator := newSlot(), newUser(1)
	_, err := run(&fakeInvocation{accounts: []*types.AccountInfo{slot, creator, systemProgram()}}, &CreateContribution{Uri: "ipfs://abc"})
	require.NoError(t, err)

	for i := 2; i < 5; i++ {
		_, err := rate(t, slot, newUser(i), 1)
		require.NoError(t, err, "user %d should be able to rate", i)
	}

	requireStored(t, slot, &Contribution{Uri: "ipfs://abc", Creator: creator.Address, Rating: 3})
}

func TestCreateContribution_OversizedUriFailsBeforeAllocation(t *testing.T) {
	slot := newSlot()
	invocation := &fakeInvocation{accounts: []*types.AccountInfo{slot, newUser(1), systemProgram()}}

	_, err := run(invocation, &CreateContribution{Uri: "ipfs://" + strings.Repeat("a", URI_MAX_SIZE_BYTES)})

	require.Equal(t, ErrRecordTooLarge, errors.Cause(err))
	require.Zero(t, invocation.allocations, "no storage should be allocated")
	require.Nil(t, slot.Data)
}

func TestCreateContribution_PropagatesAllocationFailure(t *testing.T) {
	invocation := &fakeInvocation{
		accounts:    []*types.AccountInfo{newSlot(), newUser(1), systemProgram()},
		allocateErr: protocol.AllocationFailure(errNoFunds),
	}

	_, err := run(invocation, &CreateContribution{Uri: "ipfs://abc"})

	require.Equal(t, errNoFunds, errors.Cause(err))
	require.Equal(t, protocol.EXECUTION_RESULT_ERROR_ALLOCATION, protocol.ResultOf(err))
}

func TestCreateContribution_RequiresSigningUser(t *testing.T) {
	user := newUser(1)
	user.IsSigner = false
	invocation := &fakeInvocation{accounts: []*types.AccountInfo{newSlot(), user, systemProgram()}}

	_, err := run(invocation, &CreateContribution{Uri: "ipfs://abc"})

	require.Equal(t, ErrAccountNotSigner, errors.Cause(err))
	require.Equal(t, protocol.EXECUTION_RESULT_ERROR_AUTHORIZATION, protocol.ResultOf(err))
	require.Zero(t, invocation.allocations)
}

func TestCreateContribution_RequiresSystemProgram(t *testing.T) {
	invocation := &fakeInvocation{accounts: []*types.AccountInfo{newSlot(), newUser(1), tokenProgram()}}

	_, err := run(invocation, &CreateContribution{Uri: "ipfs://abc"})

	require.Equal(t, ErrInvalidProgramId, errors.Cause(err))
}

func TestCreateContribution_NotEnoughAccounts(t *testing.T) {
	_, err := run(&fakeInvocation{accounts: []*types.AccountInfo{newSlot(), newUser(1)}}, &CreateContribution{Uri: "ipfs://abc"})
	require.Equal(t, ErrNotEnoughAccountKeys, errors.Cause(err))
}

func createdSlot(t *testing.T) *types.AccountInfo {
	slot := newSlot()
	_, err := run(&fakeInvocation{accounts: []*types.AccountInfo{slot, newUser(1), systemProgram()}}, &CreateContribution{Uri: "ipfs://abc"})
	require.NoError(t, err)
	slot.IsSigner = false
	return slot
}

func TestRateContribution_UninitializedSlot(t *testing.T) {
	slot := &types.AccountInfo{Address: keys.AddressForTests(8), IsWritable: true}

	_, err := rate(t, slot, newUser(1), 3)
	require.Equal(t, ErrAccountNotInitialized, errors.Cause(err))
}

func TestRateContribution_ForeignAccount(t *testing.T) {
	slot := createdSlot(t)
	slot.Owner = protocol.TOKEN_PROGRAM_ID

	_, err := rate(t, slot, newUser(1), 3)
	require.Equal(t, ErrAccountOwnedByWrongProgram, errors.Cause(err))
}

func TestRateContribution_ReadonlySlot(t *testing.T) {
	slot := createdSlot(t)
	slot.IsWritable = false

	_, err := rate(t, slot, newUser(1), 3)
	require.Equal(t, ErrAccountNotMutable, errors.Cause(err))
}

func TestRateContribution_UnsignedRater(t *testing.T) {
	slot := createdSlot(t)
	rater := newUser(2)
	rater.IsSigner = false

	_, err := rate(t, slot, rater, 3)
	require.Equal(t, protocol.EXECUTION_RESULT_ERROR_AUTHORIZATION, protocol.ResultOf(err))
	requireStored(t, slot, &Contribution{Uri: "ipfs://abc", Creator: keys.AddressForTests(1), Rating: 0})
}

func TestRateContribution_RequiresTokenProgramReference(t *testing.T) {
	slot := createdSlot(t)
	_, err := run(&fakeInvocation{accounts: []*types.AccountInfo{slot, newUser(1), systemProgram()}}, &RateContribution{Rating: 3})
	require.Equal(t, ErrInvalidProgramId, errors.Cause(err))
}

func TestRateContribution_OverflowLeavesRecord(t *testing.T) {
	slot := createdSlot(t)
	require.NoError(t, EncodeAccount(slot.Data, &Contribution{Uri: "ipfs://abc", Creator: keys.AddressForTests(1), Rating: ^uint64(0)}))

	_, err := rate(t, slot, newUser(1), 1)
	require.Equal(t, ErrRatingOverflow, errors.Cause(err))
	requireStored(t, slot, &Contribution{Uri: "ipfs://abc", Creator: keys.AddressForTests(1), Rating: ^uint64(0)})
}

func TestProcess_GarbageInstructionIsInputError(t *testing.T) {
	_, err := PROGRAM.Process(context.Background(), &fakeInvocation{}, []byte{0xde, 0xad})
	require.Equal(t, ErrInstructionMissing, errors.Cause(err))
	require.Equal(t, protocol.EXECUTION_RESULT_ERROR_INPUT, protocol.ResultOf(err))
}

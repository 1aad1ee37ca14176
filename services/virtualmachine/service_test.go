// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository/Contributions"
	"github.com/orbs-network/knowledge-directory/services/statestorage"
	"github.com/orbs-network/knowledge-directory/test"
	"github.com/orbs-network/knowledge-directory/test/builders"
	"github.com/orbs-network/knowledge-directory/test/crypto/keys"
	"github.com/orbs-network/knowledge-directory/test/with"
	"github.com/orbs-network/membuffers/go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const funds = 1000000

func requireRating(t *testing.T, receipt *protocol.TransactionReceipt, expected uint64) {
	require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, receipt.ExecutionResult, receipt.Error)
	require.Len(t, receipt.Output, contributions.RATING_SIZE_BYTES)
	require.EqualValues(t, expected, membuffers.GetUint64(receipt.Output))
}

func TestProcessTransaction_ContributionLifecycle(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, &native.PrebuiltRepository{})
			u1, slot := keys.Ed25519KeyPairForTests(1), keys.Ed25519KeyPairForTests(9)
			h.fund(t, ctx, u1.Address(), funds)

			receipt, err := h.process(ctx, builders.CreateContributionTransaction(u1, slot, "ipfs://abc").Build())
			require.NoError(t, err)
			require.Equal(t, protocol.EXECUTION_RESULT_SUCCESS, receipt.ExecutionResult, receipt.Error)
			require.Equal(t, slot.Address().Bytes(), receipt.Output)
			require.EqualValues(t, 2, receipt.BlockHeight)

			rent, _ := RentFor(contributions.ACCOUNT_SIZE_BYTES, testRentPerByte)
			require.EqualValues(t, funds-rent, h.account(t, ctx, u1.Address()).Balance)

			receipt, err = h.process(ctx, builders.RateContributionTransaction(u1, slot.Address(), 3).Build())
			require.NoError(t, err)
			requireRating(t, receipt, 3)

			receipt, err = h.process(ctx, builders.RateContributionTransaction(u1, slot.Address(), 0).Build())
			require.Equal(t, contributions.ErrInvalidRating, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, receipt.ExecutionResult)

			receipt, err = h.process(ctx, builders.RateContributionTransaction(u1, slot.Address(), 5).Build())
			require.NoError(t, err)
			requireRating(t, receipt, 8)

			receipt, err = h.process(ctx, builders.RateContributionTransaction(u1, slot.Address(), 6).Build())
			require.Equal(t, contributions.ErrInvalidRating, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, receipt.ExecutionResult)

			stored := h.account(t, ctx, slot.Address())
			require.Equal(t, contributions.PROGRAM_ID, stored.Owner)
			require.EqualValues(t, rent, stored.Balance)
			contribution, err := contributions.DecodeAccount(stored.Data)
			require.NoError(t, err)
			require.Equal(t, &contributions.Contribution{Uri: "ipfs://abc", Creator: u1.Address(), Rating: 8}, contribution)
			require.EqualValues(t, 4, h.height(t, ctx), "only successful transactions commit")
		})
	})
}

func TestProcessTransaction_RejectedBeforeExecution(t *testing.T) {
	u1, slot := keys.Ed25519KeyPairForTests(1), keys.Ed25519KeyPairForTests(9)
	tests := []struct {
		name     string
		tx       *protocol.SignedTransaction
		cause    error
		expected protocol.ExecutionResult
	}{
		{
			"no transaction",
			&protocol.SignedTransaction{},
			ErrMissingTransaction,
			protocol.EXECUTION_RESULT_ERROR_INPUT,
		},
		{
			"no accounts",
			builders.Transaction().WithTestSigner(1).Build(),
			ErrNoAccounts,
			protocol.EXECUTION_RESULT_ERROR_INPUT,
		},
		{
			"duplicate account",
			builders.CreateContributionTransaction(u1, slot, "ipfs://abc").WithAccount(u1.Address(), true, true).Build(),
			ErrDuplicateAccountMeta,
			protocol.EXECUTION_RESULT_ERROR_INPUT,
		},
		{
			"slot did not sign",
			builders.CreateContributionTransaction(u1, slot, "ipfs://abc").WithSigners(u1).Build(),
			ErrMissingSignature,
			protocol.EXECUTION_RESULT_ERROR_AUTHORIZATION,
		},
		{
			"corrupt signatures",
			builders.CreateContributionTransaction(u1, slot, "ipfs://abc").WithInvalidSignatures().Build(),
			ErrInvalidSignature,
			protocol.EXECUTION_RESULT_ERROR_AUTHORIZATION,
		},
		{
			"signature from a non signer",
			builders.RateContributionTransaction(u1, slot.Address(), 3).WithTestSigner(2).Build(),
			ErrUnexpectedSignature,
			protocol.EXECUTION_RESULT_ERROR_INPUT,
		},
		{
			"oversized data",
			builders.RateContributionTransaction(u1, slot.Address(), 3).WithData(make([]byte, MAX_TRANSACTION_DATA_SIZE_BYTES+1)).Build(),
			ErrTransactionDataTooLarge,
			protocol.EXECUTION_RESULT_ERROR_INPUT,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			with.Logging(t, func(parent *with.LoggingHarness) {
				test.WithContext(func(ctx context.Context) {
					h := newHarness(parent, &native.PrebuiltRepository{})
					h.fund(t, ctx, u1.Address(), funds)

					receipt, err := h.process(ctx, tt.tx)
					require.Equal(t, tt.cause, errors.Cause(err))
					require.Equal(t, tt.expected, receipt.ExecutionResult)
					require.NotEmpty(t, receipt.Error)
					require.EqualValues(t, 1, h.height(t, ctx), "nothing may be committed")
				})
			})
		})
	}
}

func TestProcessTransaction_AllocationFailures(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, &native.PrebuiltRepository{})
			u1, u2, slot := keys.Ed25519KeyPairForTests(1), keys.Ed25519KeyPairForTests(2), keys.Ed25519KeyPairForTests(9)
			h.fund(t, ctx, u1.Address(), funds)
			h.fund(t, ctx, u2.Address(), 1)

			receipt, err := h.process(ctx, builders.CreateContributionTransaction(u2, slot, "ipfs://abc").Build())
			require.Equal(t, ErrInsufficientFundsForRent, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_ALLOCATION, receipt.ExecutionResult)
			require.True(t, h.account(t, ctx, slot.Address()).IsEmpty())
			require.EqualValues(t, 1, h.account(t, ctx, u2.Address()).Balance)

			oversizedUri := strings.Repeat("a", contributions.URI_MAX_SIZE_BYTES+1)
			receipt, err = h.process(ctx, builders.CreateContributionTransaction(u1, slot, oversizedUri).Build())
			require.Equal(t, contributions.ErrRecordTooLarge, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT, receipt.ExecutionResult)
			require.True(t, h.account(t, ctx, slot.Address()).IsEmpty(), "no record should be created for an oversized uri")
			require.EqualValues(t, funds, h.account(t, ctx, u1.Address()).Balance, "no rent should be charged for an oversized uri")

			_, err = h.process(ctx, builders.CreateContributionTransaction(u1, slot, "ipfs://abc").Build())
			require.NoError(t, err)

			receipt, err = h.process(ctx, builders.CreateContributionTransaction(u1, slot, "ipfs://other").WithNonce(1).Build())
			require.Equal(t, ErrAccountAlreadyInUse, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_ALLOCATION, receipt.ExecutionResult)

			contribution, err := contributions.DecodeAccount(h.account(t, ctx, slot.Address()).Data)
			require.NoError(t, err)
			require.Equal(t, "ipfs://abc", contribution.Uri)
		})
	})
}

func TestProcessTransaction_UnknownProgramIsNotDeployed(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, &native.PrebuiltRepository{})
			u1 := keys.Ed25519KeyPairForTests(1)

			tx := builders.Transaction().WithProgram(keys.AddressForTests(5)).WithAccount(u1.Address(), true, false).WithSigners(u1).Build()
			receipt, err := h.process(ctx, tx)
			require.Equal(t, native.ErrProgramNotDeployed, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED, receipt.ExecutionResult)
		})
	})
}

func TestProcessTransaction_LockTimeout(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarnessWithLockTimeout(parent, &native.PrebuiltRepository{}, 20*time.Millisecond)
			u1, slot := keys.Ed25519KeyPairForTests(1), keys.Ed25519KeyPairForTests(9)
			h.fund(t, ctx, u1.Address(), funds)
			_, err := h.process(ctx, builders.CreateContributionTransaction(u1, slot, "ipfs://abc").Build())
			require.NoError(t, err)

			unlock, err := h.stateStorage.LockAccounts(ctx, []protocol.Address{slot.Address()})
			require.NoError(t, err)
			defer unlock()

			receipt, err := h.process(ctx, builders.RateContributionTransaction(u1, slot.Address(), 3).Build())
			require.Equal(t, statestorage.ErrAccountLockTimeout, errors.Cause(err))
			require.Equal(t, protocol.EXECUTION_RESULT_ERROR_UNEXPECTED, receipt.ExecutionResult)
		})
	})
}

func TestProcessTransaction_ConcurrentRatingsAllAccumulate(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, &native.PrebuiltRepository{})
			u1, slot := keys.Ed25519KeyPairForTests(1), keys.Ed25519KeyPairForTests(9)
			h.fund(t, ctx, u1.Address(), funds)
			_, err := h.process(ctx, builders.CreateContributionTransaction(u1, slot, "ipfs://abc").Build())
			require.NoError(t, err)

			const ratings = 40
			var wg sync.WaitGroup
			errs := make(chan error, ratings)
			expected := uint64(0)
			for i := 0; i < ratings; i++ {
				rating := uint8(i%5 + 1)
				expected += uint64(rating)
				rater := keys.Ed25519KeyPairForTests(i%4 + 1)
				wg.Add(1)
				go func(nonce uint64) {
					defer wg.Done()
					_, err := h.process(ctx, builders.RateContributionTransaction(rater, slot.Address(), rating).WithNonce(nonce).Build())
					errs <- err
				}(uint64(i))
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			contribution, err := contributions.DecodeAccount(h.account(t, ctx, slot.Address()).Data)
			require.NoError(t, err)
			require.Equal(t, expected, contribution.Rating)
		})
	})
}

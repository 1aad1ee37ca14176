// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package publicapi

import (
	"context"
	"testing"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository/Contributions"
	"github.com/orbs-network/knowledge-directory/test"
	"github.com/orbs-network/knowledge-directory/test/crypto/keys"
	"github.com/orbs-network/knowledge-directory/test/with"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func storeContribution(t *testing.T, ctx context.Context, h *harness, address protocol.Address, c *contributions.Contribution) {
	data := make([]byte, contributions.ACCOUNT_SIZE_BYTES)
	require.NoError(t, contributions.EncodeAccount(data, c))
	_, err := h.stateStorage.CommitStateDiff(ctx, []*protocol.Account{{Address: address, Owner: contributions.PROGRAM_ID, Balance: 1, Data: data}})
	require.NoError(t, err)
}

func TestGetAccount(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, config.ForAcceptanceTests())
			address := keys.AddressForTests(1)

			output, err := h.papi.GetAccount(ctx, &GetAccountInput{Address: address})
			require.Equal(t, ErrAccountNotFound, errors.Cause(err))
			require.Equal(t, REQUEST_STATUS_NOT_FOUND, output.RequestStatus)
			require.Nil(t, output.Account)

			_, err = h.stateStorage.Airdrop(ctx, address, 42)
			require.NoError(t, err)

			output, err = h.papi.GetAccount(ctx, &GetAccountInput{Address: address})
			require.NoError(t, err)
			require.Equal(t, REQUEST_STATUS_COMPLETED, output.RequestStatus)
			require.EqualValues(t, 42, output.Account.Balance)
			require.EqualValues(t, 1, output.BlockHeight)
		})
	})
}

func TestGetContribution(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, config.ForAcceptanceTests())
			slot, funded := keys.AddressForTests(9), keys.AddressForTests(2)
			expected := &contributions.Contribution{Uri: "ipfs://abc", Creator: keys.AddressForTests(1), Rating: 8}
			storeContribution(t, ctx, h, slot, expected)
			_, err := h.stateStorage.Airdrop(ctx, funded, 5)
			require.NoError(t, err)

			output, err := h.papi.GetContribution(ctx, &GetContributionInput{Address: slot})
			require.NoError(t, err)
			require.Equal(t, REQUEST_STATUS_COMPLETED, output.RequestStatus)
			require.Equal(t, expected, output.Contribution)

			output, err = h.papi.GetContribution(ctx, &GetContributionInput{Address: funded})
			require.Equal(t, ErrNotAContribution, errors.Cause(err))
			require.Equal(t, REQUEST_STATUS_REJECTED, output.RequestStatus)

			output, err = h.papi.GetContribution(ctx, &GetContributionInput{Address: keys.AddressForTests(3)})
			require.Equal(t, ErrAccountNotFound, errors.Cause(err))
			require.Equal(t, REQUEST_STATUS_NOT_FOUND, output.RequestStatus)
		})
	})
}

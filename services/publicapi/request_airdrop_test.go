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
	"github.com/orbs-network/knowledge-directory/test"
	"github.com/orbs-network/knowledge-directory/test/crypto/keys"
	"github.com/orbs-network/knowledge-directory/test/with"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRequestAirdrop_CreditsBalance(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			h := newHarness(parent, config.ForAcceptanceTests())
			address := keys.AddressForTests(1)

			for i := 0; i < 2; i++ {
				output, err := h.papi.RequestAirdrop(ctx, &RequestAirdropInput{Address: address, Amount: 1000})
				require.NoError(t, err)
				require.Equal(t, REQUEST_STATUS_COMPLETED, output.RequestStatus)
			}

			accounts, err := h.stateStorage.ReadAccounts(ctx, []protocol.Address{address})
			require.NoError(t, err)
			require.EqualValues(t, 2000, accounts[0].Balance)
		})
	})
}

func TestRequestAirdrop_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.NodeConfig
		amount uint64
		cause  error
	}{
		{"disabled", config.ForProduction(), 1, ErrAirdropDisabled},
		{"zero amount", config.ForAcceptanceTests(), 0, ErrInvalidAirdrop},
		{"above max", config.ForAcceptanceTests().SetUint32(config.PUBLIC_API_AIRDROP_MAX_AMOUNT, 10), 11, ErrInvalidAirdrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			with.Logging(t, func(parent *with.LoggingHarness) {
				test.WithContext(func(ctx context.Context) {
					h := newHarness(parent, tt.cfg)

					output, err := h.papi.RequestAirdrop(ctx, &RequestAirdropInput{Address: keys.AddressForTests(1), Amount: tt.amount})
					require.Equal(t, tt.cause, errors.Cause(err))
					require.Equal(t, REQUEST_STATUS_REJECTED, output.RequestStatus)

					height, err := h.stateStorage.GetStateStorageBlockHeight(ctx)
					require.NoError(t, err)
					require.EqualValues(t, 0, height)
				})
			})
		})
	}
}

func TestRequestAirdrop_SharesTheTransactionRateLimit(t *testing.T) {
	with.Logging(t, func(parent *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			cfg := config.ForAcceptanceTests().
				SetUint32(config.PUBLIC_API_TRANSACTIONS_PER_SECOND, 1).
				SetUint32(config.PUBLIC_API_TRANSACTIONS_BURST, 1)
			h := newHarness(parent, cfg)
			address := keys.AddressForTests(1)

			output, err := h.papi.RequestAirdrop(ctx, &RequestAirdropInput{Address: address, Amount: 1000})
			require.NoError(t, err)
			require.Equal(t, REQUEST_STATUS_COMPLETED, output.RequestStatus)

			output, err = h.papi.RequestAirdrop(ctx, &RequestAirdropInput{Address: address, Amount: 1000})
			require.Equal(t, ErrRateLimited, err)
			require.Equal(t, REQUEST_STATUS_CONGESTION, output.RequestStatus)

			height, err := h.stateStorage.GetStateStorageBlockHeight(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 1, height, "a throttled airdrop should not commit")
		})
	})
}

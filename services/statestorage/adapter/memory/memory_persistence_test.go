// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"testing"

	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/test/crypto/keys"
	"github.com/stretchr/testify/require"
)

func TestWriteThenRead(t *testing.T) {
	registry := metric.NewRegistry()
	sp := NewStatePersistence(registry)
	account := &protocol.Account{Address: keys.AddressForTests(1), Owner: keys.AddressForTests(2), Balance: 10, Data: []byte{1, 2, 3}, Version: 1}

	require.NoError(t, sp.Write(1, []*protocol.Account{account}))

	read, found, err := sp.Read(account.Address)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, account, read)

	height, err := sp.ReadMetadata()
	require.NoError(t, err)
	require.EqualValues(t, 1, height)
}

func TestReadIsIsolatedFromCallerMutations(t *testing.T) {
	sp := NewStatePersistence(metric.NewRegistry())
	account := &protocol.Account{Address: keys.AddressForTests(1), Balance: 10, Data: []byte{1}}
	require.NoError(t, sp.Write(1, []*protocol.Account{account}))

	account.Data[0] = 9
	read, _, _ := sp.Read(account.Address)
	read.Balance = 0

	again, _, _ := sp.Read(account.Address)
	require.Equal(t, []byte{1}, again.Data)
	require.EqualValues(t, 10, again.Balance)
}

func TestEmptyAccountsAreRemoved(t *testing.T) {
	sp := NewStatePersistence(metric.NewRegistry())
	address := keys.AddressForTests(1)
	require.NoError(t, sp.Write(1, []*protocol.Account{{Address: address, Balance: 5}}))
	require.NoError(t, sp.Write(2, []*protocol.Account{protocol.EmptyAccount(address)}))

	_, found, err := sp.Read(address)
	require.NoError(t, err)
	require.False(t, found)
}

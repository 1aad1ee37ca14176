// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package sqlite

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/orbs-network/knowledge-directory/instrumentation/metric"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/test/crypto/keys"
	"github.com/stretchr/testify/require"
)

func newPersistence(t *testing.T, path string) *StatePersistence {
	sp, err := NewStatePersistence(path, metric.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sp.Close() })
	return sp
}

func TestFreshDatabaseStartsAtGenesis(t *testing.T) {
	sp := newPersistence(t, filepath.Join(t.TempDir(), "state.db"))

	height, err := sp.ReadMetadata()
	require.NoError(t, err)
	require.EqualValues(t, 0, height)

	_, found, err := sp.Read(keys.AddressForTests(1))
	require.NoError(t, err)
	require.False(t, found)
}

func TestWriteThenRead(t *testing.T) {
	sp := newPersistence(t, filepath.Join(t.TempDir(), "state.db"))
	account := &protocol.Account{Address: keys.AddressForTests(1), Owner: keys.AddressForTests(2), Balance: math.MaxUint64, Data: []byte{1, 2, 3}, Version: 7}
	funded := &protocol.Account{Address: keys.AddressForTests(3), Balance: 5, Version: 1}

	require.NoError(t, sp.Write(4, []*protocol.Account{account, funded}))

	read, found, err := sp.Read(account.Address)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, account, read)

	read, found, err = sp.Read(funded.Address)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, funded.Equal(read))
	require.Empty(t, read.Data)

	height, err := sp.ReadMetadata()
	require.NoError(t, err)
	require.EqualValues(t, 4, height)
}

func TestOverwriteAndRemove(t *testing.T) {
	sp := newPersistence(t, filepath.Join(t.TempDir(), "state.db"))
	address := keys.AddressForTests(1)

	require.NoError(t, sp.Write(1, []*protocol.Account{{Address: address, Balance: 5, Version: 1}}))
	require.NoError(t, sp.Write(2, []*protocol.Account{{Address: address, Balance: 6, Version: 2}}))

	read, _, err := sp.Read(address)
	require.NoError(t, err)
	require.EqualValues(t, 6, read.Balance)
	require.EqualValues(t, 2, read.Version)

	require.NoError(t, sp.Write(3, []*protocol.Account{protocol.EmptyAccount(address)}))
	_, found, err := sp.Read(address)
	require.NoError(t, err)
	require.False(t, found)
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	account := &protocol.Account{Address: keys.AddressForTests(1), Owner: keys.AddressForTests(2), Balance: 10, Data: []byte{9}, Version: 1}

	sp, err := NewStatePersistence(path, metric.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, sp.Write(1, []*protocol.Account{account}))
	require.NoError(t, sp.Close())

	reopened := newPersistence(t, path)
	read, found, err := reopened.Read(account.Address)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, account, read)

	height, err := reopened.ReadMetadata()
	require.NoError(t, err)
	require.EqualValues(t, 1, height)
}

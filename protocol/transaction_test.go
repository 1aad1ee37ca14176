// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func aTransaction() *Transaction {
	return &Transaction{
		ProgramId: TOKEN_PROGRAM_ID,
		Accounts: []*AccountMeta{
			{Address: Address{0x01}, IsSigner: true, IsWritable: true},
			{Address: Address{0x02}, IsWritable: true},
			{Address: SYSTEM_PROGRAM_ID},
		},
		Data:  []byte{0xaa, 0xbb},
		Nonce: 7,
	}
}

func TestSigningPayload_Layout(t *testing.T) {
	payload := aTransaction().SigningPayload()

	require.Len(t, payload, 32+4+3*33+4+2+8)
	require.EqualValues(t, 3, payload[32], "account count should follow the program id")
	require.EqualValues(t, 0x03, payload[32+4+32], "first account is signer and writable")
	require.EqualValues(t, 0x02, payload[32+4+33+32], "second account is writable only")
	require.EqualValues(t, 7, payload[len(payload)-8], "nonce should close the payload")
}

func TestSigningPayload_ChangesWithFlags(t *testing.T) {
	tx := aTransaction()
	before := tx.SigningPayload()
	tx.Accounts[1].IsSigner = true

	require.NotEqual(t, before, tx.SigningPayload(), "flipping a signer flag must change what is signed")
}

func TestSigningPayload_ChangesWithNonce(t *testing.T) {
	tx := aTransaction()
	before := tx.SigningPayload()
	tx.Nonce++

	require.NotEqual(t, before, tx.SigningPayload())
}

func TestSignersAndWritableAddresses(t *testing.T) {
	tx := aTransaction()

	require.Equal(t, []Address{{0x01}}, tx.Signers())
	require.Equal(t, []Address{{0x01}, {0x02}}, tx.WritableAddresses())
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package jsonapi

import (
	"github.com/orbs-network/knowledge-directory/crypto/digest"
	"github.com/orbs-network/knowledge-directory/crypto/keys"
	"github.com/orbs-network/knowledge-directory/crypto/signature"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository/Contributions"
	"github.com/pkg/errors"
)

// CreateContributionTransaction has the user pay rent for the slot; both must sign
func CreateContributionTransaction(user protocol.Address, slot protocol.Address, uri string, nonce uint64) *protocol.Transaction {
	return &protocol.Transaction{
		ProgramId: contributions.PROGRAM_ID,
		Accounts: []*protocol.AccountMeta{
			{Address: slot, IsSigner: true, IsWritable: true},
			{Address: user, IsSigner: true, IsWritable: true},
			{Address: protocol.SYSTEM_PROGRAM_ID},
		},
		Data:  contributions.EncodeInstruction(&contributions.CreateContribution{Uri: uri}),
		Nonce: nonce,
	}
}

func RateContributionTransaction(rater protocol.Address, slot protocol.Address, rating uint8, nonce uint64) *protocol.Transaction {
	return &protocol.Transaction{
		ProgramId: contributions.PROGRAM_ID,
		Accounts: []*protocol.AccountMeta{
			{Address: slot, IsWritable: true},
			{Address: rater, IsSigner: true, IsWritable: true},
			{Address: protocol.TOKEN_PROGRAM_ID},
		},
		Data:  contributions.EncodeInstruction(&contributions.RateContribution{Rating: rating}),
		Nonce: nonce,
	}
}

func SignTransaction(tx *protocol.Transaction, signers ...*keys.Ed25519KeyPair) (*protocol.SignedTransaction, error) {
	txHash := digest.CalcTxHash(tx)
	signedTransaction := &protocol.SignedTransaction{Transaction: tx}
	for _, signer := range signers {
		sig, err := signature.SignEd25519(signer.PrivateKey(), txHash)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to sign for %s", signer.Address())
		}
		signedTransaction.Signatures = append(signedTransaction.Signatures, &protocol.Signature{Signer: signer.Address(), Signature: sig})
	}
	return signedTransaction, nil
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package builders

import (
	"github.com/orbs-network/knowledge-directory/crypto/digest"
	"github.com/orbs-network/knowledge-directory/crypto/keys"
	"github.com/orbs-network/knowledge-directory/crypto/signature"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository/Contributions"
	testKeys "github.com/orbs-network/knowledge-directory/test/crypto/keys"
)

// protocol.SignedTransaction

type transaction struct {
	signers []*keys.Ed25519KeyPair
	tx      *protocol.Transaction
	corrupt bool
}

func Transaction() *transaction {
	return &transaction{
		tx: &protocol.Transaction{ProgramId: contributions.PROGRAM_ID},
	}
}

// CreateContributionTransaction has user pay for a new slot and sign together with it
func CreateContributionTransaction(user *keys.Ed25519KeyPair, slot *keys.Ed25519KeyPair, uri string) *transaction {
	return Transaction().
		WithAccount(slot.Address(), true, true).
		WithAccount(user.Address(), true, true).
		WithAccount(protocol.SYSTEM_PROGRAM_ID, false, false).
		WithInstruction(&contributions.CreateContribution{Uri: uri}).
		WithSigners(slot, user)
}

func RateContributionTransaction(rater *keys.Ed25519KeyPair, slot protocol.Address, rating uint8) *transaction {
	return Transaction().
		WithAccount(slot, false, true).
		WithAccount(rater.Address(), true, true).
		WithAccount(protocol.TOKEN_PROGRAM_ID, false, false).
		WithInstruction(&contributions.RateContribution{Rating: rating}).
		WithSigners(rater)
}

func (t *transaction) WithProgram(programId protocol.Address) *transaction {
	t.tx.ProgramId = programId
	return t
}

func (t *transaction) WithAccount(address protocol.Address, isSigner bool, isWritable bool) *transaction {
	t.tx.Accounts = append(t.tx.Accounts, &protocol.AccountMeta{Address: address, IsSigner: isSigner, IsWritable: isWritable})
	return t
}

func (t *transaction) WithInstruction(instruction contributions.Instruction) *transaction {
	return t.WithData(contributions.EncodeInstruction(instruction))
}

func (t *transaction) WithData(data []byte) *transaction {
	t.tx.Data = data
	return t
}

func (t *transaction) WithNonce(nonce uint64) *transaction {
	t.tx.Nonce = nonce
	return t
}

func (t *transaction) WithSigners(signers ...*keys.Ed25519KeyPair) *transaction {
	t.signers = signers
	return t
}

func (t *transaction) WithTestSigner(setIndex int) *transaction {
	t.signers = append(t.signers, testKeys.Ed25519KeyPairForTests(setIndex))
	return t
}

// WithInvalidSignatures signs with the right keys and then flips a bit in every signature
func (t *transaction) WithInvalidSignatures() *transaction {
	t.corrupt = true
	return t
}

func (t *transaction) Build() *protocol.SignedTransaction {
	txHash := digest.CalcTxHash(t.tx)
	signedTransaction := &protocol.SignedTransaction{Transaction: t.tx}
	for _, signer := range t.signers {
		sig, err := signature.SignEd25519(signer.PrivateKey(), txHash)
		if err != nil {
			panic(err)
		}
		if t.corrupt {
			sig[0] ^= 0x01
		}
		signedTransaction.Signatures = append(signedTransaction.Signatures, &protocol.Signature{Signer: signer.Address(), Signature: sig})
	}
	return signedTransaction
}

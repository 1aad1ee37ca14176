// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/knowledge-directory/crypto/signature"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

const (
	MAX_TRANSACTION_ACCOUNTS        = 32
	MAX_TRANSACTION_DATA_SIZE_BYTES = 1024
)

func validateTransaction(signedTransaction *protocol.SignedTransaction) error {
	if signedTransaction == nil || signedTransaction.Transaction == nil {
		return protocol.InputFailure(ErrMissingTransaction)
	}

	tx := signedTransaction.Transaction
	if len(tx.Accounts) == 0 {
		return protocol.InputFailure(ErrNoAccounts)
	}
	if len(tx.Accounts) > MAX_TRANSACTION_ACCOUNTS {
		return protocol.InputFailure(errors.Wrapf(ErrTooManyAccounts, "%d > %d", len(tx.Accounts), MAX_TRANSACTION_ACCOUNTS))
	}
	if len(tx.Data) > MAX_TRANSACTION_DATA_SIZE_BYTES {
		return protocol.InputFailure(errors.Wrapf(ErrTransactionDataTooLarge, "%d > %d", len(tx.Data), MAX_TRANSACTION_DATA_SIZE_BYTES))
	}

	seen := make(map[protocol.Address]bool, len(tx.Accounts))
	for _, meta := range tx.Accounts {
		if meta == nil {
			return protocol.InputFailure(ErrMissingTransaction)
		}
		if seen[meta.Address] {
			return protocol.InputFailure(errors.Wrapf(ErrDuplicateAccountMeta, "account %s", meta.Address))
		}
		seen[meta.Address] = true
	}

	return nil
}

// verifyTransactionSignatures requires exactly one valid signature over the tx hash per signer account
func verifyTransactionSignatures(signedTransaction *protocol.SignedTransaction, txHash primitives.Sha256) error {
	signatures := make(map[protocol.Address]primitives.Ed25519Sig, len(signedTransaction.Signatures))
	for _, sig := range signedTransaction.Signatures {
		if sig == nil {
			continue
		}
		signatures[sig.Signer] = sig.Signature
	}

	signers := signedTransaction.Transaction.Signers()
	for _, signer := range signers {
		sig, found := signatures[signer]
		if !found {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrMissingSignature, "signer %s", signer))
		}
		if !signature.VerifyEd25519(signer.PublicKey(), txHash, sig) {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrInvalidSignature, "signer %s", signer))
		}
		delete(signatures, signer)
	}

	for signer := range signatures {
		return protocol.InputFailure(errors.Wrapf(ErrUnexpectedSignature, "signer %s", signer))
	}

	return nil
}

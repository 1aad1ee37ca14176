// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import "github.com/pkg/errors"

var (
	ErrMissingTransaction      = errors.New("missing transaction")
	ErrNoAccounts              = errors.New("transaction references no accounts")
	ErrTooManyAccounts         = errors.New("transaction references too many accounts")
	ErrTransactionDataTooLarge = errors.New("transaction data too large")
	ErrDuplicateAccountMeta    = errors.New("account referenced twice")
	ErrMissingSignature        = errors.New("missing signature")
	ErrInvalidSignature        = errors.New("signature verification failed")
	ErrUnexpectedSignature     = errors.New("signature from an account that is not a signer")

	ErrUnknownAccount           = errors.New("account is not part of this invocation")
	ErrAllocationSlotNotSigner  = errors.New("allocated account must be a writable signer")
	ErrPayerNotSigner           = errors.New("rent payer must be a writable signer")
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrAccountDataTooLarge      = errors.New("requested account space too large")
	ErrInsufficientFundsForRent = errors.New("insufficient funds for rent")

	ErrReadonlyAccountModified    = errors.New("program modified a read-only account")
	ErrAccountOwnerModified       = errors.New("program modified an account owner")
	ErrBalanceModified            = errors.New("program modified an account balance")
	ErrAccountDataSizeModified    = errors.New("program resized account data")
	ErrForeignAccountDataModified = errors.New("program modified data of an account it does not own")
	ErrAccountAddressModified     = errors.New("program modified an account address")
)

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributions

import "github.com/pkg/errors"

var (
	ErrInvalidRating    = errors.New("invalid rating")
	ErrRecordTooLarge   = errors.New("contribution record does not fit the slot")
	ErrRatingOverflow   = errors.New("rating accumulator overflow")
	ErrAccountNotSigner = errors.New("account must sign the transaction")

	ErrAccountNotInitialized        = errors.New("account not initialized")
	ErrAccountDiscriminatorMismatch = errors.New("account discriminator mismatch")
	ErrAccountDidNotDeserialize     = errors.New("account did not deserialize")
	ErrAccountDidNotSerialize       = errors.New("account did not serialize")
	ErrAccountNotMutable            = errors.New("account is not writable")
	ErrAccountOwnedByWrongProgram   = errors.New("account owned by a different program")
	ErrNotEnoughAccountKeys         = errors.New("not enough account keys")
	ErrInvalidProgramId             = errors.New("unexpected program id")

	ErrInstructionMissing           = errors.New("instruction discriminator missing")
	ErrInstructionFallbackNotFound  = errors.New("unknown instruction")
	ErrInstructionDidNotDeserialize = errors.New("instruction did not deserialize")
)

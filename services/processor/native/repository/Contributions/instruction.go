// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributions

import (
	"unicode/utf8"

	"github.com/orbs-network/knowledge-directory/crypto/hash"
	"github.com/orbs-network/membuffers/go"
	"github.com/pkg/errors"
)

// Instruction is one of *CreateContribution or *RateContribution.
type Instruction interface {
	Name() string
	encodeArgs() []byte
}

type CreateContribution struct {
	Uri string
}

type RateContribution struct {
	Rating uint8
}

const (
	INSTRUCTION_CREATE_CONTRIBUTION = "create_contribution"
	INSTRUCTION_RATE_CONTRIBUTION   = "rate_contribution"
)

var (
	createContributionDiscriminator = hash.Discriminator("global", INSTRUCTION_CREATE_CONTRIBUTION)
	rateContributionDiscriminator   = hash.Discriminator("global", INSTRUCTION_RATE_CONTRIBUTION)
)

func (i *CreateContribution) Name() string {
	return INSTRUCTION_CREATE_CONTRIBUTION
}

func (i *CreateContribution) encodeArgs() []byte {
	args := make([]byte, URI_LENGTH_PREFIX_SIZE_BYTES+len(i.Uri))
	membuffers.WriteUint32(args, uint32(len(i.Uri)))
	copy(args[URI_LENGTH_PREFIX_SIZE_BYTES:], i.Uri)
	return args
}

func (i *RateContribution) Name() string {
	return INSTRUCTION_RATE_CONTRIBUTION
}

func (i *RateContribution) encodeArgs() []byte {
	return []byte{i.Rating}
}

func EncodeInstruction(instruction Instruction) []byte {
	discriminator := hash.Discriminator("global", instruction.Name())
	return append(discriminator[:], instruction.encodeArgs()...)
}

func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) < DISCRIMINATOR_SIZE_BYTES {
		return nil, ErrInstructionMissing
	}

	var discriminator [DISCRIMINATOR_SIZE_BYTES]byte
	copy(discriminator[:], data)
	args := data[DISCRIMINATOR_SIZE_BYTES:]

	switch discriminator {
	case createContributionDiscriminator:
		return decodeCreateContribution(args)
	case rateContributionDiscriminator:
		return decodeRateContribution(args)
	default:
		return nil, errors.Wrapf(ErrInstructionFallbackNotFound, "discriminator %x", discriminator)
	}
}

func decodeCreateContribution(args []byte) (*CreateContribution, error) {
	if len(args) < URI_LENGTH_PREFIX_SIZE_BYTES {
		return nil, errors.Wrap(ErrInstructionDidNotDeserialize, "uri length missing")
	}
	uriSize := uint64(membuffers.GetUint32(args))
	if uint64(len(args)-URI_LENGTH_PREFIX_SIZE_BYTES) != uriSize {
		return nil, errors.Wrapf(ErrInstructionDidNotDeserialize, "uri length %d does not match %d argument bytes", uriSize, len(args)-URI_LENGTH_PREFIX_SIZE_BYTES)
	}
	uri := args[URI_LENGTH_PREFIX_SIZE_BYTES:]
	if !utf8.Valid(uri) {
		return nil, errors.Wrap(ErrInstructionDidNotDeserialize, "uri is not valid utf-8")
	}
	return &CreateContribution{Uri: string(uri)}, nil
}

func decodeRateContribution(args []byte) (*RateContribution, error) {
	if len(args) != 1 {
		return nil, errors.Wrapf(ErrInstructionDidNotDeserialize, "rating takes 1 byte, got %d", len(args))
	}
	return &RateContribution{Rating: args[0]}, nil
}

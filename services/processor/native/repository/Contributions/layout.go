// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package contributions

import (
	"github.com/orbs-network/knowledge-directory/crypto/hash"
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/membuffers/go"
	"github.com/pkg/errors"
)

// Slot layout, little endian, zero padded:
// [discriminator 8][uri length u32][uri][creator 32][rating u64]
const (
	DISCRIMINATOR_SIZE_BYTES     = 8
	URI_LENGTH_PREFIX_SIZE_BYTES = 4
	URI_MAX_ENCODED_SIZE_BYTES   = 64
	URI_MAX_SIZE_BYTES           = URI_MAX_ENCODED_SIZE_BYTES - URI_LENGTH_PREFIX_SIZE_BYTES
	CREATOR_SIZE_BYTES           = protocol.ADDRESS_SIZE_BYTES
	RATING_SIZE_BYTES            = 8

	ACCOUNT_SIZE_BYTES = DISCRIMINATOR_SIZE_BYTES + URI_MAX_ENCODED_SIZE_BYTES + CREATOR_SIZE_BYTES + RATING_SIZE_BYTES
)

var ACCOUNT_DISCRIMINATOR = hash.Discriminator("account", "Contribution")

func encodedUriSize(uri string) int {
	return URI_LENGTH_PREFIX_SIZE_BYTES + len(uri)
}

func EncodeAccount(data []byte, c *Contribution) error {
	if encodedUriSize(c.Uri) > URI_MAX_ENCODED_SIZE_BYTES {
		return errors.Wrapf(ErrRecordTooLarge, "uri of %d bytes exceeds %d", len(c.Uri), URI_MAX_SIZE_BYTES)
	}
	if len(data) < ACCOUNT_SIZE_BYTES {
		return errors.Wrapf(ErrAccountDidNotSerialize, "slot holds %d bytes, need %d", len(data), ACCOUNT_SIZE_BYTES)
	}

	offset := copy(data, ACCOUNT_DISCRIMINATOR[:])
	membuffers.WriteUint32(data[offset:], uint32(len(c.Uri)))
	offset += URI_LENGTH_PREFIX_SIZE_BYTES
	offset += copy(data[offset:], c.Uri)
	offset += copy(data[offset:], c.Creator[:])
	membuffers.WriteUint64(data[offset:], c.Rating)
	offset += RATING_SIZE_BYTES

	for i := offset; i < len(data); i++ {
		data[i] = 0
	}
	return nil
}

func DecodeAccount(data []byte) (*Contribution, error) {
	if len(data) < DISCRIMINATOR_SIZE_BYTES {
		return nil, errors.Wrapf(ErrAccountDidNotDeserialize, "account holds %d bytes", len(data))
	}

	var discriminator [DISCRIMINATOR_SIZE_BYTES]byte
	copy(discriminator[:], data)
	if discriminator == [DISCRIMINATOR_SIZE_BYTES]byte{} {
		return nil, ErrAccountNotInitialized
	}
	if discriminator != ACCOUNT_DISCRIMINATOR {
		return nil, ErrAccountDiscriminatorMismatch
	}

	offset := DISCRIMINATOR_SIZE_BYTES
	if len(data) < offset+URI_LENGTH_PREFIX_SIZE_BYTES {
		return nil, errors.Wrap(ErrAccountDidNotDeserialize, "uri length missing")
	}
	uriSize := int(membuffers.GetUint32(data[offset:]))
	offset += URI_LENGTH_PREFIX_SIZE_BYTES
	if uriSize > URI_MAX_SIZE_BYTES || len(data) < offset+uriSize+CREATOR_SIZE_BYTES+RATING_SIZE_BYTES {
		return nil, errors.Wrapf(ErrAccountDidNotDeserialize, "uri length %d does not fit account of %d bytes", uriSize, len(data))
	}

	c := &Contribution{}
	c.Uri = string(data[offset : offset+uriSize])
	offset += uriSize
	copy(c.Creator[:], data[offset:])
	offset += CREATOR_SIZE_BYTES
	c.Rating = membuffers.GetUint64(data[offset:])

	return c, nil
}

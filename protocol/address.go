// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

const ADDRESS_SIZE_BYTES = 32

// Address identifies an account. Signer addresses are ed25519 public keys.
type Address [ADDRESS_SIZE_BYTES]byte

// the system program owns every account nobody allocated yet
var SYSTEM_PROGRAM_ID = Address{}

var TOKEN_PROGRAM_ID = MustAddressFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != ADDRESS_SIZE_BYTES {
		return a, errors.Errorf("address must be %d bytes, got %d", ADDRESS_SIZE_BYTES, len(b))
	}
	copy(a[:], b)
	return a, nil
}

func AddressFromString(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, errors.Wrapf(err, "address %q is not valid base58", s)
	}
	return AddressFromBytes(b)
}

func MustAddressFromString(s string) Address {
	a, err := AddressFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) PublicKey() primitives.Ed25519PublicKey {
	return primitives.Ed25519PublicKey(a.Bytes())
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

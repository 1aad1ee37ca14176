// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

import (
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type Transaction struct {
	ProgramId Address        `json:"programId"`
	Accounts  []*AccountMeta `json:"accounts"`
	Data      []byte         `json:"data"`
	Nonce     uint64         `json:"nonce"`
}

type Signature struct {
	Signer    Address               `json:"signer"`
	Signature primitives.Ed25519Sig `json:"signature"`
}

type SignedTransaction struct {
	Transaction *Transaction `json:"transaction"`
	Signatures  []*Signature `json:"signatures"`
}

// SigningPayload is the canonical byte form every signer signs:
// program id, account count (u32), per account address and flags byte, data length (u32), data, nonce (u64).
func (t *Transaction) SigningPayload() []byte {
	size := ADDRESS_SIZE_BYTES + 4 + len(t.Accounts)*(ADDRESS_SIZE_BYTES+1) + 4 + len(t.Data) + 8
	buf := make([]byte, size)

	offset := copy(buf, t.ProgramId[:])
	membuffers.WriteUint32(buf[offset:], uint32(len(t.Accounts)))
	offset += 4
	for _, meta := range t.Accounts {
		offset += copy(buf[offset:], meta.Address[:])
		buf[offset] = meta.flags()
		offset++
	}
	membuffers.WriteUint32(buf[offset:], uint32(len(t.Data)))
	offset += 4
	offset += copy(buf[offset:], t.Data)
	membuffers.WriteUint64(buf[offset:], t.Nonce)

	return buf
}

func (t *Transaction) Signers() []Address {
	var signers []Address
	for _, meta := range t.Accounts {
		if meta.IsSigner {
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

func (t *Transaction) WritableAddresses() []Address {
	var writable []Address
	for _, meta := range t.Accounts {
		if meta.IsWritable {
			writable = append(writable, meta.Address)
		}
	}
	return writable
}

func (m *AccountMeta) flags() byte {
	var f byte
	if m.IsSigner {
		f |= 0x01
	}
	if m.IsWritable {
		f |= 0x02
	}
	return f
}

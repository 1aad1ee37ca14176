// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package protocol

import (
	"bytes"
	"fmt"
)

// Account is the unit of state. Only the owner program may change Data; Version is bumped on every commit.
type Account struct {
	Address Address `json:"address"`
	Owner   Address `json:"owner"`
	Balance uint64  `json:"balance"`
	Data    []byte  `json:"data"`
	Version uint64  `json:"version"`
}

func EmptyAccount(address Address) *Account {
	return &Account{Address: address, Owner: SYSTEM_PROGRAM_ID}
}

// IsEmpty is true for accounts that were never allocated or funded.
func (a *Account) IsEmpty() bool {
	return a.Owner == SYSTEM_PROGRAM_ID && a.Balance == 0 && len(a.Data) == 0
}

func (a *Account) Clone() *Account {
	clone := *a
	if a.Data != nil {
		clone.Data = make([]byte, len(a.Data))
		copy(clone.Data, a.Data)
	}
	return &clone
}

// Equal ignores the version.
func (a *Account) Equal(other *Account) bool {
	return a.Address == other.Address &&
		a.Owner == other.Owner &&
		a.Balance == other.Balance &&
		bytes.Equal(a.Data, other.Data)
}

func (a *Account) String() string {
	return fmt.Sprintf("{Address:%s,Owner:%s,Balance:%d,DataSize:%d,Version:%d}", a.Address, a.Owner, a.Balance, len(a.Data), a.Version)
}

type AccountMeta struct {
	Address    Address `json:"address"`
	IsSigner   bool    `json:"isSigner"`
	IsWritable bool    `json:"isWritable"`
}

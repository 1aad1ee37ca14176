// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import "github.com/orbs-network/knowledge-directory/protocol"

// AccountInfo is a program's mutable view of one transaction account.
// Programs write Data in place; the host decides afterwards whether the change is allowed.
type AccountInfo struct {
	Address    protocol.Address
	IsSigner   bool
	IsWritable bool
	Owner      protocol.Address
	Balance    uint64
	Data       []byte
}

type Invocation interface {
	ProgramId() protocol.Address
	Accounts() []*AccountInfo

	// Allocate turns an empty slot into an account of space zero bytes owned by the invoking program.
	// Rent is debited from payer. Failures are reported as allocation or authorization failures.
	Allocate(slot *AccountInfo, payer *AccountInfo, space uint64) error
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package adapter

import (
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

// StatePersistence stores committed accounts. Write applies all accounts and the new height atomically;
// empty accounts are removed rather than stored.
type StatePersistence interface {
	Write(height primitives.BlockHeight, accounts []*protocol.Account) error
	Read(address protocol.Address) (*protocol.Account, bool, error)
	ReadMetadata() (primitives.BlockHeight, error)
}

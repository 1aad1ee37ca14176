// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"context"

	"github.com/orbs-network/knowledge-directory/crypto/hash"
	"github.com/orbs-network/knowledge-directory/protocol"
)

type ProcessFunc func(ctx context.Context, invocation Invocation, data []byte) (output []byte, err error)

type ProgramInfo struct {
	Id      protocol.Address
	Name    string
	Process ProcessFunc
}

func ProgramIdFromName(name string) protocol.Address {
	var id protocol.Address
	copy(id[:], hash.CalcSha256([]byte("program:"+name)))
	return id
}

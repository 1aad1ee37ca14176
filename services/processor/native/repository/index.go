// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package repository

import (
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository/Contributions"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
)

var Programs = map[protocol.Address]types.ProgramInfo{
	contributions.PROGRAM.Id: contributions.PROGRAM,
	// add new native programs here
}

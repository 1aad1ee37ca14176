// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package native

import (
	"context"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/repository"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
)

type PrebuiltRepository struct{}

func (r *PrebuiltRepository) ProgramInfo(ctx context.Context, programId protocol.Address) (*types.ProgramInfo, error) {
	programInfo, found := repository.Programs[programId]
	if !found {
		return nil, nil
	}
	return &programInfo, nil
}

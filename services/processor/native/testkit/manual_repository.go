// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package testkit

import (
	"context"
	"sync"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
	"github.com/pkg/errors"
)

var errAllocationUnsupported = errors.New("static invocation does not allocate")

type ManualRepository struct {
	sync.Mutex
	programs map[protocol.Address]*types.ProgramInfo
}

func NewRepository() *ManualRepository {
	return &ManualRepository{programs: make(map[protocol.Address]*types.ProgramInfo)}
}

func (r *ManualRepository) ProgramInfo(ctx context.Context, programId protocol.Address) (*types.ProgramInfo, error) {
	r.Lock()
	defer r.Unlock()
	return r.programs[programId], nil
}

// Register deploys process under the id derived from name and returns that id
func (r *ManualRepository) Register(name string, process types.ProcessFunc) protocol.Address {
	r.Lock()
	defer r.Unlock()
	id := types.ProgramIdFromName(name)
	r.programs[id] = &types.ProgramInfo{Id: id, Name: name, Process: process}
	return id
}

type StaticInvocation struct {
	Program      protocol.Address
	AccountInfos []*types.AccountInfo
}

func (i *StaticInvocation) ProgramId() protocol.Address {
	return i.Program
}

func (i *StaticInvocation) Accounts() []*types.AccountInfo {
	return i.AccountInfos
}

func (i *StaticInvocation) Allocate(slot *types.AccountInfo, payer *types.AccountInfo, space uint64) error {
	return protocol.AllocationFailure(errAllocationUnsupported)
}

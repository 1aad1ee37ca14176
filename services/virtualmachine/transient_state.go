// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/orbs-network/knowledge-directory/services/processor/native/types"
)

// transientState holds what the program sees next to what it may legally have changed.
// baseline starts as the committed account and only host operations such as allocation move it.
type transientState struct {
	metas    []*protocol.AccountMeta
	read     []*protocol.Account
	baseline []*protocol.Account
	infos    []*types.AccountInfo
}

func newTransientState(metas []*protocol.AccountMeta, accounts []*protocol.Account) *transientState {
	s := &transientState{
		metas:    metas,
		read:     accounts,
		baseline: make([]*protocol.Account, len(accounts)),
		infos:    make([]*types.AccountInfo, len(accounts)),
	}
	for i, account := range accounts {
		s.baseline[i] = account.Clone()
		s.infos[i] = &types.AccountInfo{
			Address:    account.Address,
			IsSigner:   metas[i].IsSigner,
			IsWritable: metas[i].IsWritable,
			Owner:      account.Owner,
			Balance:    account.Balance,
			Data:       account.Clone().Data,
		}
	}
	return s
}

func (s *transientState) indexOf(info *types.AccountInfo) (int, bool) {
	for i, candidate := range s.infos {
		if candidate == info {
			return i, true
		}
	}
	return 0, false
}

func (s *transientState) final(i int) *protocol.Account {
	info := s.infos[i]
	return &protocol.Account{
		Address: info.Address,
		Owner:   info.Owner,
		Balance: info.Balance,
		Data:    info.Data,
		Version: s.read[i].Version,
	}
}

// dirtyAccounts returns the writable accounts whose final state differs from what was read
func (s *transientState) dirtyAccounts() []*protocol.Account {
	var dirty []*protocol.Account
	for i := range s.infos {
		if !s.metas[i].IsWritable {
			continue
		}
		if final := s.final(i); !final.Equal(s.read[i]) {
			dirty = append(dirty, final.Clone())
		}
	}
	return dirty
}

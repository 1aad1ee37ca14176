// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package virtualmachine

import (
	"bytes"

	"github.com/orbs-network/knowledge-directory/protocol"
	"github.com/pkg/errors"
)

// verifyAccountChanges rejects any change to account state a program may not make on its own
func verifyAccountChanges(programId protocol.Address, state *transientState) error {
	for i, info := range state.infos {
		base := state.baseline[i]
		meta := state.metas[i]

		if info.Address != base.Address {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrAccountAddressModified, "account %s", base.Address))
		}

		final := state.final(i)
		if !meta.IsWritable {
			if !final.Equal(base) {
				return protocol.AuthorizationFailure(errors.Wrapf(ErrReadonlyAccountModified, "account %s", base.Address))
			}
			continue
		}

		if final.Owner != base.Owner {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrAccountOwnerModified, "account %s", base.Address))
		}
		if final.Balance != base.Balance {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrBalanceModified, "account %s", base.Address))
		}
		if len(final.Data) != len(base.Data) {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrAccountDataSizeModified, "account %s", base.Address))
		}
		if base.Owner != programId && !bytes.Equal(final.Data, base.Data) {
			return protocol.AuthorizationFailure(errors.Wrapf(ErrForeignAccountDataModified, "account %s", base.Address))
		}
	}
	return nil
}

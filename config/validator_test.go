// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidate_Presets(t *testing.T) {
	require.NoError(t, Validate(ForProduction()))
	require.NoError(t, Validate(ForAcceptanceTests()))
}

func TestValidate_LockTimeoutMustBeShorterThanSendTimeout(t *testing.T) {
	cfg := ForProduction().SetDuration(VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT, time.Minute)

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "SendTransactionTimeout")
	require.Contains(t, err.Error(), "VirtualMachineAccountLockTimeout")
}

func TestValidate_ZeroRateLimitFails(t *testing.T) {
	cfg := ForProduction().SetUint32(PUBLIC_API_TRANSACTIONS_PER_SECOND, 0)

	err := Validate(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PublicApiTransactionsPerSecond")
}

func TestValidate_ZeroConnectionsFails(t *testing.T) {
	require.Error(t, Validate(ForProduction().SetUint32(HTTP_MAX_CONNECTIONS, 0)))
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import "time"

// all other configs are variations from the production one
func defaultProductionConfig() mutableNodeConfig {
	cfg := emptyConfig()

	cfg.SetString(HTTP_ADDRESS, ":8080")
	cfg.SetUint32(HTTP_MAX_CONNECTIONS, 1000)
	cfg.SetDuration(HTTP_SHUTDOWN_TIMEOUT, 5*time.Second)
	cfg.SetBool(PROFILING, false)

	cfg.SetDuration(PUBLIC_API_SEND_TRANSACTION_TIMEOUT, 30*time.Second)
	cfg.SetUint32(PUBLIC_API_TRANSACTIONS_PER_SECOND, 1000)
	cfg.SetUint32(PUBLIC_API_TRANSACTIONS_BURST, 100)
	cfg.SetBool(PUBLIC_API_AIRDROP_ENABLED, false)
	cfg.SetUint32(PUBLIC_API_AIRDROP_MAX_AMOUNT, 2000000000)

	// must stay below the send transaction timeout or contended transactions time out before they fail to lock
	cfg.SetDuration(VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT, 5*time.Second)
	// lamports per byte for two years of rent exemption
	cfg.SetUint32(VIRTUAL_MACHINE_RENT_PER_BYTE, 6960)

	cfg.SetString(STATE_STORAGE_SQLITE_PATH, "")

	cfg.SetBool(LOGGER_FULL_LOG, false)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetString(NTP_ENDPOINT, "")

	return cfg
}

func ForProduction() NodeConfig {
	return defaultProductionConfig()
}

// ForAcceptanceTests listens on a random port, keeps state in memory and hands out airdrops
func ForAcceptanceTests() NodeConfig {
	cfg := defaultProductionConfig()

	cfg.SetString(HTTP_ADDRESS, "127.0.0.1:0")
	cfg.SetDuration(HTTP_SHUTDOWN_TIMEOUT, time.Second)
	cfg.SetDuration(PUBLIC_API_SEND_TRANSACTION_TIMEOUT, 5*time.Second)
	cfg.SetDuration(VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT, 2*time.Second)
	cfg.SetBool(PUBLIC_API_AIRDROP_ENABLED, true)
	cfg.SetBool(LOGGER_FULL_LOG, true)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, time.Hour)

	return cfg
}

func EmptyConfig() NodeConfig {
	return emptyConfig()
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import "time"

type NodeConfig interface {
	HttpServerConfig
	PublicApiConfig
	VirtualMachineConfig
	StateStorageConfig
	InstrumentationConfig

	// setters (for creation)
	Set(key string, value NodeConfigValue) NodeConfig
	SetDuration(key string, value time.Duration) NodeConfig
	SetUint32(key string, value uint32) NodeConfig
	SetBool(key string, value bool) NodeConfig
	SetString(key string, value string) NodeConfig
}

type HttpServerConfig interface {
	HttpAddress() string
	HttpMaxConnections() uint32
	HttpShutdownTimeout() time.Duration
	Profiling() bool
}

type PublicApiConfig interface {
	SendTransactionTimeout() time.Duration
	PublicApiTransactionsPerSecond() uint32
	PublicApiTransactionsBurst() uint32
	PublicApiAirdropEnabled() bool
	PublicApiAirdropMaxAmount() uint64
}

type VirtualMachineConfig interface {
	VirtualMachineAccountLockTimeout() time.Duration
	VirtualMachineRentPerByte() uint64
}

type StateStorageConfig interface {
	StateStorageSqlitePath() string
}

type InstrumentationConfig interface {
	LoggerFullLog() bool
	MetricsReportInterval() time.Duration
	NTPEndpoint() string
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import "time"

const (
	HTTP_ADDRESS          = "HTTP_ADDRESS"
	HTTP_MAX_CONNECTIONS  = "HTTP_MAX_CONNECTIONS"
	HTTP_SHUTDOWN_TIMEOUT = "HTTP_SHUTDOWN_TIMEOUT"
	PROFILING             = "PROFILING"

	PUBLIC_API_SEND_TRANSACTION_TIMEOUT = "PUBLIC_API_SEND_TRANSACTION_TIMEOUT"
	PUBLIC_API_TRANSACTIONS_PER_SECOND  = "PUBLIC_API_TRANSACTIONS_PER_SECOND"
	PUBLIC_API_TRANSACTIONS_BURST       = "PUBLIC_API_TRANSACTIONS_BURST"
	PUBLIC_API_AIRDROP_ENABLED          = "PUBLIC_API_AIRDROP_ENABLED"
	PUBLIC_API_AIRDROP_MAX_AMOUNT       = "PUBLIC_API_AIRDROP_MAX_AMOUNT"

	VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT = "VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT"
	VIRTUAL_MACHINE_RENT_PER_BYTE        = "VIRTUAL_MACHINE_RENT_PER_BYTE"

	STATE_STORAGE_SQLITE_PATH = "STATE_STORAGE_SQLITE_PATH"

	LOGGER_FULL_LOG         = "LOGGER_FULL_LOG"
	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"
	NTP_ENDPOINT            = "NTP_ENDPOINT"
)

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	BoolValue     bool
	StringValue   string
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

type mutableNodeConfig interface {
	NodeConfig
	Modify(newValues ...NodeConfigKeyValue)
}

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableNodeConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) NodeConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) NodeConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) NodeConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetBool(key string, value bool) NodeConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) SetString(key string, value string) NodeConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) Modify(newValues ...NodeConfigKeyValue) {
	for _, kv := range newValues {
		c.kv[kv.Key] = kv.Value
	}
}

func (c *config) HttpAddress() string {
	return c.kv[HTTP_ADDRESS].StringValue
}

func (c *config) HttpMaxConnections() uint32 {
	return c.kv[HTTP_MAX_CONNECTIONS].Uint32Value
}

func (c *config) HttpShutdownTimeout() time.Duration {
	return c.kv[HTTP_SHUTDOWN_TIMEOUT].DurationValue
}

func (c *config) Profiling() bool {
	return c.kv[PROFILING].BoolValue
}

func (c *config) SendTransactionTimeout() time.Duration {
	return c.kv[PUBLIC_API_SEND_TRANSACTION_TIMEOUT].DurationValue
}

func (c *config) PublicApiTransactionsPerSecond() uint32 {
	return c.kv[PUBLIC_API_TRANSACTIONS_PER_SECOND].Uint32Value
}

func (c *config) PublicApiTransactionsBurst() uint32 {
	return c.kv[PUBLIC_API_TRANSACTIONS_BURST].Uint32Value
}

func (c *config) PublicApiAirdropEnabled() bool {
	return c.kv[PUBLIC_API_AIRDROP_ENABLED].BoolValue
}

func (c *config) PublicApiAirdropMaxAmount() uint64 {
	return uint64(c.kv[PUBLIC_API_AIRDROP_MAX_AMOUNT].Uint32Value)
}

func (c *config) VirtualMachineAccountLockTimeout() time.Duration {
	return c.kv[VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT].DurationValue
}

func (c *config) VirtualMachineRentPerByte() uint64 {
	return uint64(c.kv[VIRTUAL_MACHINE_RENT_PER_BYTE].Uint32Value)
}

func (c *config) StateStorageSqlitePath() string {
	return c.kv[STATE_STORAGE_SQLITE_PATH].StringValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) NTPEndpoint() string {
	return c.kv[NTP_ENDPOINT].StringValue
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// unset variables leave their pointer nil and the key untouched
type environmentOverrides struct {
	HttpAddress            *string        `env:"KD_HTTP_ADDRESS"`
	HttpMaxConnections     *uint32        `env:"KD_HTTP_MAX_CONNECTIONS"`
	Profiling              *bool          `env:"KD_PROFILING"`
	SendTransactionTimeout *time.Duration `env:"KD_PUBLIC_API_SEND_TRANSACTION_TIMEOUT"`
	TransactionsPerSecond  *uint32        `env:"KD_PUBLIC_API_TRANSACTIONS_PER_SECOND"`
	TransactionsBurst      *uint32        `env:"KD_PUBLIC_API_TRANSACTIONS_BURST"`
	AirdropEnabled         *bool          `env:"KD_PUBLIC_API_AIRDROP_ENABLED"`
	AirdropMaxAmount       *uint32        `env:"KD_PUBLIC_API_AIRDROP_MAX_AMOUNT"`
	AccountLockTimeout     *time.Duration `env:"KD_VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT"`
	RentPerByte            *uint32        `env:"KD_VIRTUAL_MACHINE_RENT_PER_BYTE"`
	SqlitePath             *string        `env:"KD_STATE_STORAGE_SQLITE_PATH"`
	LoggerFullLog          *bool          `env:"KD_LOGGER_FULL_LOG"`
	MetricsReportInterval  *time.Duration `env:"KD_METRICS_REPORT_INTERVAL"`
	NTPEndpoint            *string        `env:"KD_NTP_ENDPOINT"`
}

// modifyFromEnvironment reads the process environment when environment is nil
func modifyFromEnvironment(cfg mutableNodeConfig, environment map[string]string) error {
	var overrides environmentOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{Environment: environment}); err != nil {
		return errors.Wrap(err, "failed to parse environment config")
	}

	setString(cfg, HTTP_ADDRESS, overrides.HttpAddress)
	setUint32(cfg, HTTP_MAX_CONNECTIONS, overrides.HttpMaxConnections)
	setBool(cfg, PROFILING, overrides.Profiling)
	setDuration(cfg, PUBLIC_API_SEND_TRANSACTION_TIMEOUT, overrides.SendTransactionTimeout)
	setUint32(cfg, PUBLIC_API_TRANSACTIONS_PER_SECOND, overrides.TransactionsPerSecond)
	setUint32(cfg, PUBLIC_API_TRANSACTIONS_BURST, overrides.TransactionsBurst)
	setBool(cfg, PUBLIC_API_AIRDROP_ENABLED, overrides.AirdropEnabled)
	setUint32(cfg, PUBLIC_API_AIRDROP_MAX_AMOUNT, overrides.AirdropMaxAmount)
	setDuration(cfg, VIRTUAL_MACHINE_ACCOUNT_LOCK_TIMEOUT, overrides.AccountLockTimeout)
	setUint32(cfg, VIRTUAL_MACHINE_RENT_PER_BYTE, overrides.RentPerByte)
	setString(cfg, STATE_STORAGE_SQLITE_PATH, overrides.SqlitePath)
	setBool(cfg, LOGGER_FULL_LOG, overrides.LoggerFullLog)
	setDuration(cfg, METRICS_REPORT_INTERVAL, overrides.MetricsReportInterval)
	setString(cfg, NTP_ENDPOINT, overrides.NTPEndpoint)

	return nil
}

func setString(cfg mutableNodeConfig, key string, value *string) {
	if value != nil {
		cfg.SetString(key, *value)
	}
}

func setUint32(cfg mutableNodeConfig, key string, value *uint32) {
	if value != nil {
		cfg.SetUint32(key, *value)
	}
}

func setBool(cfg mutableNodeConfig, key string, value *bool) {
	if value != nil {
		cfg.SetBool(key, *value)
	}
}

func setDuration(cfg mutableNodeConfig, key string, value *time.Duration) {
	if value != nil {
		cfg.SetDuration(key, *value)
	}
}

// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

func Validate(cfg NodeConfig) error {
	if err := requireGT(cfg.SendTransactionTimeout, cfg.VirtualMachineAccountLockTimeout, "send transaction timeout must be greater than the account lock timeout"); err != nil {
		return err
	}
	if err := requireNonZero(cfg.PublicApiTransactionsPerSecond); err != nil {
		return err
	}
	if err := requireNonZero(cfg.PublicApiTransactionsBurst); err != nil {
		return err
	}
	if err := requireNonZero(cfg.HttpMaxConnections); err != nil {
		return err
	}
	if cfg.MetricsReportInterval() <= 0 {
		return errors.New("metrics report interval must be positive")
	}
	return nil
}

func requireGT(d1 func() time.Duration, d2 func() time.Duration, msg string) error {
	if d1() <= d2() {
		return errors.Errorf("%s (%s=%s, %s=%s)", msg, funcName(d1), d1(), funcName(d2), d2())
	}
	return nil
}

func requireNonZero(u func() uint32) error {
	if u() == 0 {
		return errors.Errorf("%s must not be zero", funcName(u))
	}
	return nil
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}

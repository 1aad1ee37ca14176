// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package instrumentation

import (
	"os"

	"github.com/orbs-network/knowledge-directory/config"
	"github.com/orbs-network/knowledge-directory/services/virtualmachine"
	"github.com/orbs-network/scribe/log"
)

func GetBootstrapCrashLogger() log.Logger {
	path := "./knowledge-directory-bootstrap.log"

	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}

	fileWriter := log.NewTruncatingFileWriter(logFile)
	outputs := []log.Output{
		log.NewFormattingOutput(fileWriter, log.NewHumanReadableFormatter()),
		log.NewFormattingOutput(os.Stderr, log.NewHumanReadableFormatter()),
	}

	return log.GetLogger().WithOutput(outputs...)
}

// GetLogger writes json to stdout unless silent and to path when given; without full log only errors and committed transactions pass
func GetLogger(path string, silent bool, cfg config.NodeConfig) log.Logger {
	outputs := make([]log.Output, 0, 2)

	if !silent {
		outputs = append(outputs, log.NewFormattingOutput(os.Stdout, log.NewJsonFormatter()))
	}

	if path != "" {
		logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err)
		}

		outputs = append(outputs, log.NewFormattingOutput(log.NewTruncatingFileWriter(logFile), log.NewJsonFormatter()))
	}

	logger := log.GetLogger().WithOutput(outputs...)

	conditionalFilter := log.NewConditionalFilter(false, nil)

	if !cfg.LoggerFullLog() {
		conditionalFilter = log.NewConditionalFilter(true, log.Or(log.OnlyErrors(), log.MatchField(virtualmachine.LogTag)))
	}

	return logger.WithFilters(conditionalFilter)
}

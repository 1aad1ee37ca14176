// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"encoding/json"
	"math"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// GetNodeConfigFromFiles layers the production defaults, every json file in order, KD_ environment variables
// and finally the command line http address
func GetNodeConfigFromFiles(configFiles []string, httpAddress string) (NodeConfig, error) {
	cfg := defaultProductionConfig()

	for _, path := range configFiles {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open config file %s", path)
		}

		if err := modifyFromJson(cfg, string(contents)); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	if err := modifyFromEnvironment(cfg, nil); err != nil {
		return nil, err
	}

	if httpAddress != "" {
		cfg.SetString(HTTP_ADDRESS, httpAddress)
	}

	return cfg, nil
}

func modifyFromJson(cfg mutableNodeConfig, source string) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

func parseUint32(f64 float64) (uint32, error) {
	if f64 < 0 || f64 > math.MaxUint32 || f64 != math.Trunc(f64) {
		return 0, errors.Errorf("%v is not an unsigned 32 bit integer", f64)
	}
	return uint32(f64), nil
}

func populateConfig(cfg mutableNodeConfig, data map[string]interface{}) error {
	for key, value := range data {
		switch value := value.(type) {
		case bool:
			cfg.SetBool(convertKeyName(key), value)
		case float64:
			numericValue, err := parseUint32(value)
			if err != nil {
				return errors.Wrapf(err, "could not decode value for config key %s", key)
			}
			cfg.SetUint32(convertKeyName(key), numericValue)
		case string:
			if duration, err := time.ParseDuration(value); err == nil {
				cfg.SetDuration(convertKeyName(key), duration)
			} else {
				cfg.SetString(convertKeyName(key), value)
			}
		default:
			return errors.Errorf("unsupported value type %T for config key %s", value, key)
		}
	}

	return nil
}

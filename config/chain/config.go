// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/sprintertech/svm-spoke/config"
)

type GeneralChainConfig struct {
	Name   string  `mapstructure:"name"`
	Id     *uint64 `mapstructure:"id"`
	Type   string  `mapstructure:"type"`
	DBPath string  `mapstructure:"dbPath" default:"./spoke.db"`
}

func (c *GeneralChainConfig) Validate() error {
	// viper defaults to 0 for not specified ints
	if c.Id == nil {
		return fmt.Errorf("required field chain.Id empty for chain %v", c.Name)
	}
	if c.Name == "" {
		return fmt.Errorf("required field chain.Name empty for chain %v", *c.Id)
	}
	return nil
}

func (c *GeneralChainConfig) ParseFlags() {
	db := viper.GetString(config.DBFlagName)
	if db != "" {
		c.DBPath = db
	}
}

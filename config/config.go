// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName       = "config"
	BaseConfigFlagName   = "base-config"
	DBFlagName           = "db"
	SolverConfigFlagName = "solver-config"
	ENV_PREFIX           = "SPOKE"
)

type Config struct {
	RelayerConfig RelayerConfig
	ChainConfigs  []map[string]interface{}
}

type RelayerConfig struct {
	Id                        string
	Env                       string
	LogLevel                  zerolog.Level
	HealthPort                uint16
	ApiAddr                   string
	OpenTelemetryCollectorURL string
}

type RawConfig struct {
	RelayerConfig RawRelayerConfig         `mapstructure:"relayer" json:"relayer"`
	ChainConfigs  []map[string]interface{} `mapstructure:"chains" json:"chains"`
}

type RawRelayerConfig struct {
	Id                        string `mapstructure:"id" json:"id"`
	Env                       string `mapstructure:"env" json:"env" default:"local"`
	LogLevel                  string `mapstructure:"logLevel" json:"logLevel" default:"info"`
	HealthPort                uint16 `mapstructure:"healthPort" json:"healthPort" default:"9001"`
	ApiAddr                   string `mapstructure:"apiAddr" json:"apiAddr" default:":3000"`
	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorURL" json:"openTelemetryCollectorURL"`
}

// BindFlags registers the configuration flags on the root command.
func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, ".", "Path to the JSON/YAML configuration file or 'env' to read it from the environment")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().String(BaseConfigFlagName, "", "Path to a JSON configuration filling fields missing from the main one")
	_ = viper.BindPFlag(BaseConfigFlagName, rootCMD.PersistentFlags().Lookup(BaseConfigFlagName))

	rootCMD.PersistentFlags().String(DBFlagName, "", "Path to the program account store, overrides the chain dbPath")
	_ = viper.BindPFlag(DBFlagName, rootCMD.PersistentFlags().Lookup(DBFlagName))

	rootCMD.PersistentFlags().String(SolverConfigFlagName, "", "Path to the shared solver configuration")
	_ = viper.BindPFlag(SolverConfigFlagName, rootCMD.PersistentFlags().Lookup(SolverConfigFlagName))
}

// GetConfigFromFile reads the configuration file at path. Fields missing from the file are
// taken from base when it is set.
func GetConfigFromFile(path string, base *RawConfig) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed reading config file %s: %w", path, err)
	}

	raw := RawConfig{}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, err
	}
	return processRawConfig(raw, base)
}

// GetConfigFromENV reads the configuration from SPOKE_ prefixed variables, loading a .env file
// first when one is present. Chains are given as a JSON array in SPOKE_CHAINS.
func GetConfigFromENV(base *RawConfig) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()

	raw := RawConfig{
		RelayerConfig: RawRelayerConfig{
			Id:                        v.GetString("ID"),
			Env:                       v.GetString("ENV"),
			LogLevel:                  v.GetString("LOG_LEVEL"),
			// nolint:gosec
			HealthPort:                uint16(v.GetUint("HEALTH_PORT")),
			ApiAddr:                   v.GetString("API_ADDR"),
			OpenTelemetryCollectorURL: v.GetString("OPEN_TELEMETRY_COLLECTOR_URL"),
		},
	}
	if chains := v.GetString("CHAINS"); chains != "" {
		if err := json.Unmarshal([]byte(chains), &raw.ChainConfigs); err != nil {
			return nil, fmt.Errorf("failed decoding %s_CHAINS: %w", ENV_PREFIX, err)
		}
	}
	return processRawConfig(raw, base)
}

// GetBaseConfig decodes a partial configuration used to fill fields left out of the main one.
func GetBaseConfig(data map[string]interface{}) (*RawConfig, error) {
	raw := &RawConfig{}
	if err := mapstructure.Decode(data, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func processRawConfig(raw RawConfig, base *RawConfig) (*Config, error) {
	if base != nil {
		if err := mergo.Merge(&raw, base); err != nil {
			return nil, err
		}
	}
	if err := defaults.Set(&raw); err != nil {
		return nil, err
	}
	if len(raw.ChainConfigs) == 0 {
		return nil, fmt.Errorf("no chains configured")
	}

	logLevel, err := zerolog.ParseLevel(raw.RelayerConfig.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", raw.RelayerConfig.LogLevel, err)
	}

	return &Config{
		RelayerConfig: RelayerConfig{
			Id:                        raw.RelayerConfig.Id,
			Env:                       raw.RelayerConfig.Env,
			LogLevel:                  logLevel,
			HealthPort:                raw.RelayerConfig.HealthPort,
			ApiAddr:                   raw.RelayerConfig.ApiAddr,
			OpenTelemetryCollectorURL: raw.RelayerConfig.OpenTelemetryCollectorURL,
		},
		ChainConfigs: raw.ChainConfigs,
	}, nil
}

// ReadFile reads a JSON document into v.
func ReadFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

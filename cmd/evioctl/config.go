package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = ".evioctl"
	configType = "yaml"
	envPrefix  = "EVIOCTL"
)

// cfg holds settings merged from flags, EVIOCTL_* environment variables and
// the config file, in that order of precedence.
var cfg = viper.New()

// Config keys, named after the flags they back.
var configKeys = []string{"json", "cache-size", "depth", "payload-bytes"}

func bindConfigFlags(fs *pflag.FlagSet) {
	for _, key := range configKeys {
		if err := cfg.BindPFlag(key, fs.Lookup(key)); err != nil {
			panic(fmt.Sprintf("bind flag %q: %v", key, err))
		}
	}
}

// initConfig reads the config file and copies the merged settings into the
// flag variables. A missing default config file is not an error; a missing
// --config file is.
func initConfig() error {
	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			cfg.AddConfigPath(home)
		}
		cfg.SetConfigName(configName)
		cfg.SetConfigType(configType)
	}
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		printVerbose("Using config: %s\n", cfg.ConfigFileUsed())
	}

	jsonOut = cfg.GetBool("json")
	cacheSize = cfg.GetInt("cache-size")
	maxDepth = cfg.GetInt("depth")
	payloadBytes = cfg.GetInt("payload-bytes")
	return nil
}

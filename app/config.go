package main

import "github.com/spf13/viper"

type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`

	// SubstratePath is the sqlite file all collections persist into. One file
	// per profile; deleting it resets the platform to a freshly seeded state.
	SubstratePath string `mapstructure:"SUBSTRATE_PATH"`
}

func loadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.SubstratePath == "" {
		config.SubstratePath = "inkwell.db"
	}

	return &config, nil
}

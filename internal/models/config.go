package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	BaseURL         string        `mapstructure:"base_url"`
	Language        string        `mapstructure:"language"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	WaiterCooldown  time.Duration `mapstructure:"waiter_cooldown"`
	HistoryLimit    int           `mapstructure:"history_limit"`
	RecentWindow    time.Duration `mapstructure:"recent_window"`
	StorePath       string        `mapstructure:"store_path"`
	MirrorAddr      string        `mapstructure:"mirror_addr"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	KafkaTopic      string `mapstructure:"kafka_topic"`
	OutputFolder    string `mapstructure:"output_folder"`

	ArchiveEnabled bool   `mapstructure:"archive_enabled"`
	ArchiveBucket  string `mapstructure:"archive_bucket"`
	ArchiveRegion  string `mapstructure:"archive_region"`
	ArchivePrefix  string `mapstructure:"archive_prefix"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("carta")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("base_url", "http://localhost:8080/api")
	viper.SetDefault("language", "es")
	viper.SetDefault("refresh_interval", "30s")
	viper.SetDefault("request_timeout", "10s")
	viper.SetDefault("waiter_cooldown", "3s")
	viper.SetDefault("history_limit", 20)
	viper.SetDefault("recent_window", "60s")
	viper.SetDefault("store_path", "./carta.db")
	viper.SetDefault("mirror_addr", ":9090")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("kafka_topic", "menu_changes")
	viper.SetDefault("archive_prefix", "menu-history")

	if err := viper.ReadInConfig(); err != nil {
		// The defaults cover a local setup; only a config file that
		// exists but cannot be read is fatal.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

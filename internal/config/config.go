package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Storage struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
	Portal struct {
		BaseURL string `yaml:"baseURL"`
	} `yaml:"portal"`
	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"smtp"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "uniportal.db"
		log.Println("Storage path not specified, using default uniportal.db")
	}
	if cfg.Portal.BaseURL == "" {
		cfg.Portal.BaseURL = "http://localhost:3000"
		log.Println("Portal base URL not specified, using default http://localhost:3000")
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	return &cfg, nil
}

package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Directory struct {
		BaseURL        string `yaml:"base_url"`
		WSURL          string `yaml:"ws_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"directory"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Search struct {
		CenterLat float64 `yaml:"center_lat"`
		CenterLng float64 `yaml:"center_lng"`
		RadiusKm  float64 `yaml:"radius_km"`
		PageSize  int     `yaml:"page_size"`
	} `yaml:"search"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}
	return cfg
}

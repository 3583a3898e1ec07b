package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration. Values load from an optional YAML
// file, then environment variables override field by field.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		SSLMode  string `yaml:"sslmode"`
	} `yaml:"database"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Orchestrator struct {
		BatchSize int `yaml:"batch_size"`
	} `yaml:"orchestrator"`
}

func loadConfig() (*Config, error) {
	var config Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Server.Port = getEnv("PORT", defaultStr(config.Server.Port, "8080"))
	config.Database.Host = getEnv("DB_HOST", defaultStr(config.Database.Host, "localhost"))
	config.Database.Port = getEnvAsInt("DB_PORT", defaultInt(config.Database.Port, 5432))
	config.Database.User = getEnv("DB_USER", defaultStr(config.Database.User, "postgres"))
	config.Database.Password = getEnv("DB_PASSWORD", defaultStr(config.Database.Password, "postgres"))
	config.Database.Database = getEnv("DB_NAME", defaultStr(config.Database.Database, "draftroom"))
	config.Database.SSLMode = getEnv("DB_SSLMODE", defaultStr(config.Database.SSLMode, "disable"))
	config.NATS.URL = getEnv("NATS_URL", config.NATS.URL)
	config.Orchestrator.BatchSize = getEnvAsInt("ORCH_BATCH_SIZE", defaultInt(config.Orchestrator.BatchSize, 50))

	return &config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func defaultStr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func defaultInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Auth            AuthConfig           `mapstructure:"auth"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	// SecretName, when set, overrides Password with the value stored in
	// AWS Secrets Manager.
	SecretName string `mapstructure:"secretName"`
	Region     string `mapstructure:"region"`
}

type RedisConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	Database   int    `mapstructure:"database"`
	TTLSeconds int    `mapstructure:"ttlSeconds"`
}

type AuthConfig struct {
	Secret          string `mapstructure:"secret"`
	TokenTTLMinutes int    `mapstructure:"tokenTTLMinutes"`
}

type ExternalClientConfig struct {
	Fundamentus FundamentusConfig `mapstructure:"fundamentus"`
}

type FundamentusConfig struct {
	BaseURL  string `mapstructure:"baseUrl"`
	CronSpec string `mapstructure:"cronSpec"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	// Local overrides (secrets, connection strings) come from .env when present.
	_ = godotenv.Load()

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

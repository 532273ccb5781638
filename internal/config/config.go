package config

import (
	"github.com/spf13/viper"

	"github.com/prizeday/contest-backend/internal/contest"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Contest  ContestConfig
	UPI      UPIConfig
	Mail     MailConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// ContestConfig holds contest rules: prize ladder, session boundaries,
// entry pricing and selection limits.
type ContestConfig struct {
	Tiers              []contest.Tier
	SecondSessionHour  int
	ThirdSessionHour   int
	EntryFee           float64
	MaxParticipants    int
	MinParticipants    int // selection below this needs the force flag
	SelectionBatchSize int
}

// UPIConfig holds the merchant details used to build UPI deep links
type UPIConfig struct {
	MerchantVPA  string
	MerchantName string
	MockVerify   bool
}

// MailConfig holds SMTP gateway configuration
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	MockMail bool
	QueueSize int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if len(config.Contest.Tiers) == 0 {
		config.Contest.Tiers = contest.DefaultTiers
	}

	return &config, nil
}

// Clock builds the session clock from the configured window boundaries.
func (c *Config) Clock() contest.Clock {
	return contest.Clock{
		SecondSessionHour: c.Contest.SecondSessionHour,
		ThirdSessionHour:  c.Contest.ThirdSessionHour,
	}
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "prizeday-contest")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Contest.SecondSessionHour", 14)
	viper.SetDefault("Contest.ThirdSessionHour", 20)
	viper.SetDefault("Contest.EntryFee", 10)
	viper.SetDefault("Contest.MaxParticipants", 100000)
	viper.SetDefault("Contest.MinParticipants", 100)
	viper.SetDefault("Contest.SelectionBatchSize", 10)
	viper.SetDefault("UPI.MerchantVPA", "contest@okhdfcbank")
	viper.SetDefault("UPI.MerchantName", "PrizeDay Contest")
	viper.SetDefault("UPI.MockVerify", true)
	viper.SetDefault("Mail.Host", "localhost")
	viper.SetDefault("Mail.Port", 587)
	viper.SetDefault("Mail.From", "no-reply@prizeday.example")
	viper.SetDefault("Mail.MockMail", true)
	viper.SetDefault("Mail.QueueSize", 256)
}

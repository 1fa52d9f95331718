package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Promo    PromoConfig
	Wheel    WheelConfig
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
	ExpiresIn int
}

// PromoConfig holds configuration for the remote eligibility/logging service
type PromoConfig struct {
	Endpoint        string
	MockAPI         bool
	FallbackTimeout int // seconds; bound on the callback-GET fallback transport
}

// WheelConfig holds wheel-specific configuration
type WheelConfig struct {
	CountryCode        string   // prefix applied to national numbers, e.g. "+994"
	ReservedTier       string   // tier excluded from every weighted pool
	FirstSpinGiftID    string   // designated no-win gift for the first spin of the day
	SecondSpinGiftID   string   // designated placeholder gift for the second spin
	ConsolationGiftIDs []string // uniform menu for the third spin
	SessionTTLMinutes  int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

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

	// Hosting platforms inject PORT directly; the remaining overrides are the
	// per-environment toggles that don't warrant a config file of their own
	config.Server.Port = GetEnv("PORT", config.Server.Port)
	config.Server.AllowedHosts = GetEnvAsSlice("ALLOWED_HOSTS", ",", config.Server.AllowedHosts)
	config.Promo.MockAPI = GetEnvAsBool("PROMO_MOCK_API", config.Promo.MockAPI)
	config.Promo.FallbackTimeout = GetEnvAsInt("PROMO_FALLBACK_TIMEOUT", config.Promo.FallbackTimeout)

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "brendimo-spinwheel")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Promo.Endpoint", "")
	viper.SetDefault("Promo.MockAPI", true)
	viper.SetDefault("Promo.FallbackTimeout", 11)
	viper.SetDefault("Wheel.CountryCode", "+994")
	viper.SetDefault("Wheel.ReservedTier", "E")
	viper.SetDefault("Wheel.FirstSpinGiftID", "F1")
	viper.SetDefault("Wheel.SecondSpinGiftID", "B1")
	viper.SetDefault("Wheel.ConsolationGiftIDs", []string{"B2", "C1", "D3", "C3", "B3"})
	viper.SetDefault("Wheel.SessionTTLMinutes", 60)
}

/**
 * @description
 * This package handles the configuration management for the service. It uses the
 * Viper library to read configuration from environment variables, providing a
 * centralized and straightforward way to manage application settings.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the admin-service.
// These values are loaded from environment variables.
type Config struct {
	ServerPort                string `mapstructure:"SERVER_PORT"`
	DatabaseURL               string `mapstructure:"DATABASE_URL"`
	RedisURL                  string `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix      string `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	RabbitMQURL               string `mapstructure:"RABBITMQ_URL"`
	AuditEventExchange        string `mapstructure:"AUDIT_EVENT_EXCHANGE"`
	AuditEventRoutingKey      string `mapstructure:"AUDIT_EVENT_ROUTING_KEY"`
	JWTSecret                 string `mapstructure:"JWT_SECRET"`
	AllowedOrigins            string `mapstructure:"ALLOWED_ORIGINS"`
	ReadOnlyMode              bool   `mapstructure:"READ_ONLY_MODE"`
	EnableOpsTools            bool   `mapstructure:"ENABLE_OPS_TOOLS"`
	EnableReconciliation      bool   `mapstructure:"ENABLE_RECONCILIATION"`
	OpsRateLimitPerMinute     int    `mapstructure:"OPS_RATE_LIMIT_PER_MINUTE"`
	FinanceOverviewAuditLimit int    `mapstructure:"FINANCE_OVERVIEW_AUDIT_LIMIT"`
}

// LoadConfig reads configuration from environment variables from the given path.
// It uses Viper to automatically bind environment variables to the Config struct.
func LoadConfig(path string) (config Config, err error) {
	// Tell viper the path to look for the optional .env file.
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	// Enable automatic binding of environment variables.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("AUDIT_EVENT_EXCHANGE", "admin_audit_events")
	viper.SetDefault("AUDIT_EVENT_ROUTING_KEY", "audit.entry.recorded")
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "eventra:admin:rate_limit")
	viper.SetDefault("READ_ONLY_MODE", false)
	viper.SetDefault("ENABLE_OPS_TOOLS", false)
	viper.SetDefault("ENABLE_RECONCILIATION", false)
	viper.SetDefault("OPS_RATE_LIMIT_PER_MINUTE", 10)
	viper.SetDefault("FINANCE_OVERVIEW_AUDIT_LIMIT", 10)

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL", "REDIS_URL", "ADMIN_REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("AUDIT_EVENT_EXCHANGE")
	_ = viper.BindEnv("AUDIT_EVENT_ROUTING_KEY")
	_ = viper.BindEnv("JWT_SECRET", "JWT_SECRET", "ADMIN_JWT_SECRET")
	_ = viper.BindEnv("ALLOWED_ORIGINS")
	_ = viper.BindEnv("READ_ONLY_MODE")
	_ = viper.BindEnv("ENABLE_OPS_TOOLS")
	_ = viper.BindEnv("ENABLE_RECONCILIATION")
	_ = viper.BindEnv("OPS_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("FINANCE_OVERVIEW_AUDIT_LIMIT")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		// If the config file is not found, we can ignore the error.
		// For other errors, we should return them.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
	}

	// Unmarshal the configuration into the Config struct.
	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		config.ServerPort = port
	}
	if strings.TrimSpace(config.JWTSecret) == "" {
		config.JWTSecret = strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET"))
	}
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RedisRateLimitPrefix = strings.TrimSpace(config.RedisRateLimitPrefix)
	if config.RedisRateLimitPrefix == "" {
		config.RedisRateLimitPrefix = "eventra:admin:rate_limit"
	}

	if config.OpsRateLimitPerMinute < 0 {
		log.Printf("level=warn component=config msg=\"negative ops rate limit configured; coercing to zero\" limit=%d", config.OpsRateLimitPerMinute)
		config.OpsRateLimitPerMinute = 0
	}
	if config.FinanceOverviewAuditLimit <= 0 {
		config.FinanceOverviewAuditLimit = 10
	}

	return
}

// AllowedOriginList splits the comma-separated ALLOWED_ORIGINS value into a
// slice, skipping blank entries.
func (c Config) AllowedOriginList() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variable.
type Config struct {
	// Database Configurations
	DBDriver     string `mapstructure:"DB_DRIVER"` // postgres or sqlite
	DBHost       string `mapstructure:"DB_HOST"`
	DBUser       string `mapstructure:"DB_USER"`
	DBPassword   string `mapstructure:"DB_PASSWORD"`
	DBName       string `mapstructure:"DB_NAME"`
	DBPort       string `mapstructure:"DB_PORT"`
	DBSQLitePath string `mapstructure:"DB_SQLITE_PATH"`
	DBLogLevel   string `mapstructure:"DB_LOG_LEVEL"`

	// Server Configurations
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	TLSCertFile   string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile    string `mapstructure:"TLS_KEY_FILE"`
	APIPrefix     string `mapstructure:"API_PREFIX"`

	// Security/Encryption Configurations
	EncryptionKey string `mapstructure:"NMS_SECRET"`

	// Probe Configurations
	ProbeTimeoutMs       int    `mapstructure:"PROBE_TIMEOUT_MS"`
	ProbeWorkers         int    `mapstructure:"PROBE_WORKERS"`
	ProbeQueueSize       int    `mapstructure:"PROBE_QUEUE_SIZE"`
	SNMPDefaultCommunity string `mapstructure:"SNMP_DEFAULT_COMMUNITY"`
	SNMPDefaultPort      int    `mapstructure:"SNMP_DEFAULT_PORT"`
	SSHDefaultPort       int    `mapstructure:"SSH_DEFAULT_PORT"`

	// Internal Queue Settings
	InternalQueueSize int `mapstructure:"INTERNAL_QUEUE_SIZE"`

	// Device health tracking
	HealthWindowMinutes    int `mapstructure:"HEALTH_WINDOW_MINUTES"`
	HealthFailureThreshold int `mapstructure:"HEALTH_FAILURE_THRESHOLD"`
}

// ProbeTimeout returns the per-probe socket deadline.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// 1. Set Defaults
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "netinv")
	v.SetDefault("DB_PASSWORD", "netinv")
	v.SetDefault("DB_NAME", "netinv")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SQLITE_PATH", "netinv.db")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("TLS_CERT_FILE", "")
	v.SetDefault("TLS_KEY_FILE", "")
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("NMS_SECRET", "1234567890123456789012345678901212345678901234567890123456789012")
	v.SetDefault("PROBE_TIMEOUT_MS", 2000)
	v.SetDefault("PROBE_WORKERS", 16)
	v.SetDefault("PROBE_QUEUE_SIZE", 64)
	v.SetDefault("SNMP_DEFAULT_COMMUNITY", "public")
	v.SetDefault("SNMP_DEFAULT_PORT", 161)
	v.SetDefault("SSH_DEFAULT_PORT", 22)
	v.SetDefault("INTERNAL_QUEUE_SIZE", 100)
	v.SetDefault("HEALTH_WINDOW_MINUTES", 5)
	v.SetDefault("HEALTH_FAILURE_THRESHOLD", 3)

	// 2. Read app.yaml if exists
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 3. Read .env if exists (overriding app.yaml)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 4. Allow Viper to read Environment Variables (highest priority)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

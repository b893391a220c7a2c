package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Clinic   ClinicConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ClinicConfig holds the clinic's booking rules: who can be booked and
// how the invoice surcharges are computed.
type ClinicConfig struct {
	Name            string
	Dermatologists  []string
	RegistrationFee decimal.Decimal
	TaxRate         decimal.Decimal
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	fee, err := getEnvAsDecimal("CLINIC_REGISTRATION_FEE", "500.00")
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_REGISTRATION_FEE: %w", err)
	}
	taxRate, err := getEnvAsDecimal("CLINIC_TAX_RATE", "0.025")
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TAX_RATE: %w", err)
	}

	return &Config{
		Clinic: ClinicConfig{
			Name:            getEnv("CLINIC_NAME", "Aurora Skin Care"),
			Dermatologists:  getEnvAsList("CLINIC_DERMATOLOGISTS", "Dr. Ariyathunga,Dr. Jayaweera"),
			RegistrationFee: fee,
			TaxRate:         taxRate,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "aurora_skincare"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Log: LogConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getEnvAsDecimal(key, defaultValue string) (decimal.Decimal, error) {
	return decimal.NewFromString(getEnv(key, defaultValue))
}

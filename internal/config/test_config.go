package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If .env file doesn't exist or environment variables are not set, returns a Config with empty values
// which allows tests to skip when no database is wired
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()

	cfg := &Config{}
	dbHost := os.Getenv("TEST_DB_HOST")
	if dbHost == "" {
		// Return empty config to let the suite skip
		return cfg, nil
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("TEST_DB_PORT")
	if dbPortStr == "" {
		return cfg, nil
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("TEST_DB_USER")
	if dbUser == "" {
		return cfg, nil
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("TEST_DB_PASSWORD")
	if dbPassword == "" {
		return cfg, nil
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("TEST_DB_NAME")
	if dbName == "" {
		return cfg, nil
	}
	cfg.Database.DBName = dbName

	// Signing secret for the suite
	jwtSecret := os.Getenv("TEST_JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "test-secret-key-for-integration-tests"
	}
	cfg.JWT.Secret = jwtSecret

	// Session token TTL (default: 1 hour)
	tokenTTLStr := os.Getenv("TEST_TOKEN_TTL")
	if tokenTTLStr == "" {
		tokenTTLStr = "1h"
	}
	tokenTTL, err := time.ParseDuration(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_TOKEN_TTL: %w", err)
	}
	cfg.JWT.TokenTTL = tokenTTL

	cfg.APIKey = os.Getenv("TEST_API_KEY")

	return cfg, nil
}

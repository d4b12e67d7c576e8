// Package config provides configuration management for the taskdeck application.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: all problems found while loading are returned as
// a single aggregated error instead of failing on the first one.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// PoolConfig represents configuration for the database connection pool.
type PoolConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxSize  int
}

// AuthConfig holds authentication-related configuration.
//
// TokenDuration (2h) and CookieMaxAge (7d) are deliberately inconsistent: the
// session cookie outlives the token it carries, so requests between hour 2 and
// day 7 present a cookie that verification rejects. Both knobs live here so
// the mismatch is visible in one place.
type AuthConfig struct {
	JWTSecret     string        // Secret key for signing session tokens
	TokenDuration time.Duration // Token lifetime from issuance
	CookieMaxAge  time.Duration // Lifetime of the session cookie
	BcryptCost    int           // Cost factor for password hashing
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   // Port for the HTTP server
	StaticDir      string   // Directory holding the single-page bundle
	CORSOrigins    []string // Origins allowed to send credentialed requests
	Debug          bool     // Include internal error detail in 500 responses
	RunMigrations  bool     // Apply pending migrations on startup
	MigrationsPath string   // Directory holding migration SQL files
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	DB     *PoolConfig
	Auth   *AuthConfig
	Server *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// errors slice if it is not set.
func getRequiredEnv(key string, errors *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errors = append(*errors, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvInt reads an optional environment variable parsed as an int.
// Uses defaultValue if not set; appends an error if parsing fails.
func getOptionalEnvInt(key string, defaultValue int, errors *[]string) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected integer, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueInt
}

// getOptionalEnvBool reads an optional environment variable parsed as a bool.
func getOptionalEnvBool(key string, defaultValue bool, errors *[]string) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected boolean, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueBool
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("2h", "15m"). Uses defaultValue if not set; appends an error
// if parsing fails.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errors *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errors = append(*errors, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// validatePoolSize clamps the pool size between 5 and 100, recording a note
// in the errors slice when clamping is applied.
func validatePoolSize(size int, varName string, errors *[]string) int {
	if size < 5 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is less than minimum 5, clamping to 5", varName, size))
		return 5
	}
	if size > 100 {
		*errors = append(*errors, fmt.Sprintf("pool size for %s (%d) is greater than maximum 100, clamping to 100", varName, size))
		return 100
	}
	return size
}

// parseOrigins splits a comma-separated origin list into a slice.
func parseOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errors []string

	// Database configuration
	dbUser := getRequiredEnv("DB_USER", &errors)
	dbPassword := getRequiredEnv("DB_PASSWORD", &errors)
	dbName := getRequiredEnv("DB_NAME", &errors)
	dbHost := getOptionalEnv("DB_HOST", "localhost")
	dbPort := getOptionalEnvInt("DB_PORT", 5432, &errors)
	poolSize := validatePoolSize(getOptionalEnvInt("DB_POOL_SIZE", 10, &errors), "DB_POOL_SIZE", &errors)

	dbConfig := &PoolConfig{
		Host:     dbHost,
		Port:     dbPort,
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
		MaxSize:  poolSize,
	}

	// Auth configuration
	jwtSecret := getRequiredEnv("JWT_SECRET", &errors)
	tokenDuration := getOptionalEnvDuration("TOKEN_DURATION", 2*time.Hour, &errors)
	cookieMaxAge := getOptionalEnvDuration("COOKIE_MAX_AGE", 168*time.Hour, &errors) // 7 days
	bcryptCost := getOptionalEnvInt("BCRYPT_COST", 10, &errors)

	authConfig := &AuthConfig{
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
		CookieMaxAge:  cookieMaxAge,
		BcryptCost:    bcryptCost,
	}

	// Server configuration
	serverConfig := &ServerConfig{
		Port:           getOptionalEnv("PORT", "8000"),
		StaticDir:      getOptionalEnv("STATIC_DIR", "./static"),
		CORSOrigins:    parseOrigins(getOptionalEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		Debug:          getOptionalEnvBool("DEBUG", false, &errors),
		RunMigrations:  getOptionalEnvBool("RUN_MIGRATIONS", false, &errors),
		MigrationsPath: getOptionalEnv("MIGRATIONS_PATH", "./migrations"),
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return &AppConfig{
		DB:     dbConfig,
		Auth:   authConfig,
		Server: serverConfig,
	}, nil
}

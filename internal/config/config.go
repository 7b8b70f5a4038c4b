package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the CV generation service.
// Loaded once at startup and passed explicitly to the components that
// need it; there is no package-level configuration state.
type Config struct {
	// Server
	Port                         string
	GinMode                      string
	ServerShutdownTimeoutSeconds int

	// Generation
	TemplatesDir          string
	OutputDir             string
	DefaultTemplate       string
	ArtifactPrefix        string
	CompilerBin           string
	CompileTimeoutSeconds int
	MaxArtifactSizeMB     int
	MaxConcurrentCompiles int

	// Output cleanup
	CleanupEnabled      bool
	CleanupSchedule     string
	OutputRetentionDays int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:                         getEnvOrDefault("PORT", "5001"),
		GinMode:                      getEnvOrDefault("GIN_MODE", "release"),
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),

		TemplatesDir:          getEnvOrDefault("TEMPLATES_DIR", "./templates"),
		OutputDir:             getEnvOrDefault("OUTPUT_DIR", "./cv_output"),
		DefaultTemplate:       getEnvOrDefault("DEFAULT_TEMPLATE", "resume_balz"),
		ArtifactPrefix:        getEnvOrDefault("ARTIFACT_PREFIX", "cv_balz"),
		CompilerBin:           getEnvOrDefault("PDFLATEX_BIN", "pdflatex"),
		CompileTimeoutSeconds: getEnvAsInt("COMPILE_TIMEOUT_SECONDS", 60),
		MaxArtifactSizeMB:     getEnvAsInt("MAX_ARTIFACT_SIZE_MB", 50),
		// 0 disables the bound; pdflatex runs are memory hungry, so the
		// server ships with a small cap.
		MaxConcurrentCompiles: getEnvAsInt("MAX_CONCURRENT_COMPILES", 4),

		CleanupEnabled:      getEnvOrDefault("CLEANUP_ENABLED", "false") == "true",
		CleanupSchedule:     getEnvOrDefault("CLEANUP_SCHEDULE", "0 3 * * *"),
		OutputRetentionDays: getEnvAsInt("OUTPUT_RETENTION_DAYS", 30),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

package logger

import "os"

// LoggerConfig controls level, format and destination of the process logger.
type LoggerConfig struct {
	Level      string
	Format     string
	OutputFile string
}

func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      getEnv("LOG_LEVEL", "info"),
		Format:     getEnv("LOG_FORMAT", "json"),
		OutputFile: getEnv("LOG_OUTPUT", "stdout"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

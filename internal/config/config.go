package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	Database    DatabaseConfig
	RabbitMQ    RabbitMQConfig
	Analysis    AnalysisConfig
	Report      ReportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// RabbitMQConfig holds RabbitMQ connection and queue settings
type RabbitMQConfig struct {
	URL              string
	JobExchange      string
	JobQueue         string
	JobRoutingKey    string
	WorkerExchange   string
	WorkerRoutingKey string
	DLQQueue         string
	PrefetchCount    int
}

// AnalysisConfig holds the reconciliation policy values. Both are part of
// the observable contract and are passed into the components explicitly so
// the core stays testable in isolation.
type AnalysisConfig struct {
	// Year stamped onto every booking ledger date (the ledger carries none).
	Year int
	// Intervals shorter than this many minutes are classified Housekeeping.
	HousekeepingThresholdMinutes float64
}

// ReportConfig holds report rendering settings
type ReportConfig struct {
	OutputDir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "occupancy-audit-worker"),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		RabbitMQ: RabbitMQConfig{
			URL:              getEnv("RABBITMQ_URL", ""),
			JobExchange:      getEnv("RABBITMQ_JOB_EXCHANGE", "occupancy-audit.jobs.exchange"),
			JobQueue:         getEnv("RABBITMQ_JOB_QUEUE", "occupancy-audit.jobs.queue"),
			JobRoutingKey:    getEnv("RABBITMQ_JOB_ROUTING_KEY", "occupancy.job.requested"),
			WorkerExchange:   getEnv("RABBITMQ_WORKER_EXCHANGE", "occupancy-audit.worker.events.exchange"),
			WorkerRoutingKey: getEnv("RABBITMQ_WORKER_ROUTING_KEY", "occupancy.job.completed"),
			DLQQueue:         getEnv("RABBITMQ_DLQ_QUEUE", "occupancy-audit.jobs.dlq"),
			PrefetchCount:    getEnvAsInt("RABBITMQ_PREFETCH", 1),
		},
		Analysis: AnalysisConfig{
			Year:                         getEnvAsInt("ANALYSIS_YEAR", 2025),
			HousekeepingThresholdMinutes: getEnvAsFloat("HOUSEKEEPING_THRESHOLD_MINUTES", 15.0),
		},
		Report: ReportConfig{
			OutputDir: getEnv("REPORT_OUTPUT_DIR", "./reports"),
		},
	}

	// Validate required fields
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set in environment variables")
	}
	if cfg.RabbitMQ.URL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required but not set in environment variables")
	}
	if cfg.Analysis.HousekeepingThresholdMinutes <= 0 {
		return nil, fmt.Errorf("HOUSEKEEPING_THRESHOLD_MINUTES must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

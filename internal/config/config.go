package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL         string // GATELOG_DATABASE_URL (required)
	HTTPAddr            string // GATELOG_HTTP_ADDR (default ":8080")
	NATSURL             string // GATELOG_NATS_URL (optional, empty = no events)
	AuthToken           string // GATELOG_AUTH_TOKEN (optional, empty = auth disabled)
	RequireRegistration bool   // GATELOG_REQUIRE_REGISTRATION (default true)

	// Snapshot settings
	SnapshotInterval   time.Duration // GATELOG_SNAPSHOT_INTERVAL (default 0 = disabled)
	SnapshotS3Bucket   string        // GATELOG_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // GATELOG_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // GATELOG_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // GATELOG_SNAPSHOT_S3_KEY (default "gatelog/snapshot.jsonl")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("GATELOG_DATABASE_URL"),
		HTTPAddr:           envOrDefault("GATELOG_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("GATELOG_NATS_URL"),
		AuthToken:          os.Getenv("GATELOG_AUTH_TOKEN"),
		SnapshotS3Bucket:   os.Getenv("GATELOG_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("GATELOG_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("GATELOG_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("GATELOG_SNAPSHOT_S3_KEY", "gatelog/snapshot.jsonl"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("GATELOG_DATABASE_URL is required")
	}

	requireStr := envOrDefault("GATELOG_REQUIRE_REGISTRATION", "true")
	require, err := strconv.ParseBool(requireStr)
	if err != nil {
		return nil, fmt.Errorf("GATELOG_REQUIRE_REGISTRATION: %w", err)
	}
	c.RequireRegistration = require

	intervalStr := envOrDefault("GATELOG_SNAPSHOT_INTERVAL", "0s")
	if intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("GATELOG_SNAPSHOT_INTERVAL: %w", err)
		}
		c.SnapshotInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

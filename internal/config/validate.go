package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Archive.validate(); err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	if strings.TrimSpace(c.Household.DefaultIdentity) == "" {
		return fmt.Errorf("household.default_identity is required")
	}

	if err := c.Compose.validate(); err != nil {
		return fmt.Errorf("compose: %w", err)
	}

	if c.Collaborators.RatePerSecond < 0 {
		return fmt.Errorf("collaborators.rate_per_second must be >= 0 (got %v)", c.Collaborators.RatePerSecond)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if s.QuotaBytes < 0 {
		return fmt.Errorf("quota_bytes must be >= 0 (got %d)", s.QuotaBytes)
	}

	switch s.Backend {
	case BackendMemory:
	case BackendFile:
		if strings.TrimSpace(s.File.Dir) == "" {
			return fmt.Errorf("file.dir is required for the file backend")
		}
	case BackendPostgres:
		if s.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres backend")
		}
	case BackendRedis:
		if s.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
	case BackendDynamoDB:
		if s.DynamoDB.Table == "" {
			return fmt.Errorf("dynamodb.table is required for the dynamodb backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}

	return nil
}

func (a *ArchiveConfig) validate() error {
	if a.MaxStored <= 0 {
		return fmt.Errorf("max_stored must be > 0 (got %d)", a.MaxStored)
	}
	if a.RetryKeep <= 0 || a.RetryKeep > a.MaxStored {
		return fmt.Errorf("retry_keep must be in 1..max_stored (got %d)", a.RetryKeep)
	}
	return nil
}

func (c *ComposeConfig) validate() error {
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("max_message_length must be > 0 (got %d)", c.MaxMessageLength)
	}
	if c.ImageMaxDimension <= 0 {
		return fmt.Errorf("image_max_dimension must be > 0 (got %d)", c.ImageMaxDimension)
	}
	if c.ImageQuality < 1 || c.ImageQuality > 100 {
		return fmt.Errorf("image_quality must be in 1..100 (got %d)", c.ImageQuality)
	}
	if strings.TrimSpace(c.DefaultLocation) == "" {
		return fmt.Errorf("default_location is required")
	}
	return nil
}

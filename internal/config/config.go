package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Archive       ArchiveConfig       `yaml:"archive"`
	Household     HouseholdConfig     `yaml:"household"`
	Compose       ComposeConfig       `yaml:"compose"`
	Collaborators CollaboratorsConfig `yaml:"collaborators"`
	MQTT          MQTTConfig          `yaml:"mqtt"`
	Widget        WidgetConfig        `yaml:"widget"`
	Log           LogConfig           `yaml:"log"`
	CORS          CORSConfig          `yaml:"cors"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"16777216"`
}

// Storage backends.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// StorageConfig selects the key-value backend holding the archive and identity.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
	// QuotaBytes caps the size of a single stored value; 0 disables the cap.
	// The default mirrors a browser's local storage quota.
	QuotaBytes int `yaml:"quota_bytes" env:"STORAGE_QUOTA_BYTES" env-default:"5242880"`

	File     FileStorageConfig     `yaml:"file"`
	Postgres PostgresStorageConfig `yaml:"postgres"`
	Redis    RedisStorageConfig    `yaml:"redis"`
	DynamoDB DynamoDBStorageConfig `yaml:"dynamodb"`
}

// FileStorageConfig holds the on-disk backend settings.
type FileStorageConfig struct {
	Dir string `yaml:"dir" env:"STORAGE_FILE_DIR" env-default:"./data"`
}

// PostgresStorageConfig holds PostgreSQL connection settings.
type PostgresStorageConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// RedisStorageConfig holds Redis connection settings.
type RedisStorageConfig struct {
	Addr      string `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:""`
}

// DynamoDBStorageConfig holds DynamoDB table settings.
type DynamoDBStorageConfig struct {
	Table    string `yaml:"table"    env:"DYNAMODB_TABLE"`
	Region   string `yaml:"region"   env:"AWS_REGION"        env-default:"us-east-1"`
	Endpoint string `yaml:"endpoint" env:"DYNAMODB_ENDPOINT"`
}

// ArchiveConfig holds the postcard archive capacity policy.
type ArchiveConfig struct {
	MaxStored int `yaml:"max_stored" env:"ARCHIVE_MAX_STORED" env-default:"30"`
	RetryKeep int `yaml:"retry_keep" env:"ARCHIVE_RETRY_KEEP" env-default:"5"`
}

// HouseholdConfig holds the family member list.
type HouseholdConfig struct {
	MembersRaw      string `yaml:"members"          env:"HOUSEHOLD_MEMBERS"          env-default:"Julian,Tracey,Francis,Lucy,Orla,Ruby"`
	DefaultIdentity string `yaml:"default_identity" env:"HOUSEHOLD_DEFAULT_IDENTITY" env-default:"Julian"`
}

// Members returns the configured member names, trimmed, blanks dropped.
func (h HouseholdConfig) Members() []string {
	var out []string
	for _, m := range strings.Split(h.MembersRaw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// ComposeConfig holds postcard composition settings.
type ComposeConfig struct {
	MaxMessageLength    int    `yaml:"max_message_length"    env:"COMPOSE_MAX_MESSAGE_LENGTH"    env-default:"90"`
	DefaultLocation     string `yaml:"default_location"      env:"COMPOSE_DEFAULT_LOCATION"      env-default:"Private Grounds"`
	ImageMaxDimension   int    `yaml:"image_max_dimension"   env:"COMPOSE_IMAGE_MAX_DIMENSION"   env-default:"800"`
	ImageQuality        int    `yaml:"image_quality"         env:"COMPOSE_IMAGE_QUALITY"         env-default:"60"`
	PlaceholderImageURL string `yaml:"placeholder_image_url" env:"COMPOSE_PLACEHOLDER_IMAGE_URL" env-default:"https://picsum.photos/800/1000?grayscale"`
}

// CollaboratorsConfig holds settings for external generation services.
type CollaboratorsConfig struct {
	Anthropic     AnthropicConfig `yaml:"anthropic"`
	Gemini        GeminiConfig    `yaml:"gemini"`
	Breaker       BreakerConfig   `yaml:"breaker"`
	RatePerSecond float64         `yaml:"rate_per_second" env:"COLLABORATORS_RATE_PER_SECOND" env-default:"2"`
}

// AnthropicConfig configures the text collaborator. An empty key disables it.
type AnthropicConfig struct {
	APIKey    string        `yaml:"api_key"    env:"ANTHROPIC_API_KEY"`
	Model     string        `yaml:"model"      env:"ANTHROPIC_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"ANTHROPIC_MAX_TOKENS" env-default:"512"`
	Timeout   time.Duration `yaml:"timeout"    env:"ANTHROPIC_TIMEOUT"    env-default:"30s"`
}

// Enabled reports whether the text collaborator is configured.
func (c AnthropicConfig) Enabled() bool { return c.APIKey != "" }

// GeminiConfig configures the image collaborator. An empty key disables it.
type GeminiConfig struct {
	APIKey     string        `yaml:"api_key"     env:"GEMINI_API_KEY"`
	BaseURL    string        `yaml:"base_url"    env:"GEMINI_BASE_URL"`
	APIVersion string        `yaml:"api_version" env:"GEMINI_API_VERSION" env-default:"v1beta"`
	ImageModel string        `yaml:"image_model" env:"GEMINI_IMAGE_MODEL" env-default:"gemini-2.5-flash-image"`
	Timeout    time.Duration `yaml:"timeout"     env:"GEMINI_TIMEOUT"     env-default:"60s"`
}

// Enabled reports whether the image collaborator is configured.
func (c GeminiConfig) Enabled() bool { return c.APIKey != "" }

// BreakerConfig configures the circuit breaker around each collaborator.
type BreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"      env:"BREAKER_MAX_REQUESTS"      env-default:"1"`
	Interval         time.Duration `yaml:"interval"          env:"BREAKER_INTERVAL"          env-default:"60s"`
	Timeout          time.Duration `yaml:"timeout"           env:"BREAKER_TIMEOUT"           env-default:"30s"`
	FailureThreshold uint32        `yaml:"failure_threshold" env:"BREAKER_FAILURE_THRESHOLD" env-default:"3"`
}

// MQTTConfig configures the optional widget push. An empty broker disables it.
type MQTTConfig struct {
	Broker      string `yaml:"broker"       env:"MQTT_BROKER"`
	Username    string `yaml:"username"     env:"MQTT_USERNAME"`
	Password    string `yaml:"password"     env:"MQTT_PASSWORD"`
	ClientID    string `yaml:"client_id"    env:"MQTT_CLIENT_ID"`
	TopicPrefix string `yaml:"topic_prefix" env:"MQTT_TOPIC_PREFIX" env-default:"postcards"`
	UseTLS      bool   `yaml:"use_tls"      env:"MQTT_USE_TLS"      env-default:"false"`
}

// Enabled reports whether a broker is configured.
func (c MQTTConfig) Enabled() bool { return c.Broker != "" }

// WidgetConfig holds widget script settings.
type WidgetConfig struct {
	// PublicBaseURL is the origin the widget polls. Empty means derive it
	// from the incoming request.
	PublicBaseURL string `yaml:"public_base_url" env:"WIDGET_PUBLIC_BASE_URL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP limits for the write endpoints.
type RateLimitConfig struct {
	ComposePerMinute int           `yaml:"compose_per_minute" env:"RATE_LIMIT_COMPOSE_PER_MINUTE" env-default:"30"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

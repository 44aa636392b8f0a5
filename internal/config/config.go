package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Worker   WorkerConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	MinIO    MinIOConfig
	Media    MediaConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8000"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"5m"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
	CORSOrigin      string        `envconfig:"CORS_ORIGIN" default:"*"`
	SecureCookies   bool          `envconfig:"API_SECURE_COOKIES" default:"true"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"5"`
	Prefetch        int           `envconfig:"WORKER_PREFETCH" default:"4"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
}

type MongoConfig struct {
	URI                    string        `envconfig:"MONGODB_URI" required:"true"`
	Database               string        `envconfig:"MONGODB_DB" default:"vidtube"`
	MaxPoolSize            uint64        `envconfig:"MONGODB_MAX_POOL_SIZE" default:"50"`
	MinPoolSize            uint64        `envconfig:"MONGODB_MIN_POOL_SIZE" default:"5"`
	ServerSelectionTimeout time.Duration `envconfig:"MONGODB_SERVER_SELECTION_TIMEOUT" default:"10s"`
	// Transactions require a replica set or sharded cluster.
	Transactions bool `envconfig:"MONGODB_TRANSACTIONS" default:"false"`
}

type AuthConfig struct {
	AccessTokenSecret  string        `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	AccessTokenExpiry  time.Duration `envconfig:"ACCESS_TOKEN_EXPIRY" default:"24h"`
	RefreshTokenSecret string        `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`
	RefreshTokenExpiry time.Duration `envconfig:"REFRESH_TOKEN_EXPIRY" default:"240h"`
	Issuer             string        `envconfig:"TOKEN_ISSUER" default:"vidtube"`
}

type MinIOConfig struct {
	Endpoint     string        `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	AccessKey    string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey    string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	Bucket       string        `envconfig:"MINIO_BUCKET" default:"vidtube"`
	UseSSL       bool          `envconfig:"MINIO_USE_SSL" default:"false"`
	PublicURL    string        `envconfig:"MINIO_PUBLIC_URL" default:"http://localhost:9000"`
	Timeout      time.Duration `envconfig:"MINIO_TIMEOUT" default:"2m"`
	MaxAttempts  int           `envconfig:"MINIO_MAX_ATTEMPTS" default:"3"`
	RetryBackoff time.Duration `envconfig:"MINIO_RETRY_BACKOFF" default:"200ms"`
}

type MediaConfig struct {
	TempDir        string        `envconfig:"MEDIA_TEMP_DIR" default:"./public/temp"`
	MaxUploadBytes int64         `envconfig:"MEDIA_MAX_UPLOAD_BYTES" default:"536870912"`
	ProbeTimeout   time.Duration `envconfig:"MEDIA_PROBE_TIMEOUT" default:"30s"`
	WatchHistory   int           `envconfig:"MEDIA_WATCH_HISTORY_LIMIT" default:"100"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	VideoTTL time.Duration `envconfig:"REDIS_VIDEO_TTL" default:"5m"`
	Enabled  bool          `envconfig:"REDIS_ENABLED" default:"true"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"vidtube"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"vidtube"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
	Queue    string `envconfig:"RABBITMQ_CLEANUP_QUEUE" default:"asset_cleanup"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

// Load reads the configuration from the environment.
// Variables in a .env file are applied first when the file exists; real
// environment variables take precedence over it.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv paths. Missing files are ignored.
func LoadFiles(paths ...string) (*Config, error) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGODB_URI is required")
	}
	if c.Auth.AccessTokenSecret == "" || c.Auth.RefreshTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}
	if c.Auth.AccessTokenSecret == c.Auth.RefreshTokenSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	if c.Auth.AccessTokenExpiry <= 0 || c.Auth.RefreshTokenExpiry <= 0 {
		return errors.New("token expiries must be positive")
	}
	if c.Media.WatchHistory <= 0 {
		return errors.New("watch history limit must be positive")
	}
	return nil
}

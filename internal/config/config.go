package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process-wide configuration. It is built once at startup
// and passed by pointer into the components that need it; nothing mutates it afterwards.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Blob     BlobConfig
	Upload   UploadConfig
	Cookie   CookieConfig
	Bcrypt   BcryptConfig
}

// AppConfig holds listener and logging settings.
type AppConfig struct {
	Host        string
	Port        string
	LogLevel    string
	CORSOrigins []string
}

// Addr returns host:port for the HTTP listener.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// PostgresConfig holds the credential store connection settings.
type PostgresConfig struct {
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	DB           string
	MaxOpenConns int
	MaxIdleConns int
}

// DSN returns URL when set, otherwise a DSN assembled from the parts.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DB)
}

// RedisConfig holds the revocation list connection settings.
type RedisConfig struct {
	Host         string
	Port         int
	DB           int
	Password     string
	PoolSize     int
	MinIdleConns int
}

// Addr returns host:port of the Redis server.
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KafkaConfig holds account event publishing settings.
// An empty broker list disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig holds the two token classes. Secrets must differ.
type JWTConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
}

// BlobConfig holds media host settings.
type BlobConfig struct {
	Driver    string // "s3" or "memory"
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
	KeyPrefix string
}

// UploadConfig controls multipart spooling.
type UploadConfig struct {
	TempDir   string
	MaxMemory int64
}

// CookieConfig controls session cookie attributes.
type CookieConfig struct {
	Secure bool
}

// BcryptConfig controls the password hash cost.
type BcryptConfig struct {
	Cost int
}

// Load reads an optional env file at path and builds a Config from the
// environment, falling back to defaults for unset keys.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	var (
		cfg Config
		err error
	)

	cfg.App = AppConfig{
		Host:        getEnv("APP_HOST", "localhost"),
		Port:        getEnv("APP_PORT", "8000"),
		LogLevel:    getEnv("APP_LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("APP_CORS_ORIGINS", "*")),
	}

	cfg.Postgres = PostgresConfig{
		URL:      getEnv("DATABASE_URL", ""),
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		User:     getEnv("POSTGRES_USER", "user"),
		Password: getEnv("POSTGRES_PASSWORD", "password"),
		DB:       getEnv("POSTGRES_DB", "accounts"),
	}
	if cfg.Postgres.Port, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return nil, err
	}
	if cfg.Postgres.MaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return nil, err
	}
	if cfg.Postgres.MaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return nil, err
	}

	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Password: getEnv("REDIS_PASSWORD", ""),
	}
	if cfg.Redis.Port, err = getInt("REDIS_PORT", "6379"); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = getInt("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.Redis.PoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return nil, err
	}
	if cfg.Redis.MinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return nil, err
	}

	cfg.Kafka = KafkaConfig{
		Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
		Topic:   getEnv("KAFKA_TOPIC", "account-events"),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:  getEnv("ACCESS_TOKEN_SECRET", "access_secret_change_me"),
		RefreshSecret: getEnv("REFRESH_TOKEN_SECRET", "refresh_secret_change_me"),
	}
	if cfg.JWT.AccessExpiry, err = getDuration("ACCESS_TOKEN_EXPIRY", "1h"); err != nil {
		return nil, err
	}
	if cfg.JWT.RefreshExpiry, err = getDuration("REFRESH_TOKEN_EXPIRY", "240h"); err != nil {
		return nil, err
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	cfg.Blob = BlobConfig{
		Driver:    getEnv("BLOB_DRIVER", "s3"),
		Bucket:    getEnv("BLOB_BUCKET", ""),
		Region:    getEnv("BLOB_REGION", "us-east-1"),
		Endpoint:  getEnv("BLOB_ENDPOINT", ""),
		AccessKey: getEnv("BLOB_ACCESS_KEY", ""),
		SecretKey: getEnv("BLOB_SECRET_KEY", ""),
		PublicURL: getEnv("BLOB_PUBLIC_URL", ""),
		KeyPrefix: getEnv("BLOB_KEY_PREFIX", "uploads"),
	}
	if cfg.Blob.Driver != "s3" && cfg.Blob.Driver != "memory" {
		return nil, fmt.Errorf("unsupported BLOB_DRIVER %q", cfg.Blob.Driver)
	}

	cfg.Upload = UploadConfig{
		TempDir: getEnv("UPLOAD_TMP_DIR", os.TempDir()),
	}
	maxMemory, err := getInt("UPLOAD_MAX_MEMORY", "10485760")
	if err != nil {
		return nil, err
	}
	cfg.Upload.MaxMemory = int64(maxMemory)

	if cfg.Cookie.Secure, err = getBool("COOKIE_SECURE", "true"); err != nil {
		return nil, err
	}

	if cfg.Bcrypt.Cost, err = getInt("BCRYPT_COST", "10"); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultValue
}

func getInt(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getBool(key, defaultValue string) (bool, error) {
	v, err := strconv.ParseBool(getEnv(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

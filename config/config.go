package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type (
	APP struct {
		Name string
		Host string
		Port string
		Env  string
		// Debug adds internal error detail to 500 responses.
		Debug bool
		// PreserveDeleted switches user deletion from hard removal to a soft-delete flag.
		PreserveDeleted bool
		AllowedOrigins  []string
	}
	DB struct {
		Driver     string
		User       string
		Password   string
		Name       string
		Host       string
		Port       string
		SQLitePath string
	}
	Log struct {
		Level      string
		Path       string
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
		Compress   bool
	}
	S3 struct {
		Region        string
		BucketUploads string
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App APP
		DB  DB
		Log Log
		S3  S3
		MQ  MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:            getEnv("SERVICE_NAME", "bakaapi"),
		Host:            getEnv("SERVICE_HOST", ""),
		Port:            getEnv("SERVICE_PORT", "8080"),
		Env:             getEnv("SERVICE_ENV", ""),
		Debug:           getEnvBool("SERVICE_DEBUG", false),
		PreserveDeleted: getEnvBool("SERVICE_PRESERVE_DELETED", false),
		AllowedOrigins:  splitList(getEnv("SERVICE_ALLOWED_ORIGINS", "")),
	}
	db := DB{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		User:       getEnv("POSTGRES_USER", ""),
		Password:   getEnv("POSTGRES_PASSWORD", ""),
		Name:       getEnv("POSTGRES_DB", ""),
		Host:       getEnv("POSTGRES_HOST", ""),
		Port:       getEnv("POSTGRES_PORT", ""),
		SQLitePath: getEnv("SQLITE_PATH", "baka.db"),
	}
	lg := Log{
		Level:      getEnv("LOG_LEVEL", "info"),
		Path:       getEnv("LOG_PATH", ""),
		MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 7),
		Compress:   getEnvBool("LOG_COMPRESS", false),
	}
	s3 := S3{
		Region:        getEnv("S3_REGION", ""),
		BucketUploads: getEnv("S3_BUCKET_UPLOADS", ""),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "baka.users"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "baka.users.audit"),
	}

	return Config{
		App: app,
		DB:  db,
		Log: lg,
		S3:  s3,
		MQ:  mq,
	}
}

func (c Config) DBDSN() (string, error) {
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return "", fmt.Errorf("incomplete DB config: sqlite path is required")
		}
		return c.DB.SQLitePath, nil
	case DriverPostgres:
	default:
		return "", fmt.Errorf("unsupported DB driver %q", c.DB.Driver)
	}

	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

// MQEnabled reports whether a broker is configured; lifecycle events are dropped otherwise.
func (c Config) MQEnabled() bool { return c.MQ.Host != "" }

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}

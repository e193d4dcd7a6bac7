package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	Tx        TxConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Scheduler SchedulerConfig
	I18n      I18nConfig
	Admin     AdminConfig
}

type ServerConfig struct {
	AppEnv         string
	HTTPPort       string
	GRPCPort       string
	AllowedOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	Migrate         bool
}

// TxConfig bounds every write transaction: LockTimeout is the wait for a row
// lock, Timeout is the whole transaction.
type TxConfig struct {
	LockTimeout time.Duration
	Timeout     time.Duration
}

type JWTConfig struct {
	SecretKey  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers        []string
	OrderTopic     string
	WarehouseTopic string
	GroupID        string
}

type SchedulerConfig struct {
	Enabled    bool
	LowStockAt string
}

type I18nConfig struct {
	DefaultLanguage string
}

// AdminConfig seeds the first administrator. Empty credentials skip it.
type AdminConfig struct {
	Username string
	Password string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:         getEnv("APP_ENV", "dev"),
			HTTPPort:       getEnv("HTTP_PORT", ":8080"),
			GRPCPort:       getEnv("GRPC_PORT", ":8082"),
			AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "omnipos"),
			Password:        getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:          getEnv("POSTGRES_DB", "omnipos_cafe"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
			Migrate:         getEnvBool("POSTGRES_MIGRATE", true),
		},
		Tx: TxConfig{
			LockTimeout: getEnvDuration("TX_LOCK_TIMEOUT", 5*time.Second),
			Timeout:     getEnvDuration("TX_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
			AccessTTL:  getEnvDuration("JWT_ACCESS_TTL", time.Hour),
			RefreshTTL: getEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:        getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			OrderTopic:     getEnv("KAFKA_TOPIC_ORDERS", "cafe.orders"),
			WarehouseTopic: getEnv("KAFKA_TOPIC_WAREHOUSE", "cafe.warehouse"),
			GroupID:        getEnv("KAFKA_GROUP_STATISTIC", "statistic"),
		},
		Scheduler: SchedulerConfig{
			Enabled:    getEnvBool("SCHEDULER_ENABLED", true),
			LowStockAt: getEnv("SCHEDULER_LOW_STOCK_AT", "01:01"),
		},
		I18n: I18nConfig{
			DefaultLanguage: getEnv("I18N_DEFAULT_LANGUAGE", "vi"),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

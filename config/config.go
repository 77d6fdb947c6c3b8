package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDriverMongoDB = "mongodb"
	StorageDriverMemory  = "memory"
)

type Config struct {
	ServicePort   string        `envconfig:"SERVICE_PORT" default:"8080"`
	MetricsPort   string        `envconfig:"METRICS_PORT" default:"9090"`
	Environment   string        `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	StorageDriver string        `envconfig:"STORAGE_DRIVER" default:"mongodb"`
	CartRetries   int           `envconfig:"CART_WRITE_RETRIES" default:"5"`
	ShutdownGrace time.Duration `envconfig:"SHUTDOWN_GRACE" default:"10s"`

	// embedded so envconfig reads the nested keys without a struct-name prefix
	MongoDBConfig
	PostgreSQLConfig
	JWTConfig
	KafkaConfig
	TracingConfig
	LLMConfig
	AdminConfig
}

type MongoDBConfig struct {
	URI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017/?replicaSet=rs0"`
	Database string `envconfig:"MONGODB_DATABASE" default:"storefront"`
}

type PostgreSQLConfig struct {
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBName     string `envconfig:"DB_NAME" default:"storefront"`
	DBUsername string `envconfig:"DB_USERNAME" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
}

type JWTConfig struct {
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type KafkaConfig struct {
	// an empty address disables event publishing
	BrokerAddress string `envconfig:"BROKER_ADDRESS"`
	BrokerTopic   string `envconfig:"BROKER_TOPIC" default:"storefront-orders"`
}

type TracingConfig struct {
	CollectorHost string `envconfig:"COLLECTOR_HOST"`
}

type LLMConfig struct {
	Endpoint string        `envconfig:"LLM_ENDPOINT" default:"https://generativelanguage.googleapis.com/v1beta/models"`
	Model    string        `envconfig:"LLM_MODEL" default:"gemini-1.5-flash"`
	APIKey   string        `envconfig:"LLM_API_KEY"`
	Timeout  time.Duration `envconfig:"LLM_TIMEOUT" default:"15s"`
}

type AdminConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL"`
	Password string `envconfig:"ADMIN_PASSWORD"`
	Name     string `envconfig:"ADMIN_NAME" default:"Administrator"`
}

func CreateNewConfig() (*Config, error) {
	godotenv.Load(".env")

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, err
	}

	if conf.CartRetries < 1 {
		conf.CartRetries = 1
	}

	return &conf, nil
}

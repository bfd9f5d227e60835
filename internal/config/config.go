package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// Store points at the remote e-commerce REST API that owns all catalog,
// order, and billing records.
type Store struct {
	BaseURL string        `yaml:"STORE_BASE_URL" env:"STORE_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"STORE_TIMEOUT" env:"STORE_TIMEOUT" env-default:"10s"`
}

type Checkout struct {
	PaymentType    int `yaml:"CHECKOUT_PAYMENT_TYPE" env:"CHECKOUT_PAYMENT_TYPE" env-default:"1"`
	DeliveryMethod int `yaml:"CHECKOUT_DELIVERY_METHOD" env:"CHECKOUT_DELIVERY_METHOD" env-default:"3"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:""`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Storefront"`
}

type Telemetry struct {
	OTLPEndpoint string `yaml:"OTLP_ENDPOINT" env:"OTLP_ENDPOINT" env-default:""`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	RedisConnect RedisConnect `yaml:"redis"`
	Store        Store        `yaml:"store"`
	Checkout     Checkout     `yaml:"checkout"`
	Security     Security     `yaml:"security"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Telemetry    Telemetry    `yaml:"telemetry"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "path to the config file")
		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

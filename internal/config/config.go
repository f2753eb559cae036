package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const DateLayout = "2006-01-02"

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local" validate:"oneof=local dev prod"`
	Shopify  ShopifyConfig  `yaml:"shopify"`
	Klaviyo  KlaviyoConfig  `yaml:"klaviyo"`
	Sync     SyncConfig     `yaml:"sync"`
	Report   ReportConfig   `yaml:"report"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type ShopifyConfig struct {
	ShopName    string        `yaml:"shop_name" env:"SHOPIFY_SHOP_NAME"`
	APIKey      string        `yaml:"api_key" env:"SHOPIFY_API_KEY"`
	Password    string        `yaml:"password" env:"SHOPIFY_PASSWORD"`
	AccessToken string        `yaml:"access_token" env:"SHOPIFY_ACCESS_TOKEN"`
	APIVersion  string        `yaml:"api_version" env-default:"2023-10"`
	BaseURL     string        `yaml:"base_url" env:"SHOPIFY_BASE_URL"`
	PageLimit   int           `yaml:"page_limit" env-default:"250" validate:"min=1,max=250"`
	Status      string        `yaml:"status" env-default:"any"`
	Timeout     time.Duration `yaml:"timeout" env-default:"30s"`
}

type KlaviyoConfig struct {
	PublicKey string        `yaml:"public_key" env:"KLAVIYO_PUBLIC_KEY" validate:"required"`
	TrackURL  string        `yaml:"track_url" env:"KLAVIYO_TRACK_URL" env-default:"https://a.klaviyo.com/api/track" validate:"url"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

type SyncConfig struct {
	CreatedAtMin       string   `yaml:"created_at_min" env-default:"2016-01-01"`
	CreatedAtMax       string   `yaml:"created_at_max" env-default:"2016-12-31"`
	QualifyingStatuses []string `yaml:"qualifying_statuses" env-default:"paid,partially_paid,refunded,partially_refunded" validate:"min=1"`
	Workers            int      `yaml:"workers" env-default:"1" validate:"min=1,max=64"`
	LegacyItemPrice    bool     `yaml:"legacy_item_price"`
}

type ReportConfig struct {
	// Quiet disables printing the result list to stdout.
	Quiet    bool `yaml:"quiet"`
	Postgres bool `yaml:"postgres"`
	Kafka    bool `yaml:"kafka"`
}

type HTTPConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Port      int           `yaml:"port" env-default:"8080"`
	ResultTTL time.Duration `yaml:"result_ttl" env-default:"1h"`
	CacheSize int           `yaml:"cache_size" env-default:"10000"`
}

type PostgresConfig struct {
	Port    string `yaml:"port"`
	Host    string `yaml:"host"`
	DbName  string `yaml:"db_name"`
	User    string `yaml:"user"`
	Pwd     string `yaml:"password" env:"POSTGRES_PASSWORD"`
	SslMode string `yaml:"sslmode" env-default:"disable"`
}

type KafkaConfig struct {
	BrokerList  []string `yaml:"broker_list"`
	ResultTopic string   `yaml:"result_topic" env-default:"klaviyo_sync_results"`
}

type TracingConfig struct {
	// Endpoint is the collector host:port, without a scheme.
	Endpoint    string `yaml:"endpoint" env:"TRACING_ENDPOINT" validate:"omitempty,hostname_port"`
	ServiceName string `yaml:"service_name" env-default:"shopify_klaviyo_sync"`
}

var (
	errNoShopifyAuth = errors.New("either shopify access_token or api_key and password must be set")
	errNoShop        = errors.New("either shopify shop_name or base_url must be set")
	errDateRange     = errors.New("created_at_min must not be after created_at_max")
	errNoPublisher   = errors.New("report: postgres enabled without postgres.host")
	errNoBrokers     = errors.New("report: kafka enabled without kafka.broker_list")
)

// Load reads the YAML file at path, applies env overrides and validates the
// result. A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: load .env: %w", op, err)
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: read env: %w", op, err)
		}
	} else {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: config file does not exist: %s", op, path)
		}

		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: read config: %w", op, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Shopify.AccessToken == "" && (c.Shopify.APIKey == "" || c.Shopify.Password == "") {
		return errNoShopifyAuth
	}
	if c.Shopify.ShopName == "" && c.Shopify.BaseURL == "" {
		return errNoShop
	}

	from, to, err := c.Sync.Range()
	if err != nil {
		return err
	}
	if from.After(to) {
		return errDateRange
	}

	if c.Report.Postgres && c.Postgres.Host == "" {
		return errNoPublisher
	}
	if c.Report.Kafka && len(c.Kafka.BrokerList) == 0 {
		return errNoBrokers
	}

	return nil
}

// Range parses the configured created_at bounds. Both dates are inclusive, so
// to is moved to the last second of its day.
func (s SyncConfig) Range() (from, to time.Time, err error) {
	from, err = time.Parse(DateLayout, s.CreatedAtMin)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("created_at_min: %w", err)
	}

	to, err = time.Parse(DateLayout, s.CreatedAtMax)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("created_at_max: %w", err)
	}

	return from, to.Add(24*time.Hour - time.Second), nil
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		p.Host, p.Port, p.User, p.DbName, p.Pwd, p.SslMode)
}

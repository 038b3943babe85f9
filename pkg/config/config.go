package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/example/aseertime/pkg/money"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Etcd     EtcdConfig     `mapstructure:"etcd"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	MongoDB  MongoDBConfig  `mapstructure:"mongodb"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Log      LogConfig      `mapstructure:"log"`
	Shop     ShopConfig     `mapstructure:"shop"`
}

type ServerConfig struct {
	Name string `mapstructure:"name"`
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

type EtcdConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Prefix      string        `mapstructure:"prefix"`
	LeaseTTL    int64         `mapstructure:"lease_ttl"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// DatabaseConfig selects the catalog backend. Driver is "memory", "mysql" or "sqlite".
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Path         string `mapstructure:"path"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type MongoDBConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type GatewayConfig struct {
	Port         int      `mapstructure:"port"`
	Host         string   `mapstructure:"host"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	CatalogAddr  string   `mapstructure:"catalog_addr"`

	// RemoteCatalog serves storefront menu reads through the catalog gRPC service.
	RemoteCatalog bool `mapstructure:"remote_catalog"`
}

type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Encoding    string   `mapstructure:"encoding"`
	OutputPaths []string `mapstructure:"output_paths"`
}

// ShopConfig holds storefront rules that are not part of the editable settings.
type ShopConfig struct {
	Currency            string        `mapstructure:"currency"`
	DefaultDeliveryFee  string        `mapstructure:"default_delivery_fee"`
	DefaultMinimumOrder string        `mapstructure:"default_minimum_order"`
	OvernightWindows    bool          `mapstructure:"overnight_windows"`
	CartTTL             time.Duration `mapstructure:"cart_ttl"`
	ActorTimeout        time.Duration `mapstructure:"actor_timeout"`
	PageSize            int           `mapstructure:"page_size"`
	SeedOnStart         bool          `mapstructure:"seed_on_start"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", "catalog-service")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 50051)

	v.SetDefault("gateway.host", "0.0.0.0")
	v.SetDefault("gateway.port", 8080)
	v.SetDefault("gateway.allow_origins", []string{"*"})
	v.SetDefault("gateway.catalog_addr", "localhost:50051")
	v.SetDefault("gateway.remote_catalog", false)

	v.SetDefault("etcd.enabled", false)
	v.SetDefault("etcd.endpoints", []string{"localhost:2379"})
	v.SetDefault("etcd.dial_timeout", 5)
	v.SetDefault("etcd.prefix", "/services/")
	v.SetDefault("etcd.lease_ttl", 30)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("database.driver", "memory")
	v.SetDefault("database.path", "aseertime.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "aseertime")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)

	v.SetDefault("mongodb.enabled", false)
	v.SetDefault("mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb.database", "aseertime")
	v.SetDefault("mongodb.collection", "audit_logs")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.output_paths", []string{"stdout"})

	v.SetDefault("shop.currency", "KWD")
	v.SetDefault("shop.default_delivery_fee", "0.500")
	v.SetDefault("shop.default_minimum_order", "5.000")
	v.SetDefault("shop.overnight_windows", false)
	v.SetDefault("shop.cart_ttl", 24*time.Hour)
	v.SetDefault("shop.actor_timeout", 5*time.Second)
	v.SetDefault("shop.page_size", 10)
	v.SetDefault("shop.seed_on_start", true)
}

// Load reads configPath, then applies environment overrides such as
// SHOP_OVERNIGHT_WINDOWS=true. A missing file leaves the defaults in place.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := config.Shop.Defaults(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "sqlite":
		return c.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Username, c.Password, c.Host, c.Port, c.Database)
	}
}

// ShopDefaults are the parsed fallback fee and minimum used when a cart has no zone.
type ShopDefaults struct {
	DeliveryFee  money.Amount
	MinimumOrder money.Amount
}

func (s ShopConfig) Defaults() (ShopDefaults, error) {
	fee, err := money.Parse(s.DefaultDeliveryFee)
	if err != nil {
		return ShopDefaults{}, fmt.Errorf("shop.default_delivery_fee: %w", err)
	}
	minimum, err := money.Parse(s.DefaultMinimumOrder)
	if err != nil {
		return ShopDefaults{}, fmt.Errorf("shop.default_minimum_order: %w", err)
	}
	return ShopDefaults{DeliveryFee: fee, MinimumOrder: minimum}, nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}
type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Enable      bool   `mapstructure:"enable"`
	Addr        string `mapstructure:"addr"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	UserTTLSec  int    `mapstructure:"user_ttl_sec"`
	LocalTTLSec int    `mapstructure:"local_ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Store driver: file | gorm
type Store struct {
	Driver       string `mapstructure:"driver"`
	ListingsFile string `mapstructure:"listings_file"`
	AlertsFile   string `mapstructure:"alerts_file"`
	UsersFile    string `mapstructure:"users_file"`
}

// Notify driver: log | amqp | redis
type Notify struct {
	Driver       string `mapstructure:"driver"`
	From         string `mapstructure:"from"`
	BaseURL      string `mapstructure:"base_url"`
	AMQPURL      string `mapstructure:"amqp_url"`
	Exchange     string `mapstructure:"exchange"`
	RedisChannel string `mapstructure:"redis_channel"`
}

// Events driver: none | zap | fluent
type Events struct {
	Driver     string `mapstructure:"driver"`
	AddDate    bool   `mapstructure:"add_date"`
	FluentHost string `mapstructure:"fluent_host"`
	FluentPort int    `mapstructure:"fluent_port"`
	TagPrefix  string `mapstructure:"tag_prefix"`
}

type Admin struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type Config struct {
	App    App
	Log    Log
	JWT    JWT
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Store  Store
	Notify Notify
	Events Events
	Admin  Admin
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "property-alerts")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("jwt.accesstokenttlmin", 60)
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.listings_file", "data/listings.json")
	v.SetDefault("store.alerts_file", "data/alerts.json")
	v.SetDefault("store.users_file", "data/users.json")
	v.SetDefault("notify.driver", "log")
	v.SetDefault("notify.exchange", "notifications")
	v.SetDefault("notify.redis_channel", "push-notifications")
	v.SetDefault("events.driver", "zap")
	v.SetDefault("events.fluent_port", 24224)
	v.SetDefault("events.tag_prefix", "property-alerts")
	v.SetDefault("redis.user_ttl_sec", 300)
	v.SetDefault("redis.local_ttl_sec", 60)
}

// Load 优先级：参数 → CONFIG_PATH → ./configs/config.local.yaml；APP_ 前缀环境变量覆盖文件
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "file", "gorm":
	default:
		return fmt.Errorf("store.driver %q: want file or gorm", c.Store.Driver)
	}
	switch c.Notify.Driver {
	case "log", "amqp", "redis":
	default:
		return fmt.Errorf("notify.driver %q: want log, amqp or redis", c.Notify.Driver)
	}
	switch c.Events.Driver {
	case "none", "zap", "fluent":
	default:
		return fmt.Errorf("events.driver %q: want none, zap or fluent", c.Events.Driver)
	}
	return nil
}

package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 STOREFRONT_DATABASE_DSN
const EnvPrefix = "STOREFRONT"

type Config struct {
	Server        ServerConfig   `mapstructure:"server"`
	Database      DatabaseConfig `mapstructure:"database"`
	JWT           JWTConfig      `mapstructure:"jwt"`
	Storage       StorageConfig  `mapstructure:"storage"`
	Tasks         TasksConfig    `mapstructure:"tasks"`
	Log           LogConfig      `mapstructure:"log"`
	LoginThrottle time.Duration  `mapstructure:"login_throttle"`
	SizeChartFile string         `mapstructure:"size_chart_file"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// gin 运行模式: debug / release / test
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
}

type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
	Issuer   string        `mapstructure:"issuer"`
}

type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // local | s3 | minio
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	BasePath  string `mapstructure:"base_path"`
	LocalDir  string `mapstructure:"local_dir"`
	PublicURL string `mapstructure:"public_url"`
}

type TasksConfig struct {
	// cron 表达式（含秒）
	TokenCleanupSpec string `mapstructure:"token_cleanup_spec"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.token_ttl", 30*24*time.Hour)
	v.SetDefault("jwt.issuer", "storefront")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.base_path", "images")
	v.SetDefault("storage.local_dir", "./media")
	v.SetDefault("storage.public_url", "/media")

	v.SetDefault("tasks.token_cleanup_spec", "0 0 3 * * *")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("login_throttle", 2*time.Second)
	v.SetDefault("size_chart_file", "config/sizechart.yaml")
}

// NewConfig 读取配置：config/<CONFIG_NAME>.toml（可选）+ .env + 环境变量
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Warn("未找到配置文件，使用默认值与环境变量")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info("config parsed")
	return cfg, nil
}

// Validate 校验必填项
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret 未配置 (STOREFRONT_JWT_SECRET)")
	}
	if c.JWT.TokenTTL <= 0 {
		return errors.New("jwt.token_ttl 必须大于 0")
	}
	return nil
}

// SetupLogger 按配置初始化 logrus
func SetupLogger(c LogConfig) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

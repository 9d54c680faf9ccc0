package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host                      string
		DebugHost                 string
		ReadTimeout               time.Duration
		WriteTimeout              time.Duration
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		BodyLimit                 string
	}

	DatabaseConfig struct {
		Engine        string // postgres | memory
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	MinioConfig struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		UseSSL    bool
	}

	StorageConfig struct {
		Backend       string // disk | minio
		Dir           string
		BaseURL       string
		MaxUploadSize int64 // bytes; hard limit, the upload.max_size_mb setting may lower it
		Minio         MinioConfig
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	KafkaConfig struct {
		Brokers     []string
		TopicPrefix string
	}

	AIConfig struct {
		APIKey     string
		BaseURL    string
		Model      string
		Timeout    time.Duration
		MaxReplies int
	}

	Config struct {
		Env                       string
		Build                     string
		Debug                     bool
		TestMode                  bool
		AppName                   string
		SecretKey                 string
		FrontendBaseURL           string
		DefaultFromEmail          mail.Address
		PasswordResetTimeoutDelta time.Duration
		SendgridAPIKey            string
		RollbarToken              string

		Server   ServerConfig
		Database DatabaseConfig
		Storage  StorageConfig
		Redis    RedisConfig
		Kafka    KafkaConfig
		AI       AIConfig
	}
)

func (c DatabaseConfig) Address() string {
	if c.Port == "" {
		return c.Host
	}
	return c.Host + ":" + c.Port
}

// NewConfig loads the configuration of the current environment.
// ENV selects the environment (DEV by default, TEST, QA, PROD); every key is read
// from the environment with the "<ENV>_" prefix, e.g. PROD_SECRET_KEY.
func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if err := loadDotEnv(env); err != nil {
		panic(err)
	}
	return NewConfigFor(env)
}

// NewConfigFor builds the configuration of the given environment from defaults and
// environment variables only.
func NewConfigFor(env string) *Config {
	return newConfig(env, newViper(env))
}

func newViper(env string) *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("build", "develop")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("test_mode", env == "TEST")
	v.SetDefault("app_name", "Ujumbe")
	v.SetDefault("secret_key", "gcx8-u1m)qav$+20=bm&kpiy2(e!j)#*t5(#wq4k^$xlho4ctn")
	v.SetDefault("frontend_base_url", "http://localhost:3000")
	v.SetDefault("default_from_name", "Ujumbe")
	v.SetDefault("default_from_email", "noreply@localhost")
	v.SetDefault("password_reset_timeout_delta", 3*24*time.Hour)
	v.SetDefault("sendgrid_api_key", "")
	v.SetDefault("rollbar_token", "")

	v.SetDefault("server.host", ":8000")
	v.SetDefault("server.debug_host", ":4000")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.jwt_expiration_delta", 7*24*time.Hour)
	v.SetDefault("server.jwt_refresh_expiration_delta", 4*time.Hour)
	v.SetDefault("server.body_limit", "32M")

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "ujumbe")
	v.SetDefault("database.user", "ujumbe")
	v.SetDefault("database.password", "")
	v.SetDefault("database.admin_user", "postgres")
	v.SetDefault("database.admin_password", "")
	v.SetDefault("database.disable_tls", env == "DEV" || env == "TEST")

	v.SetDefault("storage.backend", "disk")
	v.SetDefault("storage.dir", filepath.Join(os.TempDir(), "ujumbe-uploads"))
	v.SetDefault("storage.base_url", "")
	v.SetDefault("storage.max_upload_size", int64(25<<20))
	v.SetDefault("storage.minio.endpoint", "localhost:9000")
	v.SetDefault("storage.minio.access_key", "")
	v.SetDefault("storage.minio.secret_key", "")
	v.SetDefault("storage.minio.bucket", "ujumbe")
	v.SetDefault("storage.minio.use_ssl", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic_prefix", "ujumbe.")

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", 4*time.Second)
	v.SetDefault("ai.max_replies", 3)

	v.AutomaticEnv()
	return v
}

func newConfig(env string, v *viper.Viper) *Config {
	return &Config{
		Env:                       env,
		Build:                     v.GetString("build"),
		Debug:                     v.GetBool("debug"),
		TestMode:                  v.GetBool("test_mode"),
		AppName:                   v.GetString("app_name"),
		SecretKey:                 v.GetString("secret_key"),
		FrontendBaseURL:           strings.TrimSuffix(v.GetString("frontend_base_url"), "/"),
		DefaultFromEmail:          mail.Address{Name: v.GetString("default_from_name"), Address: v.GetString("default_from_email")},
		PasswordResetTimeoutDelta: v.GetDuration("password_reset_timeout_delta"),
		SendgridAPIKey:            v.GetString("sendgrid_api_key"),
		RollbarToken:              v.GetString("rollbar_token"),
		Server: ServerConfig{
			Host:                      v.GetString("server.host"),
			DebugHost:                 v.GetString("server.debug_host"),
			ReadTimeout:               v.GetDuration("server.read_timeout"),
			WriteTimeout:              v.GetDuration("server.write_timeout"),
			ShutdownTimeout:           v.GetDuration("server.shutdown_timeout"),
			JWTExpirationDelta:        v.GetDuration("server.jwt_expiration_delta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwt_refresh_expiration_delta"),
			BodyLimit:                 v.GetString("server.body_limit"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.admin_user"),
			AdminPassword: v.GetString("database.admin_password"),
			DisableTLS:    v.GetBool("database.disable_tls"),
		},
		Storage: StorageConfig{
			Backend:       v.GetString("storage.backend"),
			Dir:           v.GetString("storage.dir"),
			BaseURL:       strings.TrimSuffix(v.GetString("storage.base_url"), "/"),
			MaxUploadSize: v.GetInt64("storage.max_upload_size"),
			Minio: MinioConfig{
				Endpoint:  v.GetString("storage.minio.endpoint"),
				AccessKey: v.GetString("storage.minio.access_key"),
				SecretKey: v.GetString("storage.minio.secret_key"),
				Bucket:    v.GetString("storage.minio.bucket"),
				UseSSL:    v.GetBool("storage.minio.use_ssl"),
			},
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(v.GetString("kafka.brokers")),
			TopicPrefix: v.GetString("kafka.topic_prefix"),
		},
		AI: AIConfig{
			APIKey:     v.GetString("ai.api_key"),
			BaseURL:    v.GetString("ai.base_url"),
			Model:      v.GetString("ai.model"),
			Timeout:    v.GetDuration("ai.timeout"),
			MaxReplies: v.GetInt("ai.max_replies"),
		},
	}
}

// loadDotEnv loads config/.env.<env> if it exists (ignored if it does not).
// CONFIG_DIR overrides the lookup directory.
func loadDotEnv(env string) error {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "config"
	}
	dotEnvPath := filepath.Join(dir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	return nil
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Configはアプリ全体の設定。起動時に1回だけ作って各部品に渡す
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Password  PasswordConfig
	HashID    HashIDConfig
	Mail      MailConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Env         string `envconfig:"APP_ENV" default:"dev"`
	Port        string `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

// ":8080"の形にそろえる
func (a AppConfig) Addr() string {
	if strings.HasPrefix(a.Port, ":") {
		return a.Port
	}
	return ":" + a.Port
}

type DBConfig struct {
	// DATABASE_URL があれば最優先で使う
	URL string `envconfig:"DATABASE_URL"`

	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Name     string `envconfig:"POSTGRES_DB" default:"ladimood"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

func (d DBConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret                   string `envconfig:"SECRET_KEY" required:"true"`
	Algorithm                string `envconfig:"ALGORITHM" default:"HS256"`
	AccessTokenExpireMinutes int    `envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES" default:"30"`
	RefreshTokenExpireDays   int    `envconfig:"REFRESH_TOKEN_EXPIRE_DAYS" default:"7"`
	ResetTokenExpireMinutes  int    `envconfig:"RESET_TOKEN_EXPIRE_MINUTES" default:"15"`
}

func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenExpireMinutes) * time.Minute
}

func (j JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(j.RefreshTokenExpireDays) * 24 * time.Hour
}

func (j JWTConfig) ResetTTL() time.Duration {
	return time.Duration(j.ResetTokenExpireMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
}

type HashIDConfig struct {
	Salt      string `envconfig:"HASHID_SALT" default:"ladimoodjenajjacibrendnabalkanu"`
	MinLength int    `envconfig:"HASHID_MIN_LENGTH" default:"20"`
}

type MailConfig struct {
	Host      string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	Port      int           `envconfig:"SMTP_PORT" default:"465"`
	Username  string        `envconfig:"EMAIL"`
	Password  string        `envconfig:"EMAIL_PASSWORD"`
	Recipient string        `envconfig:"RECIPIENT_EMAIL"`
	Timeout   time.Duration `envconfig:"SMTP_TIMEOUT" default:"10s"`
}

// 認証情報がなければメールはログに出すだけ
func (m MailConfig) Enabled() bool {
	return m.Username != "" && m.Password != ""
}

type RedisConfig struct {
	URL string `envconfig:"REDIS_URL"`
}

type RateLimitConfig struct {
	Window     time.Duration `envconfig:"AUTH_RATE_LIMIT_WINDOW" default:"1m"`
	LoginLimit int           `envconfig:"AUTH_RATE_LIMIT_LOGIN" default:"10"`
	// register / forgot-password
	AccountLimit int `envconfig:"AUTH_RATE_LIMIT_ACCOUNT" default:"5"`
}

var allowedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

// Loadは.envと環境変数から設定を読む。.envは無くてもよい
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

//必須チェック
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("SECRET_KEY is required")
	}
	if !allowedAlgorithms[c.JWT.Algorithm] {
		return fmt.Errorf("ALGORITHM %q is not supported", c.JWT.Algorithm)
	}
	if c.JWT.AccessTokenExpireMinutes <= 0 || c.JWT.RefreshTokenExpireDays <= 0 || c.JWT.ResetTokenExpireMinutes <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.HashID.MinLength < 0 {
		return errors.New("HASHID_MIN_LENGTH must not be negative")
	}
	return nil
}

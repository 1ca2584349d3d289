package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

const DefaultSessionSecret = "Inventory app"

type DB struct {
	Driver string
	DSN    string
}

type Redis struct {
	URL string
}

type Session struct {
	Secret string
	Cookie string
	TTL    time.Duration
	Secure bool
}

type Views struct {
	Dir    string
	Reload bool
}

type Log struct {
	Level  string
	Pretty bool
}

type Admin struct {
	Username string
	Password string
}

type Config struct {
	Host    string
	Port    int
	DB      DB
	Redis   Redis
	Session Session
	Views   Views
	Metrics struct {
		Enabled bool
	}
	Log   Log
	Admin Admin
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

// Load reads the yaml file at path (a missing file is fine) and applies
// defaults plus environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("backend.host", "0.0.0.0")
	v.SetDefault("backend.port", 3000)
	v.SetDefault("backend.db.driver", "sqlite")
	v.SetDefault("backend.db.dsn", "file:wine.db")
	v.SetDefault("backend.redis.url", "")
	v.SetDefault("backend.session.secret", DefaultSessionSecret)
	v.SetDefault("backend.session.cookie", "wine_session")
	v.SetDefault("backend.session.ttl_min", 1440)
	v.SetDefault("backend.session.secure", false)
	v.SetDefault("backend.views.dir", "")
	v.SetDefault("backend.views.reload", false)
	v.SetDefault("backend.metrics.enabled", true)
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.log.pretty", true)

	_ = v.BindEnv("backend.port", "PORT")
	_ = v.BindEnv("backend.db.driver", "DB_DRIVER")
	_ = v.BindEnv("backend.db.dsn", "DATABASE_URL")
	_ = v.BindEnv("backend.redis.url", "REDIS_URL")
	_ = v.BindEnv("backend.session.secret", "SESSION_SECRET")

	if path != "" {
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Host:  v.GetString("backend.host"),
		Port:  v.GetInt("backend.port"),
		DB:    DB{Driver: v.GetString("backend.db.driver"), DSN: v.GetString("backend.db.dsn")},
		Redis: Redis{URL: v.GetString("backend.redis.url")},
		Session: Session{
			Secret: v.GetString("backend.session.secret"),
			Cookie: v.GetString("backend.session.cookie"),
			TTL:    time.Duration(v.GetInt("backend.session.ttl_min")) * time.Minute,
			Secure: v.GetBool("backend.session.secure"),
		},
		Views: Views{Dir: v.GetString("backend.views.dir"), Reload: v.GetBool("backend.views.reload")},
		Log:   Log{Level: v.GetString("backend.log.level"), Pretty: v.GetBool("backend.log.pretty")},
		Admin: Admin{Username: v.GetString("backend.admin.username"), Password: v.GetString("backend.admin.password")},
	}
	cfg.Metrics.Enabled = v.GetBool("backend.metrics.enabled")

	if cfg.Port <= 0 {
		cfg.Port = 3000
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 24 * time.Hour
	}
	if cfg.Session.Cookie == "" {
		cfg.Session.Cookie = "wine_session"
	}
	switch cfg.DB.Driver {
	case "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

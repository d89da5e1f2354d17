package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MINES"

type Config struct {
	Mode   string       `mapstructure:"mode"`
	Board  BoardConfig  `mapstructure:"board"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	JWT    JWTConfig    `mapstructure:"jwt"`
}

type BoardConfig struct {
	Size  int    `mapstructure:"size"`
	Mines int    `mapstructure:"mines"`
	Seed  uint64 `mapstructure:"seed"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	MaxSize        int           `mapstructure:"max_size"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	SweepInterval  time.Duration `mapstructure:"sweep_interval"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type JWTConfig struct {
	Secret        string        `mapstructure:"secret"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "development")

	// GamePole(10, 12)
	v.SetDefault("board.size", 10)
	v.SetDefault("board.mines", 12)
	v.SetDefault("board.seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_size", 64)
	v.SetDefault("server.session_ttl", time.Hour)
	v.SetDefault("server.sweep_interval", time.Minute)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.token_lifetime", 24*time.Hour)
}

// Loader reads a [Config] from defaults, an optional file, MINES_* env
// variables and bound command line flags, in increasing priority.
type Loader struct {
	v *viper.Viper
}

func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{v: v}
}

// BindFlags binds config keys to flags of fs. Keys whose flag is not defined
// in fs are skipped.
func (l *Loader) BindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := l.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("unable to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file at path when it is set; a missing or malformed
// file is an error.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}
	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// Watch calls onChange with the reloaded config whenever the config file is
// written. It is a no-op when no file was loaded.
func (l *Loader) Watch(log logrus.FieldLogger, onChange func(*Config)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			log.WithError(err).Error("unable to reload config")
			return
		}
		log.WithField("file", e.Name).Info("config reloaded")
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":                   c.Mode,
		"board_size":             c.Board.Size,
		"board_mines":            c.Board.Mines,
		"board_seed":             c.Board.Seed,
		"log_level":              c.Log.Level,
		"log_format":             c.Log.Format,
		"log_file":               c.Log.File,
		"server_addr":            c.Server.Addr,
		"server_max_size":        c.Server.MaxSize,
		"server_session_ttl":     c.Server.SessionTTL.String(),
		"server_sweep_interval":  c.Server.SweepInterval.String(),
		"server_allowed_origins": c.Server.AllowedOrigins,
		"jwt_token_lifetime":     c.JWT.TokenLifetime.String(),
	}
}

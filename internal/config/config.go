// Package config defines the storefront configuration and how it is read
// from viper: config files, STOREFRONT_ environment variables and flags
// bound by the CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
)

// EnvPrefix prefixes every environment variable the storefront reads.
const EnvPrefix = "STOREFRONT"

// Config holds the storefront configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	API    APIConfig    `mapstructure:"api"`
	Admin  AdminConfig  `mapstructure:"admin"`
	Site   SiteConfig   `mapstructure:"site"`
	DevAPI DevAPIConfig `mapstructure:"devapi"`
	Log    LogConfig    `mapstructure:"log"`

	// ConfigFile is the config file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// ServerConfig configures the storefront web server.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// APIConfig points at the remote product API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"token"`
}

// AdminConfig configures the admin panel.
type AdminConfig struct {
	Password     string        `mapstructure:"password"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// SiteConfig holds storefront presentation settings.
type SiteConfig struct {
	WhatsAppNumber string `mapstructure:"whatsapp_number"`
}

// DevAPIConfig configures the reference product API server.
type DevAPIConfig struct {
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	DBPath string `mapstructure:"db_path"`
	Seed   bool   `mapstructure:"seed"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// SetDefaults registers every key with its default so environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", constants.DefaultHost)
	v.SetDefault("server.port", constants.DefaultPort)
	v.SetDefault("server.read_timeout", constants.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", constants.DefaultWriteTimeout)
	v.SetDefault("server.idle_timeout", constants.DefaultIdleTimeout)

	v.SetDefault("api.base_url", constants.DefaultAPIBaseURL)
	v.SetDefault("api.timeout", constants.DefaultAPITimeout)
	v.SetDefault("api.token", "")

	v.SetDefault("admin.password", constants.DefaultAdminPassword)
	v.SetDefault("admin.session_ttl", constants.DefaultSessionTTL)
	v.SetDefault("admin.secure_cookie", false)

	v.SetDefault("site.whatsapp_number", constants.DefaultWhatsAppNumber)

	v.SetDefault("devapi.host", constants.DefaultHost)
	v.SetDefault("devapi.port", constants.DefaultDevAPIPort)
	v.SetDefault("devapi.db_path", DefaultDBPath())
	v.SetDefault("devapi.seed", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// Prepare sets up environment lookup and the config file search path on v.
// An explicit file wins over the search in the home and working directory.
func Prepare(v *viper.Viper, file string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		return
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(".storefront")
}

// Load reads the config file, if any, and decodes v into a Config. A
// missing config file is not an error; a malformed one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errors.NewConfigError("file", "cannot read config", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.NewConfigError("decode", "invalid configuration", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.NewConfigError("server", "port must be between 1 and 65535", nil)
	}
	if c.DevAPI.Port <= 0 || c.DevAPI.Port > 65535 {
		return errors.NewConfigError("devapi", "port must be between 1 and 65535", nil)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.NewConfigError("api", "base_url is required", nil)
	}
	if c.Admin.Password == "" {
		return errors.NewConfigError("admin", "password must not be empty", nil)
	}
	if c.API.Timeout < 0 {
		return errors.NewConfigError("api", "timeout must not be negative", nil)
	}
	return nil
}

// DefaultDBPath is where the reference API keeps its database.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "products.db"
	}
	return filepath.Join(home, ".storefront", "products.db")
}

package server

import (
	"time"

	"github.com/dreammattress/storefront/internal/config"
	"github.com/dreammattress/storefront/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Admin settings
	AdminPassword string
	SessionTTL    time.Duration
	SecureCookie  bool

	// Site settings
	WhatsAppNumber string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           constants.DefaultHost,
		Port:           constants.DefaultPort,
		ReadTimeout:    constants.DefaultReadTimeout,
		WriteTimeout:   constants.DefaultWriteTimeout,
		IdleTimeout:    constants.DefaultIdleTimeout,
		AdminPassword:  constants.DefaultAdminPassword,
		SessionTTL:     constants.DefaultSessionTTL,
		WhatsAppNumber: constants.DefaultWhatsAppNumber,
	}
}

// ConfigFrom builds the server settings out of the application config.
func ConfigFrom(c *config.Config) Config {
	return Config{
		Host:           c.Server.Host,
		Port:           c.Server.Port,
		ReadTimeout:    c.Server.ReadTimeout,
		WriteTimeout:   c.Server.WriteTimeout,
		IdleTimeout:    c.Server.IdleTimeout,
		AdminPassword:  c.Admin.Password,
		SessionTTL:     c.Admin.SessionTTL,
		SecureCookie:   c.Admin.SecureCookie,
		WhatsAppNumber: c.Site.WhatsAppNumber,
	}
}

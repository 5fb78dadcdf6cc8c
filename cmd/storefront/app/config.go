package app

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dreammattress/storefront/internal/config"
)

// Flags holds the persistent flags shared by every command.
type Flags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Format     string
	LogLevel   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags mapped to config keys
//  2. STOREFRONT_* environment variables
//  3. .env and .env.local files
//  4. Config file (./.storefront.yaml or ~/.storefront.yaml, or file)
//  5. Defaults
func LoadConfig(v *viper.Viper, file string) (*config.Config, error) {
	loadEnvFiles()
	config.Prepare(v, file)
	return config.Load(v)
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set in the environment are kept.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

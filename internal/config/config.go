package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// BankConfig holds the credentials for the external bank-data provider.
type BankConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	ClientID string `mapstructure:"client_id"`
	Secret   string `mapstructure:"secret"`
}

type AppSubConfig struct {
	UploadDir    string `mapstructure:"upload_dir"`
	SyncWindow   int    `mapstructure:"sync_window_days"`
	NoticeWindow int    `mapstructure:"notice_window_days"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	Bank     BankConfig     `mapstructure:"bank"`
	App      AppSubConfig   `mapstructure:"app"`
}

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working
// directory. Repeated calls return the first call's result, including
// its error.
func Load(path string) (*Config, error) {
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. GS_SERVER_PORT=9000
		v.SetEnvPrefix("GS") // gestore spese
		v.AutomaticEnv()

		if err := v.ReadInConfig(); err != nil {
			loadErr = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err := v.Unmarshal(&c); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if c.App.SyncWindow <= 0 {
			c.App.SyncWindow = 30
		}
		if c.App.NoticeWindow <= 0 {
			c.App.NoticeWindow = 7
		}

		appConfig = &c
	})

	return appConfig, loadErr
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}

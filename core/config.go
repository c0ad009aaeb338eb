package core

import (
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageFile     = "file"
	StorageDatabase = "database"
)

type (
	Config struct {
		Debug     bool
		TestMode  bool
		Env       string // DEV (default), TEST, QA, PROD
		AppName   string
		SecretKey string
		WorkDir   string

		Server   ServerConfig
		Storage  StorageConfig
		Database DatabaseConfig

		DefaultFromEmail string
		SendgridAPIKey   string
		RollbarToken     string
	}

	ServerConfig struct {
		Host               string
		Port               int
		JWTExpirationDelta time.Duration
	}

	StorageConfig struct {
		Backend string // StorageFile | StorageDatabase
		DataDir string // jsonfile store location
	}

	DatabaseConfig struct {
		Engine     string // postgres | sqlite
		Name       string
		User       string
		Password   string
		Host       string
		Port       int
		DisableTLS bool
	}
)

func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) FromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

// NewConfig loads the app configuration from the environment.
// An optional config/.env.<env> file is loaded first if present.
func NewConfig(workDir string) (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Coursedesk")
	v.SetDefault("secretKey", "x)l$2m&w-34dg8#qop5_7s%z+1c(e9u*kf^hy6r!vjbn0at@i$")
	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("storageBackend", StorageFile)
	v.SetDefault("dataDir", filepath.Join(workDir, "data"))
	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "coursedesk")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", 5432)
	v.SetDefault("databaseDisableTLS", true)
	v.SetDefault("defaultFromEmail", "noreply@localhost")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, fmt.Errorf("config: loading %s: %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: %v", err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:     v.GetBool("debug"),
		TestMode:  env == "TEST",
		Env:       env,
		AppName:   v.GetString("appName"),
		SecretKey: v.GetString("secretKey"),
		WorkDir:   workDir,
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Port:               v.GetInt("serverPort"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Storage: StorageConfig{
			Backend: v.GetString("storageBackend"),
			DataDir: v.GetString("dataDir"),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("databaseEngine"),
			Name:       v.GetString("databaseName"),
			User:       v.GetString("databaseUser"),
			Password:   v.GetString("databasePassword"),
			Host:       v.GetString("databaseHost"),
			Port:       v.GetInt("databasePort"),
			DisableTLS: v.GetBool("databaseDisableTLS"),
		},
		DefaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
	}
	return conf, nil
}

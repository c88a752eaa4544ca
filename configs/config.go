package configs

import (
	"errors"
	"os"
	"strings"

	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

type DB struct {
	Host               string `validate:"required"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string `validate:"required"`
	Database           string `default:"fermenta"`
	MaxIdleConnections int    `default:"10"`
	MaxOpenConnections int    `default:"10"`
}

type Server struct {
	Port        int    `default:"8080"`
	Environment string `default:"development"`
}

type Auth struct {
	SessionSecret      string `validate:"required"`
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

type Integrations struct {
	Beer []string `default:"[untappd_web]"`
}

type Config struct {
	DB           DB
	Server       Server
	Auth         Auth
	Integrations Integrations
}

const envPrefix = "FERMENTA" // env prefix for env vars

var ErrConfiguration = errors.New("configuration error")

func (s Server) Production() bool {
	return s.Environment == "production"
}

func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	return &config, nil
}

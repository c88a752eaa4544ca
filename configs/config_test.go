package configs_test

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"fermenta.to/Fermenta/configs"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestGetConfig_GetsNamedFile() {
	logger := zaptest.NewLogger(suite.T())

	config, err := configs.GetConfig("testdata/config.toml", logger)

	suite.Require().NoError(err)
	suite.Equal("test.local", config.DB.Host)
	suite.Equal(1234, config.DB.Port)
	suite.Equal("testuser", config.DB.User)
	suite.Equal("test123", config.DB.Password)
	suite.Equal("testdb", config.DB.Database)
	suite.Equal(5, config.DB.MaxIdleConnections)
	suite.Equal(7, config.DB.MaxOpenConnections)
	suite.Equal(666, config.Server.Port)
	suite.Equal("production", config.Server.Environment)
	suite.True(config.Server.Production())
	suite.Equal("sessionsecret", config.Auth.SessionSecret)
	suite.Equal("client-id", config.Auth.GoogleClientID)
	suite.Equal("client-secret", config.Auth.GoogleClientSecret)
	suite.Equal("https://test.local/api/auth/google/callback", config.Auth.GoogleCallbackURL)
	suite.Equal([]string{"untappd_web"}, config.Integrations.Beer)
}

func (suite *ConfigTestSuite) TestGetConfig_GetsEnv() {
	logger := zaptest.NewLogger(suite.T())

	suite.T().Setenv("FERMENTA_DB_HOST", "test.local")
	suite.T().Setenv("FERMENTA_DB_PORT", "1234")
	suite.T().Setenv("FERMENTA_DB_USER", "testuser")
	suite.T().Setenv("FERMENTA_DB_PASSWORD", "test123")
	suite.T().Setenv("FERMENTA_DB_DATABASE", "testdb")
	suite.T().Setenv("FERMENTA_DB_MAXIDLECONNECTIONS", "5")
	suite.T().Setenv("FERMENTA_DB_MAXOPENCONNECTIONS", "7")
	suite.T().Setenv("FERMENTA_SERVER_PORT", "666")
	suite.T().Setenv("FERMENTA_AUTH_SESSIONSECRET", "sessionsecret")
	suite.T().Setenv("FERMENTA_AUTH_GOOGLECLIENTID", "client-id")
	suite.T().Setenv("FERMENTA_AUTH_GOOGLECLIENTSECRET", "client-secret")
	suite.T().Setenv("FERMENTA_INTEGRATIONS_BEER", "untappd_web")

	config, err := configs.GetConfig("", logger)

	suite.Require().NoError(err)
	suite.Equal("test.local", config.DB.Host)
	suite.Equal(1234, config.DB.Port)
	suite.Equal("testuser", config.DB.User)
	suite.Equal("test123", config.DB.Password)
	suite.Equal("testdb", config.DB.Database)
	suite.Equal(5, config.DB.MaxIdleConnections)
	suite.Equal(7, config.DB.MaxOpenConnections)
	suite.Equal(666, config.Server.Port)
	suite.Equal("development", config.Server.Environment)
	suite.False(config.Server.Production())
	suite.Equal("sessionsecret", config.Auth.SessionSecret)
	suite.Equal("client-id", config.Auth.GoogleClientID)
	suite.Equal([]string{"untappd_web"}, config.Integrations.Beer)
}

func (suite *ConfigTestSuite) TestGetConfig_EnvOverridesFile() {
	logger := zaptest.NewLogger(suite.T())

	suite.T().Setenv("FERMENTA_DB_HOST", "env.local")
	suite.T().Setenv("FERMENTA_DB_USER", "envuser")
	suite.T().Setenv("FERMENTA_DB_PASSWORD", "env123")
	suite.T().Setenv("FERMENTA_AUTH_SESSIONSECRET", "envsecret")

	config, err := configs.GetConfig("testdata/config.toml", logger)

	suite.Require().NoError(err)
	suite.Equal("env.local", config.DB.Host)
	suite.Equal(1234, config.DB.Port)
	suite.Equal("envuser", config.DB.User)
	suite.Equal("env123", config.DB.Password)
	suite.Equal("testdb", config.DB.Database)
	suite.Equal("envsecret", config.Auth.SessionSecret)
}

func (suite *ConfigTestSuite) TestGetConfig_MissingFileReturnsError() {
	logger := zaptest.NewLogger(suite.T())

	config, err := configs.GetConfig("testdata/missing.toml", logger)

	suite.Nil(config)
	suite.Error(err)
}

func (suite *ConfigTestSuite) TestGetConfig_MissingValues() {
	logger := zaptest.NewLogger(suite.T())

	config, err := configs.GetConfig("", logger)

	suite.Nil(config)
	suite.EqualError(err, "DB.Host: required validation failed, DB.Password: required validation failed, Auth.SessionSecret: required validation failed")
}

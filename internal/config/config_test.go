package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) writeFile(content string) string {
	path := filepath.Join(s.T().TempDir(), ".env")
	err := os.WriteFile(path, []byte(content), 0o644)
	s.Require().NoError(err)
	return path
}

func (s *ConfigSuite) TestDefaults() {
	path := s.writeFile("password=hunter2\n")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("127.0.0.1", cfg.IP)
	s.Equal(25575, cfg.Port)
	s.Equal("hunter2", cfg.Password)
	s.Equal(DefaultLineNotifyAPI, cfg.LineNotifyAPI)
	s.Empty(cfg.LineNotifyToken)
	s.Empty(cfg.DiscordWebhookURL)
	s.Equal("{name} ({steamid}) has joined the server.", cfg.JoinMessage)
	s.Equal("{name} ({steamid}) has left the server.", cfg.LeaveMessage)
	s.False(cfg.BroadcastMessages)
	s.Equal(5*time.Second, cfg.WaitTime)
	s.Equal(5*time.Second, cfg.DialTimeout)
	s.Equal("INFO", cfg.LogLevel)
	s.Equal("text", cfg.LogFormat)
	s.Empty(cfg.StatusListen)
}

func (s *ConfigSuite) TestLoadFromFile() {
	path := s.writeFile(`
ip=10.0.0.5
port=27020
password=secret
discord_webhook_url=https://discord.com/api/webhooks/1/abc
line_notify_token=tok123
join_message={name} is here
leave_message={name} is gone
broadcast_messages=true
wait_time=30
log_level=DEBUG
log_format=json
status_listen=:9822
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("10.0.0.5", cfg.IP)
	s.Equal(27020, cfg.Port)
	s.Equal("secret", cfg.Password)
	s.Equal("https://discord.com/api/webhooks/1/abc", cfg.DiscordWebhookURL)
	s.Equal("tok123", cfg.LineNotifyToken)
	s.Equal("{name} is here", cfg.JoinMessage)
	s.Equal("{name} is gone", cfg.LeaveMessage)
	s.True(cfg.BroadcastMessages)
	s.Equal(30*time.Second, cfg.WaitTime)
	s.Equal("DEBUG", cfg.LogLevel)
	s.Equal("json", cfg.LogFormat)
	s.Equal(":9822", cfg.StatusListen)
}

func (s *ConfigSuite) TestEnvironmentOverridesFile() {
	path := s.writeFile("password=fromfile\nport=25575\n")

	s.T().Setenv("PASSWORD", "fromenv")
	s.T().Setenv("PORT", "26000")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("fromenv", cfg.Password)
	s.Equal(26000, cfg.Port)
}

func (s *ConfigSuite) TestEnvironmentOnly() {
	s.T().Setenv("PASSWORD", "envonly")

	cfg, err := Load(filepath.Join(s.T().TempDir(), "does-not-exist.env"))
	s.Require().NoError(err)

	s.Equal("envonly", cfg.Password)
}

func (s *ConfigSuite) TestUppercaseFileKeys() {
	path := s.writeFile("PASSWORD=shouty\nWAIT_TIME=10\n")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("shouty", cfg.Password)
	s.Equal(10*time.Second, cfg.WaitTime)
}

func (s *ConfigSuite) TestUnknownKeysIgnored() {
	path := s.writeFile("password=ok\nrestart_on_last_leave=true\nsomething_else=1\n")

	_, err := Load(path)
	s.NoError(err)
}

func (s *ConfigSuite) TestMissingPassword() {
	path := s.writeFile("ip=10.0.0.5\n")

	_, err := Load(path)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrMissingPassword))
}

func (s *ConfigSuite) TestPortOutOfRange() {
	path := s.writeFile("password=ok\nport=70000\n")

	_, err := Load(path)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrInvalidPort))
}

func (s *ConfigSuite) TestMalformedPort() {
	path := s.writeFile("password=ok\nport=banana\n")

	_, err := Load(path)
	s.Error(err)
}

func (s *ConfigSuite) TestZeroWaitTime() {
	path := s.writeFile("password=ok\nwait_time=0\n")

	_, err := Load(path)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrInvalidWaitTime))
}

func (s *ConfigSuite) TestBadLogLevel() {
	path := s.writeFile("password=ok\nlog_level=CHATTY\n")

	_, err := Load(path)
	s.Error(err)
}

func (s *ConfigSuite) TestBadLogFormat() {
	path := s.writeFile("password=ok\nlog_format=yaml\n")

	_, err := Load(path)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrInvalidLogFormat))
}

func (s *ConfigSuite) TestRCONAddress() {
	cfg := DefaultConfig()
	cfg.IP = "192.168.1.20"
	cfg.Port = 27015

	s.Equal("192.168.1.20:27015", cfg.RCONAddress())
}

func (s *ConfigSuite) TestLoggingConfig() {
	cfg := DefaultConfig()
	cfg.LogLevel = "ERROR"
	cfg.LogFormat = "json"
	cfg.LogFile = "logs/palnotify.log"

	lc := cfg.LoggingConfig()
	s.Equal("ERROR", lc.Level)
	s.Equal("json", lc.Format)
	s.Equal("logs/palnotify.log", lc.File)
	s.Equal(90, lc.MaxBackups)
}

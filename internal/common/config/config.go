// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Mail         MailConfig         `mapstructure:"mail"`
	Uploads      UploadsConfig      `mapstructure:"uploads"`
	Registration RegistrationConfig `mapstructure:"registration"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// MailConfig holds the outbound notification transport settings. The sender
// account and the fixed operations inbox come from here, never from code.
type MailConfig struct {
	Provider  string `mapstructure:"provider"` // "smtp" or "ses"
	FromName  string `mapstructure:"from_name"`
	FromEmail string `mapstructure:"from_email"`
	Recipient string `mapstructure:"recipient"`

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		UseTLS   bool   `mapstructure:"use_tls"`
	} `mapstructure:"smtp"`

	SES struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"ses"`

	Timeout int `mapstructure:"timeout"` // milliseconds
}

// UploadsConfig bounds the resume attachment accepted by the relay.
type UploadsConfig struct {
	MaxFileSize int64 `mapstructure:"max_file_size"` // bytes
}

// RegistrationConfig holds settings for the registration completion step.
type RegistrationConfig struct {
	MinPasswordLength int `mapstructure:"min_password_length"`
	RedirectDelay     int `mapstructure:"redirect_delay"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

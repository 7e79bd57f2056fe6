package apply

import (
	commonconfig "mundolaboral-api/internal/common/config"
)

// Config carries the relay's slice of the application configuration.
type Config struct {
	FromName    string
	FromEmail   string
	Recipient   string
	MaxFileSize int64
}

// NewConfig projects the shared configuration onto the relay.
func NewConfig(cfg *commonconfig.Config) *Config {
	return &Config{
		FromName:    cfg.Mail.FromName,
		FromEmail:   cfg.Mail.FromEmail,
		Recipient:   cfg.Mail.Recipient,
		MaxFileSize: cfg.Uploads.MaxFileSize,
	}
}

// internal/common/mail/ses.go
package mail

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"mundolaboral-api/internal/common/config"
	"mundolaboral-api/internal/common/logger"
)

// SESAPI is the subset of the SES client the mailer uses, for mocking.
type SESAPI interface {
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESMailer sends messages through Amazon SES. The raw-send API is used so a
// resume attachment travels inside the same message.
type SESMailer struct {
	client SESAPI
	logger logger.Logger
}

func NewSESMailer(ctx context.Context, cfg config.MailConfig, log logger.Logger) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.SES.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &SESMailer{
		client: ses.NewFromConfig(awsCfg),
		logger: log.WithFields(map[string]interface{}{"provider": "ses"}),
	}, nil
}

// NewSESMailerWithClient wires a pre-built client, used by tests.
func NewSESMailerWithClient(client SESAPI, log logger.Logger) *SESMailer {
	return &SESMailer{
		client: client,
		logger: log.WithFields(map[string]interface{}{"provider": "ses"}),
	}
}

func (s *SESMailer) Send(ctx context.Context, msg *Message) error {
	raw := BuildMIME(msg)

	_, err := s.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: raw},
		Source:       aws.String(msg.From),
		Destinations: []string{msg.To},
	})
	if err != nil {
		return fmt.Errorf("SES send: %w", err)
	}

	s.logger.Info("email sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}

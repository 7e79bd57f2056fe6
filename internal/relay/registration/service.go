package registration

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"mundolaboral-api/internal/common/errors"
	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/mail"
)

type Service struct {
	config *Config
	mailer mail.Mailer
	logger logger.Logger
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	return &Service{
		config: config,
		mailer: deps.Mailer,
		logger: deps.Logger,
	}
}

// Execute validates the registration and relays it to the operations inbox.
// The credential travels in the email body. That is the current manual
// onboarding process: no account store exists yet, a person reads the inbox
// and provisions access. The body flags the credential handling explicitly.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if stdErr := s.Validate(input); stdErr != nil {
		return nil, stdErr
	}

	registrationID := uuid.New().String()

	s.logger.Info("Relaying registration", map[string]interface{}{
		"registrationId": registrationID,
		"jobTitle":       input.JobTitle,
	})

	msg := &mail.Message{
		FromName: s.config.FromName,
		From:     s.config.FromEmail,
		To:       s.config.Recipient,
		Subject:  fmt.Sprintf("Nuevo registro completo - %s", input.Name),
		HTMLBody: s.buildBody(input, registrationID),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.WithError(err).Error("Registration relay failed", map[string]interface{}{
			"registrationId": registrationID,
		})
		return nil, errors.NewMailSendError(err)
	}

	s.logger.Info("Registration relayed", map[string]interface{}{
		"registrationId": registrationID,
	})

	return &Output{
		Success:        true,
		RegistrationID: registrationID,
		SentAt:         time.Now(),
	}, nil
}

func (s *Service) buildBody(input *Input, registrationID string) string {
	var b strings.Builder
	b.WriteString("<h2>Registro completado</h2>\n")
	b.WriteString("<ul>\n")
	fmt.Fprintf(&b, "<li><strong>Nombre:</strong> %s</li>\n", html.EscapeString(input.Name))
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>\n", html.EscapeString(input.Email))
	fmt.Fprintf(&b, "<li><strong>Puesto:</strong> %s</li>\n", html.EscapeString(input.JobTitle))
	fmt.Fprintf(&b, "<li><strong>Contraseña:</strong> %s</li>\n", html.EscapeString(input.Password))
	b.WriteString("</ul>\n")
	b.WriteString("<p><strong>Aviso:</strong> esta contraseña viaja en texto plano porque el alta de cuentas es manual durante la fase beta. Eliminar este flujo cuando exista el registro automático.</p>\n")
	fmt.Fprintf(&b, "<p><small>Referencia: %s</small></p>\n", registrationID)
	return b.String()
}

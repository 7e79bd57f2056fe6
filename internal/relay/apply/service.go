package apply

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"mundolaboral-api/internal/common/errors"
	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/mail"
)

// fieldLabels maps form field names to the labels rendered in the
// notification email. Unknown fields fall back to their raw name.
var fieldLabels = map[string]string{
	"name":               "Nombre",
	"firstName":          "Nombre",
	"lastName":           "Apellido",
	"email":              "Email",
	"phone":              "Teléfono",
	"university":         "Universidad",
	"cycle":              "Ciclo de estudios",
	"englishLevel":       "Nivel de inglés",
	"experience":         "Experiencia",
	"coverLetter":        "Carta de presentación",
	"education":          "Formación académica",
	"portfolio":          "Portafolio",
	"country":            "País de residencia",
	"profession":         "Profesión",
	"preferredCountries": "Países de preferencia",
	"otherLanguages":     "Otros idiomas",
}

// fieldOrder fixes the rendering order for known fields; unknown extras come
// after, alphabetically.
var fieldOrder = []string{
	"name", "firstName", "lastName", "email", "phone", "country",
	"university", "cycle", "education", "profession", "experience",
	"preferredCountries", "englishLevel", "otherLanguages", "portfolio",
	"coverLetter",
}

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

// Execute validates the submission and relays it to the operations inbox as
// an HTML email with the resume attached. Delivery is synchronous: the
// caller only gets a success once the transport accepted the message.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if stdErr := s.Validate(input); stdErr != nil {
		return nil, stdErr
	}

	submissionID := uuid.New().String()

	s.logger.Info("Relaying application", map[string]interface{}{
		"submissionId": submissionID,
		"jobTitle":     input.JobTitle,
		"hasResume":    input.Resume != nil,
	})

	msg := &mail.Message{
		FromName: s.config.FromName,
		From:     s.config.FromEmail,
		To:       s.config.Recipient,
		Subject:  fmt.Sprintf("Postulación para %s - %s", input.JobTitle, input.Fields.Get("name")),
		HTMLBody: s.buildBody(input, submissionID),
	}
	if input.Resume != nil {
		msg.Attachment = &mail.Attachment{
			Filename: input.Resume.Name,
			Content:  input.Resume.Data,
		}
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.WithError(err).Error("Application relay failed", map[string]interface{}{
			"submissionId": submissionID,
		})
		return nil, errors.NewMailSendError(err)
	}

	s.logger.Info("Application relayed", map[string]interface{}{
		"submissionId": submissionID,
	})

	return &Output{
		Success:      true,
		SubmissionID: submissionID,
		SentAt:       time.Now(),
	}, nil
}

// buildBody renders every posted field into the notification email. All
// applicant-provided values pass through html.EscapeString before
// interpolation; submissions must never be able to inject markup into the
// operations inbox.
func (s *Service) buildBody(input *Input, submissionID string) string {
	var b strings.Builder
	b.WriteString("<h2>Nueva postulación recibida</h2>\n")
	b.WriteString(fmt.Sprintf("<p><strong>Puesto:</strong> %s</p>\n", html.EscapeString(input.JobTitle)))
	b.WriteString("<ul>\n")

	rendered := map[string]bool{}
	for _, field := range fieldOrder {
		if values, ok := input.Fields[field]; ok && len(values) > 0 {
			writeItem(&b, labelFor(field), values)
			rendered[field] = true
		}
	}

	var extras []string
	for field := range input.Fields {
		if !rendered[field] {
			extras = append(extras, field)
		}
	}
	sort.Strings(extras)
	for _, field := range extras {
		writeItem(&b, labelFor(field), input.Fields[field])
	}

	b.WriteString("</ul>\n")
	if input.Resume != nil {
		b.WriteString(fmt.Sprintf("<p>CV adjunto: %s</p>\n", html.EscapeString(input.Resume.Name)))
	} else {
		b.WriteString("<p>Sin CV adjunto.</p>\n")
	}
	b.WriteString(fmt.Sprintf("<p><small>Referencia: %s</small></p>\n", submissionID))
	return b.String()
}

func writeItem(b *strings.Builder, label string, values []string) {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, html.EscapeString(v))
	}
	fmt.Fprintf(b, "<li><strong>%s:</strong> %s</li>\n", html.EscapeString(label), strings.Join(escaped, ", "))
}

func labelFor(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

package registration

import (
	"time"

	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/mail"
)

// Input is the registration completion payload.
type Input struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JobTitle string `json:"jobTitle"`
	Password string `json:"password"`
}

// Output acknowledges a relayed registration.
type Output struct {
	Success        bool      `json:"success"`
	RegistrationID string    `json:"registrationId,omitempty"`
	SentAt         time.Time `json:"sentAt,omitempty"`
}

// ServiceDependencies wires the collaborators into the service.
type ServiceDependencies struct {
	Logger logger.Logger
	Mailer mail.Mailer
}

package apply

import (
	"time"

	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/mail"
	"mundolaboral-api/internal/forms"
)

// Input is one parsed application submission. Fields holds every text field
// the form posted, known and unknown alike; the email body renders all of
// them so no applicant-provided detail is lost.
type Input struct {
	JobTitle string
	Fields   forms.Values
	Resume   *forms.File
}

// Output acknowledges a relayed submission.
type Output struct {
	Success      bool      `json:"success"`
	SubmissionID string    `json:"submissionId,omitempty"`
	SentAt       time.Time `json:"sentAt,omitempty"`
}

// ServiceDependencies wires the collaborators into the service.
type ServiceDependencies struct {
	Logger logger.Logger
	Mailer mail.Mailer
}

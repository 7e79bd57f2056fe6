package apply

import (
	"strings"

	"mundolaboral-api/internal/common/errors"
)

// requiredFields is the authoritative list every submission must carry,
// whatever form variant produced it. Order matters: the error message names
// missing fields in this order.
var requiredFields = []string{
	"name",
	"email",
	"phone",
	"university",
	"cycle",
	"englishLevel",
	"coverLetter",
}

const missingFieldsPrefix = "Faltan campos requeridos: "

const fileTooLargeMessage = "El archivo CV excede el tamaño máximo de 5MB"

// Validate checks the submission against the relay contract. Field presence
// is a truthiness check: absent and whitespace-only values both count as
// missing. The resume itself is optional here; only its size is bounded.
func (s *Service) Validate(input *Input) *errors.StandardError {
	var missing []string
	for _, field := range requiredFields {
		if strings.TrimSpace(input.Fields.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingFieldsError(missingFieldsPrefix, missing)
	}

	if input.Resume != nil && input.Resume.Size > s.config.MaxFileSize {
		return errors.NewFileTooLargeError(fileTooLargeMessage, input.Resume.Size, s.config.MaxFileSize)
	}

	return nil
}

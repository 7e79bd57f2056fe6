package registration

import (
	"fmt"
	"strings"
	"time"

	"mundolaboral-api/internal/common/errors"
)

const missingFieldsPrefix = "Faltan campos: "

// Validate checks the payload against the relay contract. Presence uses
// truthiness; the password length floor is enforced here as well, not only
// in the client, so a direct API call cannot register a weaker credential.
func (s *Service) Validate(input *Input) *errors.StandardError {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"email", input.Email},
		{"password", input.Password},
		{"name", input.Name},
		{"jobTitle", input.JobTitle},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return errors.NewMissingFieldsError(missingFieldsPrefix, missing)
	}

	if len(input.Password) < s.config.MinPasswordLength {
		return &errors.StandardError{
			Code:      errors.ErrCodePasswordTooShort,
			Message:   fmt.Sprintf("La contraseña debe tener al menos %d caracteres", s.config.MinPasswordLength),
			Retryable: false,
			Timestamp: time.Now(),
		}
	}

	return nil
}

package applicant

import (
	"context"
	"net/url"
	"time"

	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/forms"
	"mundolaboral-api/internal/handoff"
)

// RegistrationState is the lifecycle of the credentials step.
type RegistrationState string

const (
	// StateRegEditing accepts a password and submission attempts.
	StateRegEditing RegistrationState = "editing"
	// StateRegSubmitting blocks concurrent attempts.
	StateRegSubmitting RegistrationState = "submitting"
	// StateRegCompleted is terminal; the caller redirects home after
	// RedirectDelay.
	StateRegCompleted RegistrationState = "completed"
	// StateRegExpired is terminal: the handoff parameters were missing, so
	// there is no applicant to register. The only exit is starting over.
	StateRegExpired RegistrationState = "expired"
)

// SessionExpiredMessage is shown in the expired state.
const SessionExpiredMessage = "Sesión Expirada"

const genericRegistrationError = "Hubo un error al completar tu registro. Inténtalo de nuevo."

// RegistrationRedirectDelay is how long the completed screen stays up before
// the caller navigates home.
const RegistrationRedirectDelay = 3 * time.Second

// RegistrationFlow drives the post-application credentials step. Name and
// job title come exclusively from the handoff URL; the email is prefilled
// from it but stays editable, and the password is entered fresh.
type RegistrationFlow struct {
	relay  Relay
	logger logger.Logger

	state       RegistrationState
	identity    handoff.Identity
	email       string
	password    string
	fieldErrors map[string]string
	submitError string
}

// NewRegistrationFlow decodes the handoff parameters. Missing parameters put
// the flow straight into the expired state.
func NewRegistrationFlow(query url.Values, relay Relay, log logger.Logger) *RegistrationFlow {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	f := &RegistrationFlow{
		relay:       relay,
		logger:      log,
		state:       StateRegEditing,
		fieldErrors: map[string]string{},
	}

	identity, err := handoff.Decode(query)
	if err != nil {
		f.state = StateRegExpired
		log.Warn("registration opened without handoff parameters", nil)
		return f
	}
	f.identity = identity
	f.email = identity.Email
	return f
}

func (f *RegistrationFlow) State() RegistrationState { return f.state }

// Identity returns the applicant context. Zero in the expired state.
func (f *RegistrationFlow) Identity() handoff.Identity { return f.identity }

func (f *RegistrationFlow) FieldErrors() map[string]string { return f.fieldErrors }

func (f *RegistrationFlow) SubmitError() string { return f.submitError }

// Email returns the address currently on the form.
func (f *RegistrationFlow) Email() string { return f.email }

// SetEmail replaces the prefilled address and clears its error.
func (f *RegistrationFlow) SetEmail(email string) {
	if f.state != StateRegEditing {
		return
	}
	f.email = email
	delete(f.fieldErrors, "email")
}

// SetPassword records the password and clears its error.
func (f *RegistrationFlow) SetPassword(password string) {
	if f.state != StateRegEditing {
		return
	}
	f.password = password
	delete(f.fieldErrors, "password")
}

// Submit validates the credentials and delivers them through the relay. On
// failure the password is kept so the user does not retype it.
func (f *RegistrationFlow) Submit(ctx context.Context) error {
	if f.state != StateRegEditing {
		return nil
	}

	schema := forms.Get(forms.VariantRegistration)
	values := forms.Values{}
	values.Set("email", f.email)
	values.Set("password", f.password)
	f.fieldErrors = schema.Validate(values, nil, false)
	if len(f.fieldErrors) > 0 {
		return nil
	}

	f.state = StateRegSubmitting
	f.submitError = ""

	reg := &Registration{
		Identity: handoff.Identity{
			Name:     f.identity.Name,
			Email:    f.email,
			JobTitle: f.identity.JobTitle,
		},
		Password: f.password,
	}
	if err := f.relay.CompleteRegistration(ctx, reg); err != nil {
		f.state = StateRegEditing
		f.submitError = submitErrorMessage(err, genericRegistrationError)
		f.logger.WithError(err).Error("registration submission failed", nil)
		return err
	}

	f.state = StateRegCompleted
	f.logger.Info("registration completed", map[string]interface{}{
		"job_title": f.identity.JobTitle,
	})
	return nil
}

// Package applicant models the two user-facing flows as explicit state
// machines: filling and submitting an application form, and completing the
// follow-up registration. The controllers own all client-side validation and
// delegate delivery to a Relay.
package applicant

import (
	"context"
	"errors"

	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/forms"
	"mundolaboral-api/internal/handoff"
)

// ApplicationState is the lifecycle of one application form.
type ApplicationState string

const (
	// StateEditing accepts field changes and submission attempts.
	StateEditing ApplicationState = "editing"
	// StateSubmitting blocks further submission attempts while one is in
	// flight.
	StateSubmitting ApplicationState = "submitting"
	// StateSubmitted is terminal; the caller navigates to the handoff URL.
	StateSubmitted ApplicationState = "submitted"
)

// genericSubmitError is shown when the relay failed without a usable message.
const genericSubmitError = "Hubo un error al enviar tu postulación. Inténtalo de nuevo."

// submitErrorMessage prefers the backend's own message over the fallback.
func submitErrorMessage(err error, fallback string) string {
	var relayErr *RelayError
	if errors.As(err, &relayErr) && relayErr.Message != "" {
		return relayErr.Message
	}
	return fallback
}

// Application drives one form through editing, validation and submission.
// Not safe for concurrent use; each form instance belongs to one flow.
type Application struct {
	schema   forms.Schema
	jobTitle string
	relay    Relay
	logger   logger.Logger

	state       ApplicationState
	values      forms.Values
	resume      *forms.File
	terms       bool
	fieldErrors map[string]string
	submitError string
}

// NewApplication starts an empty form for a job under a variant schema.
func NewApplication(schema forms.Schema, jobTitle string, relay Relay, log logger.Logger) *Application {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Application{
		schema:      schema,
		jobTitle:    jobTitle,
		relay:       relay,
		logger:      log,
		state:       StateEditing,
		values:      forms.Values{},
		fieldErrors: map[string]string{},
	}
}

func (a *Application) State() ApplicationState { return a.state }

func (a *Application) JobTitle() string { return a.jobTitle }

// FieldErrors returns the current field → message mapping.
func (a *Application) FieldErrors() map[string]string { return a.fieldErrors }

// SubmitError returns the flow-level message from the last failed attempt.
func (a *Application) SubmitError() string { return a.submitError }

// Value reads a single-valued field.
func (a *Application) Value(name string) string { return a.values.Get(name) }

// SetField records a value and clears that field's error so the user sees
// feedback only after the next submit attempt.
func (a *Application) SetField(name, value string) {
	if a.state != StateEditing {
		return
	}
	a.values.Set(name, value)
	delete(a.fieldErrors, name)
}

// ToggleMultiField adds or removes one selection of a multi-valued field.
func (a *Application) ToggleMultiField(name, value string) {
	if a.state != StateEditing {
		return
	}
	current := a.values[name]
	for i, v := range current {
		if v == value {
			a.values[name] = append(current[:i], current[i+1:]...)
			delete(a.fieldErrors, name)
			return
		}
	}
	a.values.Add(name, value)
	delete(a.fieldErrors, name)
}

// AttachResume stores the upload. Oversized files are rejected on the spot
// and leave any previous attachment in place.
func (a *Application) AttachResume(file *forms.File) {
	if a.state != StateEditing {
		return
	}
	if file != nil && file.Size > forms.MaxResumeSize {
		a.fieldErrors["resumeFile"] = "El archivo CV excede el tamaño máximo de 5MB"
		return
	}
	a.resume = file
	delete(a.fieldErrors, "resumeFile")
}

// SetTermsAccepted records the terms checkbox.
func (a *Application) SetTermsAccepted(accepted bool) {
	if a.state != StateEditing {
		return
	}
	a.terms = accepted
	delete(a.fieldErrors, "termsAccepted")
}

// Validate runs the schema over the current state and stores the result.
func (a *Application) Validate() bool {
	a.fieldErrors = a.schema.Validate(a.values, a.resume, a.terms)
	return len(a.fieldErrors) == 0
}

// FocusField names the first invalid field after a failed validation.
func (a *Application) FocusField() string {
	return a.schema.FirstInvalid(a.fieldErrors)
}

// Submit validates and, if clean, delivers the application through the
// relay. On success the form becomes terminal and the registration handoff
// URL is returned. On relay failure the form returns to editing with all
// values intact so the user can retry.
func (a *Application) Submit(ctx context.Context) (string, error) {
	if a.state != StateEditing {
		return "", nil
	}
	if !a.Validate() {
		return "", nil
	}

	a.state = StateSubmitting
	a.submitError = ""

	sub := &Submission{
		JobTitle: a.jobTitle,
		Values:   a.values,
		Resume:   a.resume,
	}
	if err := a.relay.SubmitApplication(ctx, sub); err != nil {
		a.state = StateEditing
		a.submitError = submitErrorMessage(err, genericSubmitError)
		a.logger.WithError(err).Error("application submission failed", map[string]interface{}{
			"job_title": a.jobTitle,
			"variant":   string(a.schema.Variant),
		})
		return "", err
	}

	a.state = StateSubmitted
	a.logger.Info("application submitted", map[string]interface{}{
		"job_title": a.jobTitle,
		"variant":   string(a.schema.Variant),
	})

	name := a.values.Get("name")
	if name == "" {
		name = a.values.Get("firstName") + " " + a.values.Get("lastName")
	}
	return handoff.Encode(handoff.Identity{
		Name:     name,
		Email:    a.values.Get("email"),
		JobTitle: a.jobTitle,
	}), nil
}

package applicant

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mundolaboral-api/internal/forms"
	"mundolaboral-api/internal/handoff"
)

type mockRelay struct {
	mock.Mock
}

func (m *mockRelay) SubmitApplication(ctx context.Context, sub *Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockRelay) CompleteRegistration(ctx context.Context, reg *Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func filledApplication(relay Relay) *Application {
	app := NewApplication(forms.Get(forms.VariantStudent), "Practicante de Marketing", relay, nil)
	app.SetField("name", "Ana Quispe")
	app.SetField("email", "ana@example.com")
	app.SetField("phone", "+51 999 888 777")
	app.SetField("university", "UNMSM")
	app.SetField("cycle", "8vo ciclo")
	app.SetField("englishLevel", "Intermedio")
	app.SetField("coverLetter", "Me interesa la posición.")
	app.AttachResume(&forms.File{Name: "cv.pdf", Size: 2048, Data: []byte("pdf")})
	app.SetTermsAccepted(true)
	return app
}

func TestApplicationSubmitSuccess(t *testing.T) {
	relay := &mockRelay{}
	relay.On("SubmitApplication", mock.Anything, mock.MatchedBy(func(sub *Submission) bool {
		return sub.JobTitle == "Practicante de Marketing" &&
			sub.Values.Get("email") == "ana@example.com" &&
			sub.Resume != nil
	})).Return(nil)

	app := filledApplication(relay)
	target, err := app.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateSubmitted, app.State())

	identity, err := handoff.DecodeURL(target)
	require.NoError(t, err)
	assert.Equal(t, "Ana Quispe", identity.Name)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, "Practicante de Marketing", identity.JobTitle)

	relay.AssertExpectations(t)
}

func TestApplicationSubmitInvalidFormNeverCallsRelay(t *testing.T) {
	relay := &mockRelay{}

	app := NewApplication(forms.Get(forms.VariantStudent), "Analista", relay, nil)
	app.SetField("name", "Ana")

	target, err := app.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, target)
	assert.Equal(t, StateEditing, app.State())
	assert.NotEmpty(t, app.FieldErrors())
	assert.Equal(t, "email", app.FocusField())

	relay.AssertNotCalled(t, "SubmitApplication", mock.Anything, mock.Anything)
}

func TestApplicationSubmitRelayFailureReturnsToEditing(t *testing.T) {
	relay := &mockRelay{}
	relay.On("SubmitApplication", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()
	relay.On("SubmitApplication", mock.Anything, mock.Anything).Return(nil).Once()

	app := filledApplication(relay)
	_, err := app.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateEditing, app.State())
	assert.NotEmpty(t, app.SubmitError())
	assert.Equal(t, "ana@example.com", app.Value("email"))

	_, err = app.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, app.State())
	assert.Empty(t, app.SubmitError())
}

func TestApplicationSubmitErrorMessages(t *testing.T) {
	t.Run("backend message is shown verbatim", func(t *testing.T) {
		relay := &mockRelay{}
		relay.On("SubmitApplication", mock.Anything, mock.Anything).
			Return(&RelayError{Message: "Faltan campos requeridos: coverLetter", StatusCode: 400})

		app := filledApplication(relay)
		_, err := app.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, "Faltan campos requeridos: coverLetter", app.SubmitError())
	})

	t.Run("opaque failure falls back to the generic message", func(t *testing.T) {
		relay := &mockRelay{}
		relay.On("SubmitApplication", mock.Anything, mock.Anything).Return(errors.New("dial tcp: refused"))

		app := filledApplication(relay)
		_, err := app.Submit(context.Background())
		require.Error(t, err)
		assert.Equal(t, genericSubmitError, app.SubmitError())
	})
}

func TestApplicationTerminalStateIgnoresEdits(t *testing.T) {
	relay := &mockRelay{}
	relay.On("SubmitApplication", mock.Anything, mock.Anything).Return(nil)

	app := filledApplication(relay)
	_, err := app.Submit(context.Background())
	require.NoError(t, err)

	app.SetField("name", "Otro Nombre")
	assert.Equal(t, "Ana Quispe", app.Value("name"))

	target, err := app.Submit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, target)
	relay.AssertNumberOfCalls(t, "SubmitApplication", 1)
}

func TestApplicationSetFieldClearsError(t *testing.T) {
	app := NewApplication(forms.Get(forms.VariantStudent), "Analista", nil, nil)
	app.Validate()
	require.Contains(t, app.FieldErrors(), "name")

	app.SetField("name", "Ana")
	assert.NotContains(t, app.FieldErrors(), "name")
	assert.Contains(t, app.FieldErrors(), "email")
}

func TestApplicationAttachResumeRejectsOversized(t *testing.T) {
	app := NewApplication(forms.Get(forms.VariantStudent), "Analista", nil, nil)

	small := &forms.File{Name: "cv.pdf", Size: 100}
	app.AttachResume(small)
	require.NotContains(t, app.FieldErrors(), "resumeFile")

	app.AttachResume(&forms.File{Name: "huge.pdf", Size: forms.MaxResumeSize + 1})
	assert.Equal(t, "El archivo CV excede el tamaño máximo de 5MB", app.FieldErrors()["resumeFile"])

	// the previous attachment is still in place
	app.Validate()
	assert.NotContains(t, app.FieldErrors(), "resumeFile")
}

func TestApplicationGeneralVariantComposesName(t *testing.T) {
	relay := &mockRelay{}
	relay.On("SubmitApplication", mock.Anything, mock.Anything).Return(nil)

	app := NewApplication(forms.Get(forms.VariantGeneral), "Oportunidades en el Extranjero", relay, nil)
	app.SetField("firstName", "José")
	app.SetField("lastName", "Ñandú")
	app.SetField("email", "jose@example.com")
	app.SetField("phone", "+51 988 777 666")
	app.SetField("country", "Perú")
	app.SetField("profession", "Enfermero")
	app.SetField("experience", "5 años")
	app.ToggleMultiField("preferredCountries", "España")
	app.ToggleMultiField("preferredCountries", "Alemania")
	app.SetField("englishLevel", "Básico")
	app.AttachResume(&forms.File{Name: "cv.pdf", Size: 10})
	app.SetTermsAccepted(true)

	target, err := app.Submit(context.Background())
	require.NoError(t, err)

	identity, err := handoff.DecodeURL(target)
	require.NoError(t, err)
	assert.Equal(t, "José Ñandú", identity.Name)
}

func TestApplicationToggleMultiFieldRemovesExisting(t *testing.T) {
	app := NewApplication(forms.Get(forms.VariantGeneral), "Apply", nil, nil)
	app.ToggleMultiField("preferredCountries", "España")
	app.ToggleMultiField("preferredCountries", "Canadá")
	app.ToggleMultiField("preferredCountries", "España")

	assert.Equal(t, []string{"Canadá"}, app.values["preferredCountries"])
}

func TestRegistrationFlowSuccess(t *testing.T) {
	relay := &mockRelay{}
	relay.On("CompleteRegistration", mock.Anything, mock.MatchedBy(func(reg *Registration) bool {
		return reg.Identity.Email == "ana@example.com" && reg.Password == "secreta9"
	})).Return(nil)

	query := url.Values{
		"name":  {"Ana Quispe"},
		"email": {"ana@example.com"},
		"job":   {"Practicante de Marketing"},
	}
	flow := NewRegistrationFlow(query, relay, nil)
	require.Equal(t, StateRegEditing, flow.State())
	assert.Equal(t, "ana@example.com", flow.Identity().Email)

	flow.SetPassword("secreta9")
	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, StateRegCompleted, flow.State())

	relay.AssertExpectations(t)
}

func TestRegistrationFlowExpiredWithoutHandoff(t *testing.T) {
	relay := &mockRelay{}

	flow := NewRegistrationFlow(url.Values{"email": {"ana@example.com"}}, relay, nil)
	assert.Equal(t, StateRegExpired, flow.State())

	flow.SetPassword("secreta9")
	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, StateRegExpired, flow.State())
	relay.AssertNotCalled(t, "CompleteRegistration", mock.Anything, mock.Anything)
}

func TestRegistrationFlowShortPassword(t *testing.T) {
	relay := &mockRelay{}
	query := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "job": {"Analista"}}
	flow := NewRegistrationFlow(query, relay, nil)

	flow.SetPassword("abc")
	require.NoError(t, flow.Submit(context.Background()))

	assert.Equal(t, StateRegEditing, flow.State())
	assert.Equal(t, "Mínimo 6 caracteres", flow.FieldErrors()["password"])
	relay.AssertNotCalled(t, "CompleteRegistration", mock.Anything, mock.Anything)
}

func TestRegistrationFlowEmailIsEditable(t *testing.T) {
	relay := &mockRelay{}
	relay.On("CompleteRegistration", mock.Anything, mock.MatchedBy(func(reg *Registration) bool {
		return reg.Identity.Email == "otra@example.com" && reg.Identity.Name == "Ana"
	})).Return(nil)

	query := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "job": {"Analista"}}
	flow := NewRegistrationFlow(query, relay, nil)
	require.Equal(t, "ana@example.com", flow.Email())

	flow.SetEmail("otra@example.com")
	flow.SetPassword("secreta9")
	require.NoError(t, flow.Submit(context.Background()))

	assert.Equal(t, StateRegCompleted, flow.State())
	relay.AssertExpectations(t)
}

func TestRegistrationFlowInvalidEmail(t *testing.T) {
	relay := &mockRelay{}
	query := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "job": {"Analista"}}
	flow := NewRegistrationFlow(query, relay, nil)

	flow.SetEmail("no-es-un-email")
	flow.SetPassword("secreta9")
	require.NoError(t, flow.Submit(context.Background()))

	assert.Equal(t, StateRegEditing, flow.State())
	assert.Contains(t, flow.FieldErrors(), "email")
	relay.AssertNotCalled(t, "CompleteRegistration", mock.Anything, mock.Anything)
}

func TestRegistrationFlowSurfacesBackendMessage(t *testing.T) {
	relay := &mockRelay{}
	relay.On("CompleteRegistration", mock.Anything, mock.Anything).
		Return(&RelayError{Message: "Faltan campos: password", StatusCode: 400})

	query := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "job": {"Analista"}}
	flow := NewRegistrationFlow(query, relay, nil)
	flow.SetPassword("secreta9")

	require.Error(t, flow.Submit(context.Background()))
	assert.Equal(t, "Faltan campos: password", flow.SubmitError())
}

func TestRegistrationFlowRelayFailureKeepsPassword(t *testing.T) {
	relay := &mockRelay{}
	relay.On("CompleteRegistration", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	relay.On("CompleteRegistration", mock.Anything, mock.Anything).Return(nil).Once()

	query := url.Values{"name": {"Ana"}, "email": {"ana@example.com"}, "job": {"Analista"}}
	flow := NewRegistrationFlow(query, relay, nil)
	flow.SetPassword("secreta9")

	require.Error(t, flow.Submit(context.Background()))
	assert.Equal(t, StateRegEditing, flow.State())
	assert.NotEmpty(t, flow.SubmitError())
	assert.Equal(t, "secreta9", flow.password)

	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, StateRegCompleted, flow.State())
}

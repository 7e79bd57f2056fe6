package applicant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/forms"
	"mundolaboral-api/internal/handoff"
)

// Submission is one application ready for the relay.
type Submission struct {
	JobTitle string
	Values   forms.Values
	Resume   *forms.File
}

// Registration is the credentials step payload.
type Registration struct {
	Identity handoff.Identity
	Password string
}

// Relay delivers submissions to the backend. The production implementation
// speaks HTTP; tests substitute a mock.
type Relay interface {
	SubmitApplication(ctx context.Context, sub *Submission) error
	CompleteRegistration(ctx context.Context, reg *Registration) error
}

// relayResponse mirrors the backend's envelope.
type relayResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RelayError carries the backend's user-facing error message, e.g.
// "Faltan campos requeridos: email". Controllers show Message verbatim.
type RelayError struct {
	Message    string
	StatusCode int
}

func (e *RelayError) Error() string { return e.Message }

// HTTPRelay posts forms to the backend API.
type HTTPRelay struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewHTTPRelay builds a relay client against a backend base URL, e.g.
// "http://localhost:8080".
func NewHTTPRelay(baseURL string, timeout time.Duration, log logger.Logger) *HTTPRelay {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &HTTPRelay{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// SubmitApplication sends the application as multipart form data, resume
// attached under the "resumeFile" part, job title under "jobTitle".
func (r *HTTPRelay) SubmitApplication(ctx context.Context, sub *Submission) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	writer.WriteField("jobTitle", sub.JobTitle)
	for name, values := range sub.Values {
		for _, value := range values {
			writer.WriteField(name, value)
		}
	}
	if sub.Resume != nil {
		part, err := writer.CreateFormFile("resumeFile", sub.Resume.Name)
		if err != nil {
			return fmt.Errorf("encode resume: %w", err)
		}
		if _, err := part.Write(sub.Resume.Data); err != nil {
			return fmt.Errorf("encode resume: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/send-email", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return r.do(req)
}

// CompleteRegistration sends the credentials step as multipart form data,
// the same encoding the registration page posts.
func (r *HTTPRelay) CompleteRegistration(ctx context.Context, reg *Registration) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("name", reg.Identity.Name)
	writer.WriteField("email", reg.Identity.Email)
	writer.WriteField("jobTitle", reg.Identity.JobTitle)
	writer.WriteField("password", reg.Password)
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/complete-registration", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return r.do(req)
}

func (r *HTTPRelay) do(req *http.Request) error {
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.WithError(err).Error("relay request failed", nil)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	var envelope relayResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	if !envelope.Success {
		if envelope.Error != "" {
			return &RelayError{Message: envelope.Error, StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}

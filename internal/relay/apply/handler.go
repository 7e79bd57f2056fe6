package apply

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"mundolaboral-api/internal/common/errors"
	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/observability"
	"mundolaboral-api/internal/forms"
)

// Handler exposes the application relay on POST /api/send-email.
type Handler struct {
	service *Service
	logger  logger.Logger
	metrics *observability.Observability
}

func NewHandler(deps ServiceDependencies, config *Config, metrics *observability.Observability) *Handler {
	return &Handler{
		service: NewService(deps, config),
		logger:  deps.Logger,
		metrics: metrics,
	}
}

// Handle parses the multipart submission and relays it. The response body
// never carries more than the success flag and a user-facing message.
func (h *Handler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	input, parseErr := h.parseInput(c)
	if parseErr != nil {
		h.metrics.RecordSubmission(ctx, "application", "rejected")
		errors.WriteError(c, parseErr)
		return
	}

	start := time.Now()
	output, err := h.service.Execute(ctx, input)
	if err != nil {
		status := "rejected"
		if errors.AsStandardError(err).Code == errors.ErrCodeMailSendFailed {
			status = "failed"
			h.metrics.RecordDispatchDuration(ctx, time.Since(start), "error")
		}
		h.metrics.RecordSubmission(ctx, "application", status)
		errors.WriteError(c, err)
		return
	}

	h.metrics.RecordDispatchDuration(ctx, time.Since(start), "ok")
	h.metrics.RecordSubmission(ctx, "application", "accepted")
	c.JSON(200, output)
}

func (h *Handler) parseInput(c *gin.Context) (*Input, *errors.StandardError) {
	form, err := c.MultipartForm()
	if err != nil {
		h.logger.WithError(err).Warn("unparseable submission", nil)
		return nil, &errors.StandardError{
			Code:      errors.ErrCodeInputParsingFailed,
			Message:   "No se pudo procesar la solicitud",
			Details:   err.Error(),
			Timestamp: time.Now(),
		}
	}

	input := &Input{Fields: forms.Values{}}
	for name, values := range form.Value {
		if name == "jobTitle" {
			if len(values) > 0 {
				input.JobTitle = values[0]
			}
			continue
		}
		input.Fields[name] = values
	}

	if files := form.File["resumeFile"]; len(files) > 0 {
		header := files[0]
		resume := &forms.File{Name: header.Filename, Size: header.Size}
		// Oversized uploads are rejected on the declared size alone; the
		// content is never read into memory.
		if header.Size <= h.service.config.MaxFileSize {
			f, err := header.Open()
			if err != nil {
				return nil, &errors.StandardError{
					Code:      errors.ErrCodeInputParsingFailed,
					Message:   "No se pudo procesar la solicitud",
					Details:   err.Error(),
					Timestamp: time.Now(),
				}
			}
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				return nil, &errors.StandardError{
					Code:      errors.ErrCodeInputParsingFailed,
					Message:   "No se pudo procesar la solicitud",
					Details:   err.Error(),
					Timestamp: time.Now(),
				}
			}
			resume.Data = data
		}
		input.Resume = resume
	}

	return input, nil
}

package registration

import (
	"time"

	"github.com/gin-gonic/gin"

	"mundolaboral-api/internal/common/errors"
	"mundolaboral-api/internal/common/logger"
	"mundolaboral-api/internal/common/observability"
)

// Handler exposes the registration relay on POST /api/complete-registration.
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

func (h *Handler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	input, parseErr := h.parseInput(c)
	if parseErr != nil {
		h.metrics.RecordSubmission(ctx, "registration", "rejected")
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
		h.metrics.RecordSubmission(ctx, "registration", status)
		errors.WriteError(c, err)
		return
	}

	h.metrics.RecordDispatchDuration(ctx, time.Since(start), "ok")
	h.metrics.RecordSubmission(ctx, "registration", "accepted")
	c.JSON(200, output)
}

// parseInput reads the payload from either encoding the clients use:
// multipart/urlencoded form data (the registration page posts FormData) or a
// JSON body.
func (h *Handler) parseInput(c *gin.Context) (*Input, *errors.StandardError) {
	if c.ContentType() == "application/json" {
		var input Input
		if err := c.ShouldBindJSON(&input); err != nil {
			h.logger.WithError(err).Warn("unparseable registration", nil)
			return nil, &errors.StandardError{
				Code:      errors.ErrCodeInputParsingFailed,
				Message:   "No se pudo procesar la solicitud",
				Details:   err.Error(),
				Timestamp: time.Now(),
			}
		}
		return &input, nil
	}

	return &Input{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		JobTitle: c.PostForm("jobTitle"),
		Password: c.PostForm("password"),
	}, nil
}

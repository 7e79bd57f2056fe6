package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mundolaboral-api/internal/catalog"
	"mundolaboral-api/internal/common/errors"
	"mundolaboral-api/internal/handoff"
	"mundolaboral-api/internal/search"
)

type catalogHandler struct {
	catalog *catalog.Catalog
}

func newCatalogHandler(c *catalog.Catalog) *catalogHandler {
	return &catalogHandler{catalog: c}
}

type jobFacets struct {
	Countries []string `json:"countries"`
	Types     []string `json:"types"`
}

type jobListResponse struct {
	Jobs   []catalog.JobOffer `json:"jobs"`
	Total  int                `json:"total"`
	Facets jobFacets          `json:"facets"`
}

// listJobs filters the catalog by the optional q, country and type query
// parameters. Facets always describe the full catalog so the filter options
// stay stable while the user narrows the result.
func (h *catalogHandler) listJobs(c *gin.Context) {
	query := search.Query{
		Term:    c.Query("q"),
		Country: c.Query("country"),
		JobType: c.Query("type"),
	}

	jobs := search.Filter(h.catalog.Jobs(), query)
	c.JSON(http.StatusOK, jobListResponse{
		Jobs:  jobs,
		Total: len(jobs),
		Facets: jobFacets{
			Countries: h.catalog.Countries(),
			Types:     h.catalog.JobTypes(),
		},
	})
}

type jobDetailResponse struct {
	catalog.JobOffer
	ApplyForm string `json:"applyForm,omitempty"`
}

// getJob serves the rich detail view. Offers whose listing only links out
// (DetailPage false) have no detail view, so they 404 exactly like unknown
// ids; the list endpoint is the only place they appear.
func (h *catalogHandler) getJob(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.WriteError(c, errors.NewNotFoundError("Oferta no encontrada"))
		return
	}

	job, ok := h.catalog.JobByID(id)
	if !ok || !job.DetailPage {
		errors.WriteError(c, errors.NewNotFoundError("Oferta no encontrada"))
		return
	}

	resp := jobDetailResponse{JobOffer: job}
	if variant, ok := h.catalog.DetailVariant(id); ok {
		resp.ApplyForm = variant
	}
	c.JSON(http.StatusOK, resp)
}

func (h *catalogHandler) listVisas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"visas": h.catalog.Visas(),
		"total": len(h.catalog.Visas()),
	})
}

func (h *catalogHandler) getVisa(c *gin.Context) {
	visa, ok := h.catalog.VisaByID(c.Param("id"))
	if !ok {
		errors.WriteError(c, errors.NewNotFoundError("Información de visa no encontrada"))
		return
	}
	c.JSON(http.StatusOK, visa)
}

type handoffHandler struct{}

func newHandoffHandler() *handoffHandler {
	return &handoffHandler{}
}

// getSession validates the registration handoff parameters. A complete set
// echoes the applicant identity; anything less is an expired session, which
// is permanent for that URL, hence 410 over 400.
func (h *handoffHandler) getSession(c *gin.Context) {
	identity, err := handoff.Decode(c.Request.URL.Query())
	if err != nil {
		errors.WriteError(c, &errors.StandardError{
			Code:      errors.ErrCodeHandoffIncomplete,
			Message:   "Sesión Expirada",
			Timestamp: time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"name":     identity.Name,
		"email":    identity.Email,
		"jobTitle": identity.JobTitle,
	})
}

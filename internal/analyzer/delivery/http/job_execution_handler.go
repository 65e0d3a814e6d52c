package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultExecutionLimit = 20
	maxExecutionLimit     = 100
)

// JobExecutionHandler handles HTTP requests for scheduled job history.
type JobExecutionHandler struct {
	executionService service.JobExecutionService
	logger           *logger.Logger
}

// NewJobExecutionHandler creates a new JobExecutionHandler.
func NewJobExecutionHandler(executionService service.JobExecutionService, logger *logger.Logger) *JobExecutionHandler {
	return &JobExecutionHandler{executionService: executionService, logger: logger}
}

// RegisterRoutes registers the job execution routes to the Echo group.
func (h *JobExecutionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/executions", h.GetExecutions)
	g.GET("/executions/:id", h.GetExecutionByID)
}

// GetExecutions godoc
// @Summary List job executions
// @Description Newest runs of the scraping and dictionary refresh jobs
// @Tags jobs
// @Produce  json
// @Param   job_type  query   string  false  "Job type (news_scraper, dictionary_refresh)"
// @Param   limit     query   int     false  "Maximum number of runs" default(20)
// @Success 200 {array} dto.JobExecutionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/executions [get]
func (h *JobExecutionHandler) GetExecutions(c echo.Context) error {
	limit := defaultExecutionLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxExecutionLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be between 1 and 100"})
		}
		limit = parsed
	}

	executions, err := h.executionService.ListExecutions(c.Request().Context(), c.QueryParam("job_type"), limit)
	if err != nil {
		h.logger.Error("Failed to get job executions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get job executions"})
	}
	return c.JSON(http.StatusOK, executions)
}

// GetExecutionByID godoc
// @Summary Get a job execution by ID
// @Description Get a single job run with its JSON report
// @Tags jobs
// @Produce  json
// @Param   id  path    int true    "Execution ID"
// @Success 200 {object} dto.JobExecutionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs/executions/{id} [get]
func (h *JobExecutionHandler) GetExecutionByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid execution ID"})
	}

	execution, err := h.executionService.GetExecution(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrExecutionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to get job execution", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get job execution"})
	}
	return c.JSON(http.StatusOK, execution)
}

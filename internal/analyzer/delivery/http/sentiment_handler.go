package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SentimentHandler handles HTTP requests for sentiment trends.
type SentimentHandler struct {
	trendService service.SentimentTrendService
	logger       *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(trendService service.SentimentTrendService, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{trendService: trendService, logger: logger}
}

// RegisterRoutes registers the sentiment routes to the Echo group.
func (h *SentimentHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/trend/:ticker", h.GetTrend)
}

// GetTrend godoc
// @Summary Get sentiment trend
// @Description Average insight sentiment of a ticker per day, week or month
// @Tags sentiments
// @Produce  json
// @Param   ticker        path    string  true   "Ticker symbol"
// @Param   period_start  query   string  false  "Start date (YYYY-MM-DD)"
// @Param   period_end    query   string  false  "End date (YYYY-MM-DD)"
// @Param   interval      query   string  false  "Bucket size (1d, 1wk, 1mo)" default(1d)
// @Success 200 {object} dto.TrendResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sentiments/trend/{ticker} [get]
func (h *SentimentHandler) GetTrend(c echo.Context) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	points, err := h.trendService.GetTrend(
		c.Request().Context(),
		ticker,
		c.QueryParam("period_start"),
		c.QueryParam("period_end"),
		c.QueryParam("interval"),
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTickerNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
		case errors.Is(err, service.ErrInvalidInterval), errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidPeriod):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			h.logger.Error("Failed to get sentiment trend", logger.ErrorField(err), logger.StringField("ticker", ticker))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get sentiment trend"})
		}
	}
	return c.JSON(http.StatusOK, dto.TrendResponse{Status: true, Data: points})
}

package http

import (
	"net/http"
	"strconv"
	"strings"

	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	defaultNewsLimit = 10
	maxNewsLimit     = 100
)

// NewsHandler handles HTTP requests for analyzed news.
type NewsHandler struct {
	articleService service.ArticleService
	logger         *logger.Logger
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(articleService service.ArticleService, logger *logger.Logger) *NewsHandler {
	return &NewsHandler{articleService: articleService, logger: logger}
}

// RegisterRoutes registers the news routes to the Echo group.
func (h *NewsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetNewsByTicker)
}

// GetNewsByTicker godoc
// @Summary Get news by ticker
// @Description Newest analyzed articles mentioning a ticker, with their insights
// @Tags news
// @Produce  json
// @Param   ticker  query   string  true   "Ticker symbol"
// @Param   limit   query   int     false  "Maximum number of articles" default(10)
// @Success 200 {array} entity.NewsArticle
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /news [get]
func (h *NewsHandler) GetNewsByTicker(c echo.Context) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.QueryParam("ticker")))
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticker is required"})
	}

	limit := defaultNewsLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxNewsLimit {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be between 1 and 100"})
		}
		limit = parsed
	}

	articles, err := h.articleService.FindByTicker(c.Request().Context(), ticker, limit)
	if err != nil {
		h.logger.Error("Failed to get news", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get news"})
	}
	return c.JSON(http.StatusOK, articles)
}

package http

import (
	"net/http"
	"strings"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/service"

	"github.com/labstack/echo/v4"
)

// TickerHandler serves dictionary lookups.
type TickerHandler struct {
	dictionaries service.DictionaryProvider
}

// NewTickerHandler creates a new TickerHandler.
func NewTickerHandler(dictionaries service.DictionaryProvider) *TickerHandler {
	return &TickerHandler{dictionaries: dictionaries}
}

// RegisterRoutes registers the ticker routes to the Echo group.
func (h *TickerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/:ticker", h.GetTicker)
}

// GetTicker godoc
// @Summary Get a ticker
// @Description Canonical company name of a ticker known to the dictionary
// @Tags tickers
// @Produce  json
// @Param   ticker  path    string  true  "Ticker symbol"
// @Success 200 {object} dto.TickerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tickers/{ticker} [get]
func (h *TickerHandler) GetTicker(c echo.Context) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	name, ok := h.dictionaries.Current().CompanyName(ticker)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
	}
	return c.JSON(http.StatusOK, dto.TickerResponse{Ticker: ticker, Name: name})
}

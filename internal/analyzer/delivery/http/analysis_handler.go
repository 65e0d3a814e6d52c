package http

import (
	"net/http"
	"strings"

	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler runs the analysis pipeline on ad-hoc text.
type AnalysisHandler struct {
	summarizer service.Summarizer
	validator  service.TickerValidator
	scorer     service.SentimentScorer
	pipeline   service.InsightPipeline
	topN       int
	logger     *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler. topN is the default summary length.
func NewAnalysisHandler(summarizer service.Summarizer, validator service.TickerValidator, scorer service.SentimentScorer, pipeline service.InsightPipeline, topN int, logger *logger.Logger) *AnalysisHandler {
	if topN <= 0 {
		topN = service.DefaultSummaryTopN
	}
	return &AnalysisHandler{
		summarizer: summarizer,
		validator:  validator,
		scorer:     scorer,
		pipeline:   pipeline,
		topN:       topN,
		logger:     logger,
	}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/summarize", h.Summarize)
	g.POST("/validate", h.Validate)
	g.POST("/sentiment", h.Sentiment)
	g.POST("/insights", h.Insights)
}

// bindText returns the request or the message to answer with 400.
func bindText(c echo.Context) (dto.AnalyzeTextRequest, string) {
	var req dto.AnalyzeTextRequest
	if err := c.Bind(&req); err != nil {
		return req, "Invalid request payload"
	}
	if strings.TrimSpace(req.Text) == "" {
		return req, "text is required"
	}
	return req, ""
}

// Summarize godoc
// @Summary Summarize text
// @Description Rank the sentences of a text and return the most salient ones
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeTextRequest   true    "Text to summarize"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /analysis/summarize [post]
func (h *AnalysisHandler) Summarize(c echo.Context) error {
	req, msg := bindText(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	topN := req.TopN
	if topN <= 0 {
		topN = h.topN
	}
	return c.JSON(http.StatusOK, dto.SummaryResponse{Sentences: h.summarizer.Summarize(req.Text, topN)})
}

// Validate godoc
// @Summary Validate tickers
// @Description Identify companies in a text, resolve them to tickers and extract their financial context
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeTextRequest   true    "Text to validate"
// @Success 200 {object} dto.ValidationSummary
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis/validate [post]
func (h *AnalysisHandler) Validate(c echo.Context) error {
	req, msg := bindText(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	summary, err := h.validator.Validate(c.Request().Context(), req.Text)
	if err != nil {
		h.logger.Error("Failed to validate text", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}

// Sentiment godoc
// @Summary Score sentiment
// @Description Classify the sentiment of a sentence
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeTextRequest   true    "Sentence to score"
// @Success 200 {object} dto.SentimentResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis/sentiment [post]
func (h *AnalysisHandler) Sentiment(c echo.Context) error {
	req, msg := bindText(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	result, err := h.scorer.Predict(c.Request().Context(), req.Text)
	if err != nil {
		h.logger.Error("Failed to score sentiment", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

// Insights godoc
// @Summary Build insights
// @Description Summarize an article and score the sentiment toward every exactly matched ticker
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeTextRequest   true    "Article body"
// @Success 200 {object} dto.ArticleAnalysis
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analysis/insights [post]
func (h *AnalysisHandler) Insights(c echo.Context) error {
	req, msg := bindText(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	analysis, err := h.pipeline.BuildInsights(c.Request().Context(), req.Text)
	if err != nil {
		h.logger.Error("Failed to build insights", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, analysis)
}

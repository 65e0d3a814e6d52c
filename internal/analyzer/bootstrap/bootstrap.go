package bootstrap

import (
	"context"
	"fmt"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/repository"
	"golang-news-insight/internal/analyzer/service"
	"golang-news-insight/pkg/logger"

	"google.golang.org/genai"
)

// Core is the analysis pipeline shared by every binary.
type Core struct {
	Cleaner           *service.TextCleaner
	DictionaryStore   *service.DictionaryStore
	DictionaryService service.DictionaryService
	Summarizer        service.Summarizer
	Validator         service.TickerValidator
	Scorer            service.SentimentScorer
	Pipeline          service.InsightPipeline
}

// NewCore wires the pipeline. dictionaryCache may be nil when Redis is not available.
func NewCore(ctx context.Context, cfg *config.Config, log *logger.Logger, dictionaryCache repository.DictionaryCacheRepository) (*Core, error) {
	cleaner, err := service.NewTextCleaner(cfg.Analyzer.ExtraBoilerplatePatterns...)
	if err != nil {
		return nil, err
	}

	classifier, err := NewClassifier(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	store := service.NewDictionaryStore(nil)
	dictionaryService := service.NewDictionaryService(
		store,
		repository.NewScreenerRepository(cfg, log),
		dictionaryCache,
		repository.NewFileDictionaryRepository(cfg.Dictionary.FallbackPath),
		log,
	)

	annotator := repository.NewSpacyAnnotatorRepository(cfg, log)
	summarizer := service.NewSummarizer(cleaner)
	validator := service.NewTickerValidator(cleaner, annotator, store, log)
	scorer := service.NewSentimentScorer(classifier, log)

	return &Core{
		Cleaner:           cleaner,
		DictionaryStore:   store,
		DictionaryService: dictionaryService,
		Summarizer:        summarizer,
		Validator:         validator,
		Scorer:            scorer,
		Pipeline:          service.NewInsightPipeline(summarizer, validator, scorer, cfg.Analyzer.SummaryTopN, log),
	}, nil
}

// NewClassifier builds the configured classifier provider behind an in-process result cache.
func NewClassifier(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.ClassifierRepository, error) {
	var classifier repository.ClassifierRepository
	switch cfg.Classifier.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini AI client: %w", err)
		}
		classifier = repository.NewGeminiClassifierRepository(cfg, log, genAiClient)
	case "huggingface", "":
		classifier = repository.NewHuggingFaceClassifierRepository(cfg, log)
	default:
		return nil, fmt.Errorf("invalid classifier provider %q", cfg.Classifier.Provider)
	}
	return repository.NewCachedClassifierRepository(classifier, cfg.Classifier.CacheTTL), nil
}

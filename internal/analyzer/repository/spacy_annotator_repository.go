package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/logger"

	"golang.org/x/time/rate"
)

// AnnotatorRepository runs named-entity recognition and dependency parsing on text.
type AnnotatorRepository interface {
	// Annotate returns the parsed document. All offsets in the result are byte offsets into text.
	Annotate(ctx context.Context, text string) (*dto.Document, error)
}

type spacyAnnotatorRepository struct {
	baseURL        string
	client         *http.Client
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewSpacyAnnotatorRepository creates a client for a spaCy-style annotation service exposing POST /annotate.
func NewSpacyAnnotatorRepository(cfg *config.Config, log *logger.Logger) AnnotatorRepository {
	return &spacyAnnotatorRepository{
		baseURL: strings.TrimRight(cfg.Annotator.BaseURL, "/"),
		client: &http.Client{
			Timeout: timeoutOrDefault(cfg.Annotator.Timeout, 30*time.Second),
		},
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.Annotator.MaxRequestPerMinute),
	}
}

type annotateRequest struct {
	Text string `json:"text"`
}

type annotateResponse struct {
	Ents []struct {
		Label     string `json:"label"`
		Text      string `json:"text"`
		StartChar int    `json:"start_char"`
		EndChar   int    `json:"end_char"`
	} `json:"ents"`
	Sents []struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"sents"`
	Tokens []struct {
		I     int    `json:"i"`
		Text  string `json:"text"`
		Idx   int    `json:"idx"`
		POS   string `json:"pos"`
		Dep   string `json:"dep"`
		Lemma string `json:"lemma"`
		Head  int    `json:"head"`
	} `json:"tokens"`
}

func (r *spacyAnnotatorRepository) Annotate(ctx context.Context, text string) (*dto.Document, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload, err := json.Marshal(annotateRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/annotate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to call annotator", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to call annotator: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Annotator returned non-200 status", logger.IntField("status", resp.StatusCode), logger.StringField("body", string(body)))
		return nil, fmt.Errorf("%w: annotator returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var parsed annotateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		r.logger.ErrorContext(ctx, "Failed to unmarshal annotator response", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}

	return toDocument(text, &parsed)
}

// toDocument converts the code point offsets of the wire format into byte offsets and links the
// dependency arena.
func toDocument(text string, parsed *annotateResponse) (*dto.Document, error) {
	offsets := runeByteOffsets(text)
	toByte := func(cp int) (int, error) {
		if cp < 0 || cp >= len(offsets) {
			return 0, fmt.Errorf("%w: offset %d outside text", ErrUnexpectedPayload, cp)
		}
		return offsets[cp], nil
	}

	doc := &dto.Document{
		Text:      text,
		Tokens:    make([]dto.Token, len(parsed.Tokens)),
		Sentences: make([]dto.Sentence, 0, len(parsed.Sents)),
		Entities:  make([]dto.Entity, 0, len(parsed.Ents)),
	}

	prevEnd := 0
	for pos, t := range parsed.Tokens {
		if t.I != pos {
			return nil, fmt.Errorf("%w: token %d reported index %d", ErrUnexpectedPayload, pos, t.I)
		}
		if t.Head < 0 || t.Head >= len(parsed.Tokens) {
			return nil, fmt.Errorf("%w: token %d has head %d", ErrUnexpectedPayload, pos, t.Head)
		}
		start, err := toByte(t.Idx)
		if err != nil {
			return nil, err
		}
		if start < prevEnd {
			return nil, fmt.Errorf("%w: token %d starts before the end of token %d", ErrUnexpectedPayload, pos, pos-1)
		}
		if !strings.HasPrefix(text[start:], t.Text) {
			return nil, fmt.Errorf("%w: token %d text does not match source", ErrUnexpectedPayload, pos)
		}
		prevEnd = start + len(t.Text)
		doc.Tokens[pos] = dto.Token{
			Index: pos,
			Text:  t.Text,
			Start: start,
			POS:   t.POS,
			Dep:   t.Dep,
			Lemma: t.Lemma,
			Head:  t.Head,
		}
	}

	for _, s := range parsed.Sents {
		if s.Start < 0 || s.End > len(doc.Tokens) || s.Start >= s.End {
			return nil, fmt.Errorf("%w: sentence [%d,%d) outside token range", ErrUnexpectedPayload, s.Start, s.End)
		}
		doc.Sentences = append(doc.Sentences, dto.Sentence{Start: s.Start, End: s.End})
	}

	for _, e := range parsed.Ents {
		start, err := toByte(e.StartChar)
		if err != nil {
			return nil, err
		}
		end, err := toByte(e.EndChar)
		if err != nil {
			return nil, err
		}
		if start > end {
			return nil, fmt.Errorf("%w: entity %q has inverted offsets", ErrUnexpectedPayload, e.Text)
		}
		doc.Entities = append(doc.Entities, dto.Entity{Label: e.Label, Text: text[start:end], Start: start, End: end})
	}

	doc.LinkChildren()
	return doc, nil
}

// runeByteOffsets maps every code point index, plus the end of text, to its byte offset.
func runeByteOffsets(text string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-news-insight/internal/analyzer/config"
	"golang-news-insight/internal/analyzer/dto"
	"golang-news-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnnotatorServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/annotate", r.URL.Path)

		var req annotateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotEmpty(t, req.Text)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func annotatorConfig(baseURL string) *config.Config {
	return &config.Config{Annotator: config.Annotator{BaseURL: baseURL + "/"}}
}

func TestSpacyAnnotatorRepository_Annotate(t *testing.T) {
	body := `{
		"ents": [{"label": "ORG", "text": "Apple", "start_char": 0, "end_char": 5}],
		"sents": [{"start": 0, "end": 4}],
		"tokens": [
			{"i": 0, "text": "Apple", "idx": 0, "pos": "PROPN", "dep": "nsubj", "lemma": "Apple", "head": 1},
			{"i": 1, "text": "raised", "idx": 6, "pos": "VERB", "dep": "ROOT", "lemma": "raise", "head": 1},
			{"i": 2, "text": "prices", "idx": 13, "pos": "NOUN", "dep": "dobj", "lemma": "price", "head": 1},
			{"i": 3, "text": ".", "idx": 19, "pos": "PUNCT", "dep": "punct", "lemma": ".", "head": 1}
		]
	}`
	srv := newAnnotatorServer(t, http.StatusOK, body)
	repo := NewSpacyAnnotatorRepository(annotatorConfig(srv.URL), logger.NewNop())

	doc, err := repo.Annotate(context.Background(), "Apple raised prices.")
	require.NoError(t, err)

	assert.Equal(t, []dto.Entity{{Label: "ORG", Text: "Apple", Start: 0, End: 5}}, doc.Entities)
	assert.Equal(t, []dto.Sentence{{Start: 0, End: 4}}, doc.Sentences)
	require.Len(t, doc.Tokens, 4)
	assert.Equal(t, 13, doc.Tokens[2].Start)
	assert.Equal(t, []int{0, 2, 3}, doc.Tokens[1].Children)
	assert.True(t, doc.IsAncestor(1, 2))
	assert.Equal(t, "Apple raised prices.", doc.SpanText(0, 4))
}

func TestSpacyAnnotatorRepository_Non200(t *testing.T) {
	srv := newAnnotatorServer(t, http.StatusServiceUnavailable, `{"detail":"loading"}`)
	repo := NewSpacyAnnotatorRepository(annotatorConfig(srv.URL), logger.NewNop())

	_, err := repo.Annotate(context.Background(), "Apple raised prices.")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestSpacyAnnotatorRepository_BadPayload(t *testing.T) {
	srv := newAnnotatorServer(t, http.StatusOK, `not json`)
	repo := NewSpacyAnnotatorRepository(annotatorConfig(srv.URL), logger.NewNop())

	_, err := repo.Annotate(context.Background(), "Apple raised prices.")
	assert.ErrorIs(t, err, ErrUnexpectedPayload)
}

func TestToDocument_CodePointOffsets(t *testing.T) {
	text := "Nestlé grew 5%."
	parsed := &annotateResponse{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"ents": [{"label": "ORG", "text": "Nestlé", "start_char": 0, "end_char": 6}],
		"sents": [{"start": 0, "end": 5}],
		"tokens": [
			{"i": 0, "text": "Nestlé", "idx": 0, "head": 1},
			{"i": 1, "text": "grew", "idx": 7, "head": 1},
			{"i": 2, "text": "5", "idx": 12, "head": 3},
			{"i": 3, "text": "%", "idx": 13, "head": 1},
			{"i": 4, "text": ".", "idx": 14, "head": 1}
		]
	}`), parsed))

	doc, err := toDocument(text, parsed)
	require.NoError(t, err)

	// "é" is two bytes, so every offset after it shifts by one.
	assert.Equal(t, dto.Entity{Label: "ORG", Text: "Nestlé", Start: 0, End: 7}, doc.Entities[0])
	assert.Equal(t, 8, doc.Tokens[1].Start)
	assert.Equal(t, "grew", text[doc.Tokens[1].Start:doc.Tokens[1].End()])
	assert.Equal(t, 15, doc.Tokens[4].Start)
}

func TestToDocument_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "index out of order", body: `{"tokens": [{"i": 1, "text": "Apple", "idx": 0, "head": 0}]}`},
		{name: "head out of range", body: `{"tokens": [{"i": 0, "text": "Apple", "idx": 0, "head": 5}]}`},
		{name: "token text mismatch", body: `{"tokens": [{"i": 0, "text": "Pear", "idx": 0, "head": 0}]}`},
		{name: "offset past text", body: `{"tokens": [{"i": 0, "text": "Apple", "idx": 99, "head": 0}]}`},
		{name: "sentence outside tokens", body: `{"sents": [{"start": 0, "end": 3}], "tokens": [{"i": 0, "text": "Apple", "idx": 0, "head": 0}]}`},
		{name: "decreasing token offsets", body: `{"tokens": [{"i": 0, "text": "rose", "idx": 6, "head": 0}, {"i": 1, "text": "Apple", "idx": 0, "head": 0}]}`},
		{name: "overlapping tokens", body: `{"tokens": [{"i": 0, "text": "Apple", "idx": 0, "head": 0}, {"i": 1, "text": "pple", "idx": 1, "head": 0}]}`},
		{name: "inverted entity", body: `{"ents": [{"label": "ORG", "text": "x", "start_char": 4, "end_char": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := &annotateResponse{}
			require.NoError(t, json.Unmarshal([]byte(tt.body), parsed))

			_, err := toDocument("Apple rose.", parsed)
			assert.ErrorIs(t, err, ErrUnexpectedPayload)
		})
	}
}

func TestRuneByteOffsets(t *testing.T) {
	assert.Equal(t, []int{0, 1, 3, 4}, runeByteOffsets("aéb"))
	assert.Equal(t, []int{0}, runeByteOffsets(""))
}

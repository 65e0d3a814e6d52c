package service

import (
	"context"
	"strings"
	"sync"

	"golang-news-insight/internal/analyzer/dto"
)

// tok describes one token of a hand-built parse.
type tok struct {
	text  string
	pos   string
	dep   string
	lemma string
	head  int
}

// buildDocument lays tokens out over text in order and treats the whole text as one sentence.
func buildDocument(text string, tokens []tok, entities ...dto.Entity) *dto.Document {
	doc := &dto.Document{Text: text, Entities: entities}
	cursor := 0
	for i, t := range tokens {
		idx := strings.Index(text[cursor:], t.text)
		if idx < 0 {
			panic("token " + t.text + " not found in " + text)
		}
		start := cursor + idx
		doc.Tokens = append(doc.Tokens, dto.Token{
			Index: i,
			Text:  t.text,
			Start: start,
			POS:   t.pos,
			Dep:   t.dep,
			Lemma: t.lemma,
			Head:  t.head,
		})
		cursor = start + len(t.text)
	}
	if len(tokens) > 0 {
		doc.Sentences = []dto.Sentence{{Start: 0, End: len(tokens)}}
	}
	doc.LinkChildren()
	return doc
}

// orgEntity returns an ORG entity covering the first occurrence of name in text.
func orgEntity(text, name string) dto.Entity {
	start := strings.Index(text, name)
	if start < 0 {
		panic(name + " not found in " + text)
	}
	return dto.Entity{Label: "ORG", Text: name, Start: start, End: start + len(name)}
}

// "Apple Inc. reported record profit this quarter."
func appleProfitDocument() *dto.Document {
	text := "Apple Inc. reported record profit this quarter."
	return buildDocument(text, []tok{
		{text: "Apple", pos: "PROPN", dep: "compound", lemma: "Apple", head: 1},
		{text: "Inc.", pos: "PROPN", dep: "nsubj", lemma: "Inc.", head: 2},
		{text: "reported", pos: "VERB", dep: "ROOT", lemma: "report", head: 2},
		{text: "record", pos: "ADJ", dep: "amod", lemma: "record", head: 4},
		{text: "profit", pos: "NOUN", dep: "dobj", lemma: "profit", head: 2},
		{text: "this", pos: "DET", dep: "det", lemma: "this", head: 6},
		{text: "quarter", pos: "NOUN", dep: "npadvmod", lemma: "quarter", head: 2},
		{text: ".", pos: "PUNCT", dep: "punct", lemma: ".", head: 2},
	}, orgEntity(text, "Apple Inc."))
}

// "Analysts reported Apple's 10% revenue increase." where "increase" is the object governing Apple.
func appleIncreaseDocument() *dto.Document {
	text := "Analysts reported Apple's 10% revenue increase."
	return buildDocument(text, []tok{
		{text: "Analysts", pos: "NOUN", dep: "nsubj", lemma: "analyst", head: 1},
		{text: "reported", pos: "VERB", dep: "ROOT", lemma: "report", head: 1},
		{text: "Apple", pos: "PROPN", dep: "poss", lemma: "Apple", head: 7},
		{text: "'s", pos: "PART", dep: "case", lemma: "'s", head: 2},
		{text: "10", pos: "NUM", dep: "nummod", lemma: "10", head: 7},
		{text: "%", pos: "NOUN", dep: "punct", lemma: "%", head: 4},
		{text: "revenue", pos: "NOUN", dep: "compound", lemma: "revenue", head: 7},
		{text: "increase", pos: "NOUN", dep: "dobj", lemma: "increase", head: 1},
		{text: ".", pos: "PUNCT", dep: "punct", lemma: ".", head: 1},
	}, orgEntity(text, "Apple"))
}

func testDictionary() *EntityDictionary {
	return NewEntityDictionary([]dto.TickerEntry{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
		{Symbol: "AMZN", Name: "Amazon"},
		{Symbol: "GS", Name: "The Goldman Sachs Group, Inc."},
	})
}

// fakeAnnotator returns a fixed document per input text.
type fakeAnnotator struct {
	mu    sync.Mutex
	docs  map[string]*dto.Document
	err   error
	calls int
}

func newFakeAnnotator(docs ...*dto.Document) *fakeAnnotator {
	a := &fakeAnnotator{docs: make(map[string]*dto.Document)}
	for _, d := range docs {
		a.docs[d.Text] = d
	}
	return a
}

func (a *fakeAnnotator) Annotate(_ context.Context, text string) (*dto.Document, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	if d, ok := a.docs[text]; ok {
		return d, nil
	}
	// Unknown text parses to a document without tokens or entities.
	return &dto.Document{Text: text}, nil
}

// fakeClassifier returns a fixed distribution per sentence, or fallback.
type fakeClassifier struct {
	results  map[string]map[string]float64
	fallback map[string]float64
	err      error
	calls    []string
}

func (c *fakeClassifier) Classify(_ context.Context, text string) (map[string]float64, error) {
	c.calls = append(c.calls, text)
	if c.err != nil {
		return nil, c.err
	}
	if r, ok := c.results[text]; ok {
		return r, nil
	}
	return c.fallback, nil
}

func distribution(neutral, positive, negative float64) map[string]float64 {
	return map[string]float64{
		dto.SentimentNeutral:  neutral,
		dto.SentimentPositive: positive,
		dto.SentimentNegative: negative,
	}
}

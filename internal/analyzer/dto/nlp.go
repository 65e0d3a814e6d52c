package dto

// Entity is a named entity reported by the annotator. Start and End are byte offsets into Document.Text.
type Entity struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Token is one node of the dependency arena. Head is the index of the syntactic head; a root points at itself.
type Token struct {
	Index    int    `json:"i"`
	Text     string `json:"text"`
	Start    int    `json:"start"`
	POS      string `json:"pos"`
	Dep      string `json:"dep"`
	Lemma    string `json:"lemma"`
	Head     int    `json:"head"`
	Children []int  `json:"children,omitempty"`
}

// End returns the byte offset just past the token text.
func (t Token) End() int {
	return t.Start + len(t.Text)
}

// Sentence is a half-open token index range [Start, End).
type Sentence struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Document is an annotated text: entities, sentences and the dependency arena.
type Document struct {
	Text      string     `json:"text"`
	Tokens    []Token    `json:"tokens"`
	Sentences []Sentence `json:"sentences"`
	Entities  []Entity   `json:"entities"`
}

// SpanText returns the text covered by tokens [from, to), without trailing whitespace.
func (d *Document) SpanText(from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(d.Tokens) {
		to = len(d.Tokens)
	}
	if from >= to {
		return ""
	}
	return d.Text[d.Tokens[from].Start:d.Tokens[to-1].End()]
}

// SentenceBounds returns the byte range covered by the sentence.
func (d *Document) SentenceBounds(s Sentence) (int, int) {
	if s.Start >= s.End || s.End > len(d.Tokens) {
		return 0, 0
	}
	return d.Tokens[s.Start].Start, d.Tokens[s.End-1].End()
}

// IsAncestor reports whether token a lies on the head chain of token b.
func (d *Document) IsAncestor(a, b int) bool {
	cur := b
	// Bounded walk so a malformed head cycle cannot loop forever.
	for steps := 0; steps < len(d.Tokens); steps++ {
		head := d.Tokens[cur].Head
		if head == cur || head < 0 || head >= len(d.Tokens) {
			return false
		}
		if head == a {
			return true
		}
		cur = head
	}
	return false
}

// LinkChildren fills Children from Head links. Roots (Head == own index) get no parent edge.
func (d *Document) LinkChildren() {
	for i := range d.Tokens {
		d.Tokens[i].Children = nil
	}
	for i, tok := range d.Tokens {
		if tok.Head == i || tok.Head < 0 || tok.Head >= len(d.Tokens) {
			continue
		}
		d.Tokens[tok.Head].Children = append(d.Tokens[tok.Head].Children, i)
	}
}

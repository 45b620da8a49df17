package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/revelaction/annotext/chunk"
	"github.com/revelaction/annotext/config"
	"github.com/revelaction/annotext/lemma"
	"github.com/revelaction/annotext/ner"
	"github.com/revelaction/annotext/postag"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/stem"
	"github.com/revelaction/annotext/vocab"
)

func (p *Pipeline) build(name string, cfg config.Config) (Component, error) {
	switch name {
	case config.Tagger:
		return NewTagger(), nil

	case config.Lemmatizer:
		l, err := lemma.New()
		if err != nil {
			return nil, err
		}
		return &Lemmatizer{l: l}, nil

	case config.Stemmer:
		st, err := stem.NewSnowball(cfg.StemLanguage)
		if err != nil {
			return nil, err
		}
		st.StemStopWords = cfg.StemStopWords
		return &Stemmer{st: st}, nil

	case config.Attributes:
		return &Attributes{vocab: p.Vocab}, nil

	case config.NER:
		return &NER{r: ner.NewRecognizer()}, nil

	case config.EntityRuler:
		return p.entityRuler(cfg)

	case config.Chunker:
		parser, err := chunk.NewParser(cfg.ChunkGrammar)
		if err != nil {
			return nil, err
		}
		return &Chunker{parser: parser}, nil
	}

	return nil, fmt.Errorf("%w: unknown name %q", ErrComponent, name)
}

func (p *Pipeline) entityRuler(cfg config.Config) (Component, error) {
	f, err := os.Open(cfg.RulerPatterns)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	patterns, err := ner.LoadPatterns(f)
	if err != nil {
		return nil, err
	}

	r := ner.NewEntityRuler(cfg.RulerOverwrite)
	r.Words = p.tok.Words
	if err := r.Add(patterns...); err != nil {
		return nil, err
	}

	p.log.Debug().Int("patterns", r.Len()).Str("file", cfg.RulerPatterns).Msg("entity ruler loaded")
	return &EntityRuler{Ruler: r}, nil
}

// Tagger sets the Penn Treebank Tag and the universal Pos of each token.
type Tagger struct {
	tagger *postag.Tagger
}

func NewTagger() *Tagger {
	return &Tagger{tagger: postag.NewTagger()}
}

func (c *Tagger) Process(_ context.Context, doc *sent.Doc) error {
	for si := range doc.Sentences {
		tokens := doc.Sentences[si].Tokens
		tagged := c.tagger.Tag(sent.Words(tokens))
		for i := range tokens {
			next := ""
			if i+1 < len(tagged) {
				next = tagged[i+1].Tag
			}
			tokens[i].Tag = tagged[i].Tag
			tokens[i].Pos = postag.UniversalFor(tokens[i].Text, tagged[i].Tag, next)
		}
	}
	return nil
}

// Lemmatizer sets the Lemma of each token from its text and Pos.
type Lemmatizer struct {
	l *lemma.Lemmatizer
}

func (c *Lemmatizer) Requires() []string { return []string{config.Tagger} }

func (c *Lemmatizer) Process(_ context.Context, doc *sent.Doc) error {
	each(doc, func(t *sent.Token) {
		t.Lemma = c.l.Lemma(t.Text, t.Pos)
	})
	return nil
}

type Stemmer struct {
	st stem.Stemmer
}

func (c *Stemmer) Process(_ context.Context, doc *sent.Doc) error {
	each(doc, func(t *sent.Token) {
		t.Stem = c.st.Stem(t.Text)
	})
	return nil
}

// Attributes sets the lexical attributes and the stop word flag.
type Attributes struct {
	vocab *vocab.Vocab
}

func (c *Attributes) Process(_ context.Context, doc *sent.Doc) error {
	each(doc, func(t *sent.Token) {
		lex := c.vocab.Lexeme(t.Text)
		t.Lower = lex.Lower
		t.Shape = lex.Shape
		t.IsAlpha = lex.IsAlpha
		t.IsPunct = lex.IsPunct
		t.IsDigit = lex.IsDigit
		t.LikeNum = lex.LikeNum
		t.IsStop = lex.IsStop
	})
	return nil
}

// NER replaces the doc entities with the recognized names and numbers.
type NER struct {
	r *ner.Recognizer
}

func (c *NER) Requires() []string { return []string{config.Tagger} }

func (c *NER) Process(_ context.Context, doc *sent.Doc) error {
	return c.r.Apply(doc)
}

// EntityRuler adds pattern entities to the doc.
type EntityRuler struct {
	Ruler *ner.EntityRuler
}

func (c *EntityRuler) Process(_ context.Context, doc *sent.Doc) error {
	return c.Ruler.Apply(doc)
}

// Chunker stores the chunks of every grammar label in doc.Chunks.
type Chunker struct {
	parser *chunk.Parser
}

func (c *Chunker) Requires() []string { return []string{config.Tagger} }

func (c *Chunker) Process(_ context.Context, doc *sent.Doc) error {
	var chunks []sent.Span
	for _, s := range doc.Sentences {
		if len(s.Tokens) == 0 {
			continue
		}
		for _, sp := range c.parser.ParseTokens(s.Tokens).Spans("") {
			chunks = append(chunks, sent.Span{
				Start: s.Tokens[sp.Start].Id,
				End:   s.Tokens[sp.End-1].Id + 1,
				Label: sp.Label,
			})
		}
	}

	doc.Chunks = chunks
	return nil
}

func each(doc *sent.Doc, f func(t *sent.Token)) {
	for si := range doc.Sentences {
		for ti := range doc.Sentences[si].Tokens {
			f(&doc.Sentences[si].Tokens[ti])
		}
	}
}

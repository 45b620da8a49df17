// Package pipeline turns raw text into annotated docs.
//
// The tokenizer always runs first. The named components then annotate the
// doc in place, in order:
//
//	nlp, err := pipeline.New(config.Default(), logger)
//	doc, err := nlp.Process(ctx, "The quick brown fox jumps.")
//
// Components can be added, removed, replaced and disabled by name.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/revelaction/annotext/config"
	sent "github.com/revelaction/annotext/sentence"
	"github.com/revelaction/annotext/stopword"
	"github.com/revelaction/annotext/tokenize"
	"github.com/revelaction/annotext/vocab"
)

var (
	// ErrComponent is returned for invalid component names, positions or
	// orders.
	ErrComponent = errors.New("pipeline component")

	// ErrExtension is returned for invalid span extensions.
	ErrExtension = errors.New("span extension")
)

// Component annotates a doc in place.
type Component interface {
	Process(ctx context.Context, doc *sent.Doc) error
}

// ComponentFunc adapts a function to the Component interface.
type ComponentFunc func(ctx context.Context, doc *sent.Doc) error

func (f ComponentFunc) Process(ctx context.Context, doc *sent.Doc) error {
	return f(ctx, doc)
}

// Requirer is implemented by components that need other components to run
// before them.
type Requirer interface {
	Requires() []string
}

type posKind int

const (
	posLast posKind = iota
	posFirst
	posBefore
	posAfter
)

// Position tells AddPipe where to insert a component.
type Position struct {
	kind   posKind
	anchor string
}

var (
	First = Position{kind: posFirst}
	Last  = Position{kind: posLast}
)

func Before(name string) Position { return Position{kind: posBefore, anchor: name} }
func After(name string) Position  { return Position{kind: posAfter, anchor: name} }

type pipe struct {
	name     string
	comp     Component
	disabled bool
}

// SpanGetter computes a custom attribute of a span, for example a link
// built from an entity text.
type SpanGetter func(doc *sent.Doc, s sent.Span) string

type extension struct {
	name string
	get  SpanGetter
}

// Pipeline holds the tokenizer, the shared vocab and the ordered
// components.
type Pipeline struct {
	Vocab *vocab.Vocab

	tok   *tokenize.Tokenizer
	pipes []pipe
	exts  []extension
	log   zerolog.Logger
}

// New builds the pipeline with the components of cfg.Components.
func New(cfg config.Config, log zerolog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stop, err := stopword.Load(cfg.StopLanguage)
	if err != nil {
		return nil, err
	}
	stop.Add(cfg.StopExtra...)

	tok, err := tokenize.New()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		Vocab: vocab.New(stop),
		tok:   tok,
		log:   log,
	}

	for _, name := range cfg.Components {
		comp, err := p.build(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		if err := p.AddPipe(name, comp, Last); err != nil {
			return nil, err
		}
	}

	log.Debug().Strs("components", p.PipeNames()).Msg("pipeline ready")
	return p, nil
}

// Tokenizer returns the tokenizer of the pipeline.
func (p *Pipeline) Tokenizer() *tokenize.Tokenizer {
	return p.tok
}

// AddPipe inserts a component at pos.
func (p *Pipeline) AddPipe(name string, comp Component, pos Position) error {
	if name == "" || comp == nil {
		return fmt.Errorf("%w: empty name or nil component", ErrComponent)
	}
	if p.HasPipe(name) {
		return fmt.Errorf("%w: duplicate name %q", ErrComponent, name)
	}

	at := len(p.pipes)
	switch pos.kind {
	case posFirst:
		at = 0
	case posBefore, posAfter:
		i := p.index(pos.anchor)
		if i < 0 {
			return fmt.Errorf("%w: unknown anchor %q", ErrComponent, pos.anchor)
		}
		at = i
		if pos.kind == posAfter {
			at = i + 1
		}
	}

	pipes := slices.Insert(slices.Clone(p.pipes), at, pipe{name: name, comp: comp})
	return p.set(pipes)
}

// RemovePipe removes the component and returns it.
func (p *Pipeline) RemovePipe(name string) (Component, error) {
	i := p.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: unknown name %q", ErrComponent, name)
	}

	comp := p.pipes[i].comp
	pipes := slices.Delete(slices.Clone(p.pipes), i, i+1)
	if err := p.set(pipes); err != nil {
		return nil, err
	}
	return comp, nil
}

// ReplacePipe swaps the component registered under name.
func (p *Pipeline) ReplacePipe(name string, comp Component) error {
	i := p.index(name)
	if i < 0 {
		return fmt.Errorf("%w: unknown name %q", ErrComponent, name)
	}
	if comp == nil {
		return fmt.Errorf("%w: nil component", ErrComponent)
	}

	pipes := slices.Clone(p.pipes)
	pipes[i].comp = comp
	return p.set(pipes)
}

// Disable keeps the component in the pipeline but skips it.
func (p *Pipeline) Disable(name string) error {
	return p.toggle(name, true)
}

func (p *Pipeline) Enable(name string) error {
	return p.toggle(name, false)
}

func (p *Pipeline) toggle(name string, disabled bool) error {
	i := p.index(name)
	if i < 0 {
		return fmt.Errorf("%w: unknown name %q", ErrComponent, name)
	}

	pipes := slices.Clone(p.pipes)
	pipes[i].disabled = disabled
	return p.set(pipes)
}

// DisablePipes disables all named components in one step, so that a
// component and the ones requiring it can be disabled together. restore
// enables again the components that were enabled before the call.
func (p *Pipeline) DisablePipes(names ...string) (restore func(), err error) {
	pipes := slices.Clone(p.pipes)
	var disabled []string
	for _, name := range names {
		i := slices.IndexFunc(pipes, func(pp pipe) bool { return pp.name == name })
		if i < 0 {
			return nil, fmt.Errorf("%w: unknown name %q", ErrComponent, name)
		}
		if !pipes[i].disabled {
			pipes[i].disabled = true
			disabled = append(disabled, name)
		}
	}

	if err := p.set(pipes); err != nil {
		return nil, err
	}
	p.log.Debug().Strs("components", disabled).Msg("disabled")

	restore = func() {
		pipes := slices.Clone(p.pipes)
		for i := range pipes {
			if slices.Contains(disabled, pipes[i].name) {
				pipes[i].disabled = false
			}
		}
		if err := p.set(pipes); err != nil {
			p.log.Warn().Err(err).Strs("components", disabled).Msg("restore components")
		}
	}
	return restore, nil
}

// PipeNames returns the enabled component names in order.
func (p *Pipeline) PipeNames() []string {
	var names []string
	for _, pp := range p.pipes {
		if !pp.disabled {
			names = append(names, pp.name)
		}
	}
	return names
}

// HasPipe reports whether name is registered, enabled or not.
func (p *Pipeline) HasPipe(name string) bool {
	return p.index(name) >= 0
}

// Get returns the component registered under name.
func (p *Pipeline) Get(name string) (Component, bool) {
	i := p.index(name)
	if i < 0 {
		return nil, false
	}
	return p.pipes[i].comp, true
}

func (p *Pipeline) index(name string) int {
	return slices.IndexFunc(p.pipes, func(pp pipe) bool { return pp.name == name })
}

// set installs pipes if every enabled component runs after its
// requirements.
func (p *Pipeline) set(pipes []pipe) error {
	seen := map[string]bool{}
	for _, pp := range pipes {
		if pp.disabled {
			continue
		}
		if r, ok := pp.comp.(Requirer); ok {
			for _, req := range r.Requires() {
				if !seen[req] {
					return fmt.Errorf("%w: %q requires %q to run before it", ErrComponent, pp.name, req)
				}
			}
		}
		seen[pp.name] = true
	}

	p.pipes = pipes
	return nil
}

// SetSpanExtension registers a custom span attribute computed by get.
func (p *Pipeline) SetSpanExtension(name string, get SpanGetter) error {
	if name == "" || get == nil {
		return fmt.Errorf("%w: empty name or nil getter", ErrExtension)
	}
	if _, ok := p.SpanExtension(name); ok {
		return fmt.Errorf("%w: duplicate name %q", ErrExtension, name)
	}

	p.exts = append(p.exts, extension{name: name, get: get})
	return nil
}

// SpanExtension returns the getter registered under name.
func (p *Pipeline) SpanExtension(name string) (SpanGetter, bool) {
	for _, e := range p.exts {
		if e.name == name {
			return e.get, true
		}
	}
	return nil, false
}

// SpanExtensions returns the extension names in registration order.
func (p *Pipeline) SpanExtensions() []string {
	names := make([]string, len(p.exts))
	for i, e := range p.exts {
		names[i] = e.name
	}
	return names
}

// Process tokenizes text and runs the enabled components.
func (p *Pipeline) Process(ctx context.Context, text string) (*sent.Doc, error) {
	doc := p.MakeDoc(text)
	if err := p.Run(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromWords builds a single sentence doc from pre-split words. spaces tells
// whether each word is followed by a space; nil means all are.
func (p *Pipeline) FromWords(words []string, spaces []bool) (*sent.Doc, error) {
	if spaces != nil && len(spaces) != len(words) {
		return nil, fmt.Errorf("%w: %d words and %d spaces", sent.ErrSpan, len(words), len(spaces))
	}

	doc := &sent.Doc{}
	if len(words) == 0 {
		return doc, nil
	}

	s := sent.Sentence{Id: 0}
	idx := 0
	for i, w := range words {
		space := spaces == nil || spaces[i]
		s.Tokens = append(s.Tokens, newToken(i, i, 0, w, idx, space))
		idx += len([]rune(w))
		if space {
			idx++
		}
	}
	doc.Sentences = []sent.Sentence{s}
	doc.Text = sent.TokensText(s.Tokens)
	return doc, nil
}

// Run applies the enabled components to an existing doc.
func (p *Pipeline) Run(ctx context.Context, doc *sent.Doc) error {
	for _, pp := range p.pipes {
		if pp.disabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := pp.comp.Process(ctx, doc); err != nil {
			return fmt.Errorf("%w %s: %w", ErrComponent, pp.name, err)
		}
		p.log.Debug().Str("component", pp.name).Int("tokens", doc.Len()).Msg("processed")
	}
	return nil
}

// Pipe processes texts with at most workers goroutines. Docs are returned
// in input order.
func (p *Pipeline) Pipe(ctx context.Context, texts []string, workers int) ([]*sent.Doc, error) {
	if workers < 1 {
		workers = 1
	}

	docs := make([]*sent.Doc, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			doc, err := p.Process(gctx, text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			doc.Id = i
			for si := range doc.Sentences {
				doc.Sentences[si].DocId = i
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.log.Debug().Int("docs", len(docs)).Int("workers", workers).Msg("pipe done")
	return docs, nil
}

// MakeDoc only tokenizes text. No component runs.
func (p *Pipeline) MakeDoc(text string) *sent.Doc {
	doc := &sent.Doc{Text: text}

	id := 0
	for si, seg := range p.tok.Segment(text) {
		s := sent.Sentence{Id: si}
		for i, piece := range seg.Pieces {
			s.Tokens = append(s.Tokens, newToken(id, i, si, piece.Text, piece.Idx, piece.SpaceAfter))
			id++
		}
		doc.Sentences = append(doc.Sentences, s)
	}

	return doc
}

func newToken(id, index, sentenceId int, text string, idx int, space bool) sent.Token {
	return sent.Token{
		Id:         id,
		Index:      index,
		SentenceId: sentenceId,
		Head:       id,
		Text:       text,
		Idx:        idx,
		SpaceAfter: space,
	}
}

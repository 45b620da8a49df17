// Package query is the interactive rule and expression search.
package query

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/c-bata/go-prompt"
	"github.com/rs/zerolog"

	"github.com/revelaction/annotext/match"
	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/render"
	"github.com/revelaction/annotext/search"
	"github.com/revelaction/annotext/storage"
)

type Handler struct {
	DocRepo  storage.DocReader
	Rules    storage.RuleReader
	Renderer *render.Renderer

	// Labels restricts the search to docs having all of them.
	Labels []string

	W   io.Writer
	Log zerolog.Logger

	mu      sync.RWMutex
	library pattern.Library
}

func NewHandler(dr storage.DocReader, rules storage.RuleReader, lib pattern.Library, r *render.Renderer, w io.Writer) *Handler {
	return &Handler{
		DocRepo:  dr,
		Rules:    rules,
		Renderer: r,
		W:        w,
		Log:      zerolog.Nop(),
		library:  lib,
	}
}

// Library returns the current rules.
func (h *Handler) Library() pattern.Library {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.library
}

// Reload reads all rules again.
func (h *Handler) Reload() error {
	lib, err := h.Rules.ReadAll()
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.library = lib
	h.mu.Unlock()
	return nil
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("annotext query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.W, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		results, err := h.Search(in)
		if err != nil {
			fmt.Fprintf(h.W, "❌ %s\n", err)
			continue
		}

		if err := h.Renderer.Match(results); err != nil {
			return err
		}
	}
}

// Search parses "[rule] [expr...]" and returns the sorted matches. Doc
// titles are registered in the Renderer.
func (h *Handler) Search(in string) ([]*match.SentenceMatch, error) {
	r, expr, err := h.parse(in)
	if err != nil {
		return nil, err
	}

	docs, err := h.DocRepo.List("")
	if err != nil {
		return nil, fmt.Errorf("list docs: %w", err)
	}
	for _, d := range docs {
		h.Renderer.AddDocName(d.Id, d.Title)
	}

	results, err := search.New(r, h.DocRepo).WithLabels(h.Labels).All(expr)
	if err != nil {
		return nil, err
	}

	h.Log.Debug().Str("rule", r.Name).Stringer("expr", expr).Int("matches", len(results)).Msg("query")
	return results, nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		lib := h.Library()

		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if befCursor == "" {
			return s
		}

		tokens := strings.Split(befCursor, " ")
		firstToken := tokens[0]

		if len(tokens) == 1 {
			s = append(s, completeRule(lib, firstToken)...)
			s = append(s, completeExpressionItem(lib, firstToken)...)
			return s
		}

		_, isFirstRule := lib.Get(firstToken)

		if len(tokens) == 2 {
			if isFirstRule {
				s = append(s, completeExpressionItem(lib, tokens[1])...)
			}
			return s
		}

		// complete as a pattern string
		rest := befCursor
		if isFirstRule {
			rest = befCursor[len(firstToken)+1:]
		}

		for _, r := range lib {
			for _, p := range r.Patterns {
				str := p.String()
				if len(rest) > len(str) || !strings.HasPrefix(str, rest) {
					continue
				}

				start := len(rest) - len(in.GetWordBeforeCursor())
				s = append(s, prompt.Suggest{Text: str[start:], Description: r.Name})
			}
		}

		return s
	}
}

func completeRule(lib pattern.Library, token string) (s []prompt.Suggest) {
	for _, r := range lib {
		if strings.HasPrefix(r.Name, token) {
			s = append(s, prompt.Suggest{Text: r.Name, Description: "🔖 " + r.Name})
		}
	}
	return s
}

// completeExpressionItem suggests the patterns having a lemma or tag with
// the token as prefix.
func completeExpressionItem(lib pattern.Library, token string) (s []prompt.Suggest) {
	for _, r := range lib {
		for _, p := range r.Patterns {
			for _, item := range p {
				if strings.HasPrefix(item.Lemma, token) || strings.HasPrefix(item.Tag, token) {
					s = append(s, prompt.Suggest{Text: p.String(), Description: r.Name})
					break
				}
			}
		}
	}
	return s
}

// parse splits the input in an optional leading rule name and an
// expression. Either can be empty, not both.
func (h *Handler) parse(in string) (pattern.Rule, pattern.Pattern, error) {
	tokens := strings.Fields(in)
	if len(tokens) == 0 {
		return pattern.Rule{}, nil, errors.New("no rule and no expression given")
	}

	r, isFirstRule := h.Library().Get(tokens[0])

	args := tokens
	if isFirstRule {
		args = tokens[1:]
	}

	if len(args) == 0 {
		return r, nil, nil
	}

	expr, err := pattern.Parse(args)
	if err != nil {
		return r, nil, err
	}

	return r, expr, nil
}

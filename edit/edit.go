// Package edit is the interactive rule editor.
package edit

import (
	"errors"
	"fmt"
	"io"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/revelaction/annotext/pattern"
	"github.com/revelaction/annotext/storage"
)

const (
	actionAdd    = 1
	actionDelete = 0
)

var (
	ErrExists  = errors.New("expression already exists")
	ErrMissing = errors.New("expression does not exist")
)

type Handler struct {
	Library pattern.Library

	Rules storage.RuleRepository

	W io.Writer
}

func NewHandler(l pattern.Library, rules storage.RuleRepository, w io.Writer) *Handler {
	return &Handler{
		Library: l,
		Rules:   rules,
		W:       w,
	}
}

func (h *Handler) Run() error {
	fmt.Fprintln(h.W, "🔑 Ctrl+L: clear, 🔧 quit")

	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer(),
			prompt.OptionTitle("annotext edit"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionHistory(history),
		)

		if in == "quit" {
			return nil
		}

		history = append(history, in)

		r, err := h.Apply(in)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) || errors.Is(err, pattern.ErrInvalid) ||
				errors.Is(err, ErrExists) || errors.Is(err, ErrMissing) {
				fmt.Fprintf(h.W, "❌ %s\n", err)
				continue
			}
			return err
		}

		fmt.Fprintf(h.W, "✅ %s: %d patterns\n", r.Name, len(r.Patterns))
	}
}

// Apply parses one input line, adds or removes the pattern and writes the
// rule. A trailing "/" removes. Adding to an unknown rule creates it.
func (h *Handler) Apply(in string) (pattern.Rule, error) {
	r, expr, action, err := h.parse(in)
	if err != nil {
		return pattern.Rule{}, err
	}

	if action == actionAdd {
		if r.Index(expr) >= 0 {
			return pattern.Rule{}, ErrExists
		}
		r.Patterns = append(r.Patterns, expr)
	} else {
		if r.Index(expr) < 0 {
			return pattern.Rule{}, ErrMissing
		}
		r = removePattern(r, expr)
	}

	if err := h.Rules.Write(r); err != nil {
		return pattern.Rule{}, err
	}

	// reload the rule after write
	stored, err := h.Rules.Read(r.Name)
	if err != nil {
		return pattern.Rule{}, err
	}

	for i, lr := range h.Library {
		if lr.Name == stored.Name {
			h.Library[i] = stored
			return stored, nil
		}
	}
	h.Library = append(h.Library, stored)
	return stored, nil
}

func (h *Handler) completer() func(in prompt.Document) []prompt.Suggest {
	return func(in prompt.Document) []prompt.Suggest {
		s := []prompt.Suggest{}
		befCursor := in.TextBeforeCursor()

		if befCursor == "" {
			return s
		}

		tokens := strings.Split(befCursor, " ")

		if len(tokens) == 1 {
			for _, r := range h.Library {
				if strings.HasPrefix(r.Name, befCursor) {
					s = append(s, prompt.Suggest{Text: r.Name})
				}
			}
			return s
		}

		r, ok := h.Library.Get(tokens[0])
		if !ok {
			return s
		}

		rest := strings.Join(tokens[1:], " ")
		if rest == "" {
			return s
		}

		for _, p := range r.Patterns {
			str := p.String()
			// Do not show suggestion at the end of the text
			if strings.HasPrefix(str, rest) && len(rest) < len(str) {
				s = append(s, prompt.Suggest{Text: str})
			}
		}

		return s
	}
}

func (h *Handler) parse(in string) (pattern.Rule, pattern.Pattern, int, error) {
	tokens := strings.Fields(in)

	action := actionAdd
	if len(tokens) == 0 {
		return pattern.Rule{}, nil, action, errors.New("no rule given to edit")
	}

	lastToken := tokens[len(tokens)-1]
	if strings.HasSuffix(lastToken, "/") {
		action = actionDelete
		tokens[len(tokens)-1] = strings.TrimSuffix(lastToken, "/")
		if tokens[len(tokens)-1] == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}

	r, found := h.rule(tokens[0])
	if !found && action == actionDelete {
		return pattern.Rule{}, nil, action, fmt.Errorf("rule %s: %w", tokens[0], storage.ErrNotFound)
	}

	if len(tokens) < 2 {
		return pattern.Rule{}, nil, action, fmt.Errorf("%w: no expression given", pattern.ErrInvalid)
	}

	expr, err := pattern.Parse(tokens[1:])
	if err != nil {
		return pattern.Rule{}, nil, action, err
	}

	return r, expr, action, nil
}

// rule finds the rule by exact name, then by unique name prefix. An unknown
// name returns a new empty rule.
func (h *Handler) rule(name string) (pattern.Rule, bool) {
	if r, ok := h.Library.Get(name); ok {
		return copyRule(r), true
	}

	var found []pattern.Rule
	for _, r := range h.Library {
		if strings.HasPrefix(r.Name, name) {
			found = append(found, r)
		}
	}
	if len(found) == 1 {
		return copyRule(found[0]), true
	}

	return pattern.Rule{Name: name}, false
}

func copyRule(r pattern.Rule) pattern.Rule {
	return pattern.Rule{Name: r.Name, Patterns: append([]pattern.Pattern(nil), r.Patterns...)}
}

func removePattern(r pattern.Rule, p pattern.Pattern) pattern.Rule {
	patterns := make([]pattern.Pattern, 0, len(r.Patterns))
	for _, e := range r.Patterns {
		if pattern.Equal(e, p) {
			continue
		}
		patterns = append(patterns, e)
	}
	return pattern.Rule{Name: r.Name, Patterns: patterns}
}

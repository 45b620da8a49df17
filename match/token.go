package match

import (
	"strings"

	"github.com/revelaction/annotext/lexattr"
	"github.com/revelaction/annotext/pattern"
	sent "github.com/revelaction/annotext/sentence"
)

func isTokenMatch(t sent.Token, item pattern.Item) bool {
	//
	// Lemma field
	//
	if len(item.Lemma) > 0 {
		if strings.HasPrefix(item.Lemma, "!") {
			if strings.TrimPrefix(item.Lemma, "!") == t.Lemma {
				return false
			}
		} else {
			// optimistically try to split possible OR values
			// If no "|" just one value
			isOrValue := false
			for _, orValue := range strings.Split(item.Lemma, "|") {
				if orValue == t.Lemma {
					isOrValue = true
					break
				}
			}

			if !isOrValue {
				return false
			}
		}
	}

	//
	// Tag field
	//
	// Morphological tags contain substrings separated with '|':
	//      DET__Definite=Def|Gender=Fem|Number=Sing|PronType=Art
	// Do not mistake with our | operator.
	if len(item.Tag) > 0 {
		switch pattern.Separator(item.Tag) {
		case "|":
			// OR
			isMatched := false
			for _, orItem := range strings.Split(item.Tag, "|") {
				if strings.Contains(t.Tag, orItem) {
					isMatched = true
					break
				}
			}

			if !isMatched {
				return false
			}
		case "+":
			// AND: must contain each
			for _, andItem := range strings.Split(item.Tag, "+") {
				if !strings.Contains(t.Tag, andItem) {
					return false
				}
			}
		default:
			// single
			if !strings.Contains(t.Tag, item.Tag) {
				return false
			}
		}
	}

	if len(item.Pos) > 0 && item.Pos != t.Pos {
		return false
	}

	if len(item.Text) > 0 && item.Text != t.Text {
		return false
	}

	if len(item.Lower) > 0 && item.Lower != lower(t) {
		return false
	}

	if len(item.Dep) > 0 && item.Dep != t.Dep {
		return false
	}

	if len(item.Shape) > 0 && item.Shape != shape(t) {
		return false
	}

	if len(item.EntType) > 0 && item.EntType != t.EntType {
		return false
	}

	return flagMatch(item.IsAlpha, t.IsAlpha) &&
		flagMatch(item.IsPunct, t.IsPunct) &&
		flagMatch(item.IsDigit, t.IsDigit) &&
		flagMatch(item.LikeNum, t.LikeNum) &&
		flagMatch(item.IsStop, t.IsStop)
}

func flagMatch(want *bool, got bool) bool {
	return want == nil || *want == got
}

// imported docs may lack the lexical attributes
func lower(t sent.Token) string {
	if t.Lower != "" {
		return t.Lower
	}
	return strings.ToLower(t.Text)
}

func shape(t sent.Token) string {
	if t.Shape != "" {
		return t.Shape
	}
	return lexattr.Shape(t.Text)
}

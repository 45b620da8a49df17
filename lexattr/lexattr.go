// Package lexattr computes context independent attributes of a word.
package lexattr

import (
	"strings"
	"unicode"
)

// maximum run of the same shape character
const shapeRun = 4

var numberWords = map[string]struct{}{
	"zero": {}, "one": {}, "two": {}, "three": {}, "four": {}, "five": {},
	"six": {}, "seven": {}, "eight": {}, "nine": {}, "ten": {}, "eleven": {},
	"twelve": {}, "thirteen": {}, "fourteen": {}, "fifteen": {}, "sixteen": {},
	"seventeen": {}, "eighteen": {}, "nineteen": {}, "twenty": {}, "thirty": {},
	"forty": {}, "fifty": {}, "sixty": {}, "seventy": {}, "eighty": {},
	"ninety": {}, "hundred": {}, "thousand": {}, "million": {}, "billion": {},
	"trillion": {}, "quadrillion": {}, "gajillion": {}, "bazillion": {},
}

// Shape returns the word shape: X for upper, x for lower, d for digits. Other
// characters are kept. Runs of the same character are cut after 4.
//
//	Apple -> Xxxxx
//	U.K.  -> X.X.
//	$1    -> $d
//	2024  -> dddd
func Shape(text string) string {
	var b strings.Builder
	var last rune
	run := 0
	for _, r := range text {
		var c rune
		switch {
		case unicode.IsUpper(r):
			c = 'X'
		case unicode.IsLower(r):
			c = 'x'
		case unicode.IsDigit(r):
			c = 'd'
		default:
			c = r
		}

		if c == last {
			run++
		} else {
			run = 1
			last = c
		}

		if run > shapeRun {
			continue
		}
		b.WriteRune(c)
	}

	return b.String()
}

func IsAlpha(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func IsDigit(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether text is made only of punctuation. Treebank quote
// tokens (`` and '') count as punctuation.
func IsPunct(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsPunct(r) && r != '`' {
			return false
		}
	}
	return true
}

func IsSpace(text string) bool {
	if text == "" {
		return false
	}
	return strings.TrimSpace(text) == ""
}

// LikeNum reports whether text resembles a number: digits with separators
// (10,000 or 3.14), simple fractions (1/2) or an English number word.
func LikeNum(text string) bool {
	t := strings.TrimLeft(text, "+-~±")
	if t == "" {
		return false
	}

	t = strings.ReplaceAll(t, ",", "")
	t = strings.ReplaceAll(t, ".", "")
	if IsDigit(t) {
		return true
	}

	if strings.Count(t, "/") == 1 {
		parts := strings.Split(t, "/")
		if IsDigit(parts[0]) && IsDigit(parts[1]) {
			return true
		}
	}

	_, ok := numberWords[strings.ToLower(t)]
	return ok
}

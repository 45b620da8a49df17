package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse parses the compact expression syntax of the command line and the
// REPLs into a Pattern:
//
//	cuando 3 VERB          lemma "cuando", then a VERB tag within 3 tokens
//	ir|venir !no           lemma alternatives, negated lemma
//	POS=NOUN,OP=+          key=value items for any other constraint
//
// A lowercase word is a lemma, a capitalised word is a tag and an integer
// sets NEAR for the following item.
func Parse(args []string) (Pattern, error) {
	isLastInt := false
	var p Pattern
	lastNear := 0

	for idx, arg := range args {
		if arg == "" {
			return nil, fmt.Errorf("%w: empty argument", ErrInvalid)
		}

		near, err := strconv.Atoi(arg)
		if err == nil {
			if idx == 0 {
				return nil, fmt.Errorf("%w: first expression argument can not be a number", ErrInvalid)
			}

			if isLastInt {
				return nil, fmt.Errorf("%w: two consecutive numbers in the expression", ErrInvalid)
			}

			if near <= 0 {
				return nil, fmt.Errorf("%w: near distance must be positive", ErrInvalid)
			}

			lastNear = near
			isLastInt = true
			continue
		}

		var item Item
		if strings.Contains(arg, "=") {
			item, err = parseKeyValues(arg)
			if err != nil {
				return nil, err
			}
		} else {
			firstChar := []rune(arg)[0]
			if unicode.IsUpper(firstChar) && unicode.IsLetter(firstChar) {
				item.Tag = arg
			} else {
				item.Lemma = arg
			}
		}

		if lastNear > 0 {
			item.Near = lastNear
		}

		p = append(p, item)
		lastNear = 0
		isLastInt = false
	}

	if isLastInt {
		return nil, fmt.Errorf("%w: expression can not end with a number", ErrInvalid)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func parseKeyValues(arg string) (Item, error) {
	var item Item
	for _, kv := range strings.Split(arg, ",") {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return Item{}, fmt.Errorf("%w: %q is not KEY=value", ErrInvalid, kv)
		}

		if err := item.set(strings.ToUpper(key), value); err != nil {
			return Item{}, err
		}
	}
	return item, nil
}

func (it *Item) set(key, value string) error {
	switch key {
	case "TEXT", "ORTH":
		it.Text = value
	case "LOWER":
		it.Lower = value
	case "LEMMA":
		it.Lemma = value
	case "POS":
		it.Pos = value
	case "TAG":
		it.Tag = value
	case "DEP":
		it.Dep = value
	case "SHAPE":
		it.Shape = value
	case "ENT_TYPE":
		it.EntType = value
	case "OP":
		it.Op = value
	case "NEAR":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: NEAR %q", ErrInvalid, value)
		}
		it.Near = n
	case "IS_ALPHA", "IS_PUNCT", "IS_DIGIT", "LIKE_NUM", "IS_STOP":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s %q", ErrInvalid, key, value)
		}
		*it.flag(key) = &b
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, key)
	}
	return nil
}

func (it *Item) flag(key string) **bool {
	switch key {
	case "IS_ALPHA":
		return &it.IsAlpha
	case "IS_PUNCT":
		return &it.IsPunct
	case "IS_DIGIT":
		return &it.IsDigit
	case "LIKE_NUM":
		return &it.LikeNum
	default:
		return &it.IsStop
	}
}

// String returns the pattern in the syntax read by Parse.
func (p Pattern) String() string {
	sl := []string{}
	for _, item := range p {
		if item.Near > 0 {
			sl = append(sl, strconv.Itoa(item.Near))
		}
		sl = append(sl, item.String())
	}

	return strings.Join(sl, " ")
}

// String returns the item without its Near distance: a bare lemma or tag
// when possible, key=value pairs otherwise.
func (it Item) String() string {
	bare := it
	bare.Near = 0

	if bare.Lemma != "" && isBare(bare.Lemma) && !startsUpper(bare.Lemma) {
		if EqualItem(bare, Item{Lemma: bare.Lemma}) {
			return bare.Lemma
		}
	}

	if bare.Tag != "" && isBare(bare.Tag) && startsUpper(bare.Tag) {
		if EqualItem(bare, Item{Tag: bare.Tag}) {
			return bare.Tag
		}
	}

	var kv []string
	add := func(key, value string) {
		if value != "" {
			kv = append(kv, key+"="+value)
		}
	}

	add("TEXT", it.Text)
	add("LOWER", it.Lower)
	add("LEMMA", it.Lemma)
	add("POS", it.Pos)
	add("TAG", it.Tag)
	add("DEP", it.Dep)
	add("SHAPE", it.Shape)
	add("ENT_TYPE", it.EntType)
	for _, key := range []string{"IS_ALPHA", "IS_PUNCT", "IS_DIGIT", "LIKE_NUM", "IS_STOP"} {
		if f := *it.flag(key); f != nil {
			add(key, strconv.FormatBool(*f))
		}
	}

	op := it.Op
	if len(kv) == 0 && op == OpOne {
		// a wildcard
		op = "1"
	}
	add("OP", op)

	return strings.Join(kv, ",")
}

func isBare(s string) bool {
	if strings.ContainsAny(s, "=, \t") {
		return false
	}
	_, err := strconv.Atoi(s)
	return err != nil
}

func startsUpper(s string) bool {
	r := []rune(s)[0]
	return unicode.IsUpper(r) && unicode.IsLetter(r)
}

package ner

import (
	"net/url"
	"strings"

	sent "github.com/revelaction/annotext/sentence"
)

const wikipediaSearch = "https://en.wikipedia.org/w/index.php?search="

// labels with a likely wikipedia article. NE is the unlabelled entity of
// the recognizer.
var wikipediaLabels = map[string]struct{}{
	"PERSON": {}, "ORG": {}, "GPE": {}, "LOCATION": {}, "LOC": {}, NE: {},
}

// WikipediaURL returns the wikipedia search link of a person, organization
// or place entity, and "" for any other label. It is meant as a span
// extension getter.
func WikipediaURL(doc *sent.Doc, s sent.Span) string {
	if _, ok := wikipediaLabels[s.Label]; !ok {
		return ""
	}

	text := doc.SpanText(s)
	if text == "" {
		return ""
	}
	return wikipediaSearch + url.QueryEscape(strings.ReplaceAll(text, " ", "_"))
}

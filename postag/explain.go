package postag

import "strings"

var glossary = map[string]string{
	// universal POS
	"ADJ":   "adjective",
	"ADP":   "adposition",
	"ADV":   "adverb",
	"AUX":   "auxiliary",
	"CONJ":  "conjunction",
	"CCONJ": "coordinating conjunction",
	"DET":   "determiner",
	"INTJ":  "interjection",
	"NOUN":  "noun",
	"NUM":   "numeral",
	"PART":  "particle",
	"PRON":  "pronoun",
	"PROPN": "proper noun",
	"PUNCT": "punctuation",
	"SCONJ": "subordinating conjunction",
	"SYM":   "symbol",
	"VERB":  "verb",
	"X":     "other",
	"EOL":   "end of line",
	"SPACE": "space",

	// Penn Treebank
	".":     "punctuation mark, sentence closer",
	",":     "punctuation mark, comma",
	"-LRB-": "left round bracket",
	"-RRB-": "right round bracket",
	"``":    "opening quotation mark",
	"''":    "closing quotation mark",
	":":     "punctuation mark, colon or ellipsis",
	"$":     "symbol, currency",
	"#":     "symbol, number sign",
	"CC":    "conjunction, coordinating",
	"CD":    "cardinal number",
	"DT":    "determiner",
	"EX":    "existential there",
	"FW":    "foreign word",
	"HYPH":  "punctuation mark, hyphen",
	"IN":    "conjunction, subordinating or preposition",
	"JJ":    "adjective",
	"JJR":   "adjective, comparative",
	"JJS":   "adjective, superlative",
	"LS":    "list item marker",
	"MD":    "verb, modal auxiliary",
	"NFP":   "superfluous punctuation",
	"NN":    "noun, singular or mass",
	"NNP":   "noun, proper singular",
	"NNPS":  "noun, proper plural",
	"NNS":   "noun, plural",
	"PDT":   "predeterminer",
	"POS":   "possessive ending",
	"PRP":   "pronoun, personal",
	"PRP$":  "pronoun, possessive",
	"RB":    "adverb",
	"RBR":   "adverb, comparative",
	"RBS":   "adverb, superlative",
	"RP":    "adverb, particle",
	"TO":    `infinitival "to"`,
	"UH":    "interjection",
	"VB":    "verb, base form",
	"VBD":   "verb, past tense",
	"VBG":   "verb, gerund or present participle",
	"VBN":   "verb, past participle",
	"VBP":   "verb, non-3rd person singular present",
	"VBZ":   "verb, 3rd person singular present",
	"WDT":   "wh-determiner",
	"WP":    "wh-pronoun, personal",
	"WP$":   "wh-pronoun, possessive",
	"WRB":   "wh-adverb",

	// dependency labels
	"acl":       "clausal modifier of noun (adjectival clause)",
	"acomp":     "adjectival complement",
	"advcl":     "adverbial clause modifier",
	"advmod":    "adverbial modifier",
	"amod":      "adjectival modifier",
	"appos":     "appositional modifier",
	"attr":      "attribute",
	"aux":       "auxiliary",
	"auxpass":   "auxiliary (passive)",
	"case":      "case marking",
	"cc":        "coordinating conjunction",
	"ccomp":     "clausal complement",
	"compound":  "compound",
	"conj":      "conjunct",
	"cop":       "copula",
	"csubj":     "clausal subject",
	"dative":    "dative",
	"dep":       "unclassified dependent",
	"det":       "determiner",
	"dobj":      "direct object",
	"expl":      "expletive",
	"iobj":      "indirect object",
	"mark":      "marker",
	"neg":       "negation modifier",
	"nmod":      "modifier of nominal",
	"npadvmod":  "noun phrase as adverbial modifier",
	"nsubj":     "nominal subject",
	"nsubjpass": "nominal subject (passive)",
	"nummod":    "numeric modifier",
	"obj":       "object",
	"obl":       "oblique nominal",
	"pobj":      "object of preposition",
	"poss":      "possession modifier",
	"prep":      "prepositional modifier",
	"prt":       "particle",
	"punct":     "punctuation",
	"root":      "root",
	"xcomp":     "open clausal complement",

	// entity labels
	"CARDINAL":    "Numerals that do not fall under another type",
	"DATE":        "Absolute or relative dates or periods",
	"EVENT":       "Named hurricanes, battles, wars, sports events, etc.",
	"FAC":         "Buildings, airports, highways, bridges, etc.",
	"GPE":         "Countries, cities, states",
	"LOC":         "Non-GPE locations, mountain ranges, bodies of water",
	"MONEY":       "Monetary values, including unit",
	"NE":          "Named entity of unknown type",
	"NORP":        "Nationalities or religious or political groups",
	"ORG":         "Companies, agencies, institutions, etc.",
	"PERCENT":     "Percentage, including \"%\"",
	"PERSON":      "People, including fictional",
	"PRODUCT":     "Objects, vehicles, foods, etc. (not services)",
	"QUANTITY":    "Measurements, as of weight or distance",
	"TIME":        "Times smaller than a day",
	"WORK_OF_ART": "Titles of books, songs, etc.",

	// chunk labels
	"NP": "noun phrase",
	"VP": "verb phrase",
	"PP": "prepositional phrase",
}

// Explain returns a short description of a tag, POS, dependency, entity or
// chunk label. It returns "" for unknown labels.
func Explain(label string) string {
	if d, ok := glossary[label]; ok {
		return d
	}

	if d, ok := glossary[strings.ToUpper(label)]; ok {
		return d
	}

	return glossary[strings.ToLower(label)]
}

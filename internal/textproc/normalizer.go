// Package textproc cleans raw catalog text before vectorization. Snowball
// stemming stands in for dictionary lemmatization here: the base forms it
// produces are stems, not always dictionary words ("movies" becomes "movi"),
// which is harmless because documents and queries pass through the identical
// pipeline and only ever meet each other in stemmed space.
package textproc

import (
	"strings"

	"github.com/kljensen/snowball/english"
)

// Normalizer reduces raw metadata text to a canonical token stream: lowercase,
// letters only, stopwords dropped, each surviving word reduced to its base
// form. The zero value is not usable; construct with New so the stopword set
// is built once and shared read-only.
type Normalizer struct {
	stopwords map[string]struct{}
}

func New() *Normalizer {
	return &Normalizer{stopwords: buildStopwords(baseStopwords)}
}

// NewWithStopwords builds a Normalizer over a caller-supplied stopword list.
// Used by tests and by callers that need a different language profile.
func NewWithStopwords(words []string) *Normalizer {
	return &Normalizer{stopwords: buildStopwords(words)}
}

func buildStopwords(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Normalize cleans a single text field. Empty input yields empty output;
// the function never fails.
//
// Steps, in order: lowercase; drop every rune that is not a-z or whitespace;
// split on whitespace; drop stopwords and tokens of length <= 2; stem each
// remaining token; rejoin with single spaces.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := n.stopwords[tok]; stop {
			continue
		}
		out = append(out, english.Stem(tok, false))
	}

	return strings.Join(out, " ")
}

// Tokens is Normalize split into its token slice, for callers that feed a
// tokenizer directly.
func (n *Normalizer) Tokens(text string) []string {
	s := n.Normalize(text)
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

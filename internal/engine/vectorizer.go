package engine

import (
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
)

const (
	defaultMaxFeatures = 5000
	minTokenLen        = 2
)

// Vectorizer maps documents into a fixed TF-IDF vector space. Fit it once
// over the full corpus; after that the vocabulary and IDF weights are frozen
// and Transform projects arbitrary new text into the same space. Terms are
// unigrams and bigrams over whitespace tokens, with a second English stopword
// pass applied here independent of whatever cleaning produced the documents.
type Vectorizer struct {
	maxFeatures int
	stopwords   map[string]struct{}

	vocab  map[string]int
	idf    []float64
	fitted bool
}

func NewVectorizer() *Vectorizer {
	stop := make(map[string]struct{}, len(vectorizerStopwords))
	for _, w := range vectorizerStopwords {
		stop[w] = struct{}{}
	}
	return &Vectorizer{
		maxFeatures: defaultMaxFeatures,
		stopwords:   stop,
	}
}

// FitTransform learns the vocabulary and IDF weights from docs and returns
// one L2-normalized vector per document, in input order. Selection keeps the
// top maxFeatures terms by total corpus frequency (ties broken
// alphabetically); column indices follow sorted term order so the model is
// fully deterministic for a given corpus.
func (v *Vectorizer) FitTransform(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	corpusFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		c := termCounts(v.terms(doc))
		counts[i] = c
		for term, n := range c {
			corpusFreq[term] += n
			docFreq[term]++
		}
	}

	selected := selectTerms(corpusFreq, v.maxFeatures)

	v.vocab = make(map[string]int, len(selected))
	v.idf = make([]float64, len(selected))
	n := float64(len(docs))
	for i, term := range selected {
		v.vocab[term] = i
		// smoothed IDF, never zero and never divides by zero
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	v.fitted = true

	// vectorizing each document is independent work; fan out, write by index
	vectors := make([]Vector, len(docs))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(docs) {
		workers = len(docs)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				vectors[i] = v.vectorize(counts[i])
			}
		}()
	}
	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return vectors
}

// Transform projects new text into the fitted space. Terms outside the
// vocabulary contribute nothing. Returns ErrNotFit before FitTransform ran.
func (v *Vectorizer) Transform(text string) (Vector, error) {
	if !v.fitted {
		return nil, ErrNotFit
	}
	return v.vectorize(termCounts(v.terms(text))), nil
}

func (v *Vectorizer) Fitted() bool   { return v.fitted }
func (v *Vectorizer) VocabSize() int { return len(v.vocab) }

// vectorize builds the sparse TF-IDF vector for one document's term counts.
func (v *Vectorizer) vectorize(counts map[string]int) Vector {
	vec := make(Vector, 0, len(counts))
	for term, count := range counts {
		idx, ok := v.vocab[term]
		if !ok {
			continue
		}
		vec = append(vec, Entry{Index: idx, Weight: float64(count) * v.idf[idx]})
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].Index < vec[b].Index })
	vec.normalize()
	return vec
}

// terms emits unigrams and bigrams from whitespace-split tokens, dropping
// stopwords and tokens shorter than two characters before n-gram assembly.
func (v *Vectorizer) terms(text string) []string {
	raw := strings.Fields(text)
	tokens := raw[:0]
	for _, tok := range raw {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := v.stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	out := make([]string, 0, 2*len(tokens))
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}

// selectTerms keeps the top max terms by corpus frequency and returns them
// in sorted order for stable column assignment.
func selectTerms(corpusFreq map[string]int, max int) []string {
	terms := make([]string, 0, len(corpusFreq))
	for t := range corpusFreq {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(a, b int) bool {
		fa, fb := corpusFreq[terms[a]], corpusFreq[terms[b]]
		if fa != fb {
			return fa > fb
		}
		return terms[a] < terms[b]
	})
	if max > 0 && len(terms) > max {
		terms = terms[:max]
	}
	sort.Strings(terms)
	return terms
}

// Package embedding implements the bag-of-words vectorization used for
// knowledge-base similarity search. Texts are projected onto a fixed
// vocabulary of web-stack terms and compared with cosine similarity.
//
// This is a deliberately cheap signal, not a semantic embedding. The
// vocabulary projection is part of the storage contract: stored vectors are
// never recomputed, so the vocabulary must stay fixed in size and order.
package embedding

import (
	"math"
	"strings"
	"unicode"
)

// vocabulary is the fixed, ordered term list. Index i of every embedding is
// the (normalized) frequency of vocabulary[i]. Do not reorder or resize.
var vocabulary = []string{
	"react", "component", "button", "form", "page", "layout",
	"style", "navbar", "footer", "frontend", "state", "hook",
	"api", "route", "service", "server", "backend", "auth",
	"login", "user", "database", "model", "query", "websocket",
}

// Dimensions returns the embedding length, equal to the vocabulary size.
func Dimensions() int {
	return len(vocabulary)
}

// Vocabulary returns a copy of the vocabulary term list.
func Vocabulary() []string {
	terms := make([]string, len(vocabulary))
	copy(terms, vocabulary)
	return terms
}

// Embed converts text into a fixed-length vector: lowercase word counts
// projected onto the vocabulary, L2-normalized. Words of length <= 2 are
// ignored. Text containing no vocabulary term yields the zero vector
// (normalization is skipped to avoid dividing by zero).
func Embed(text string) []float32 {
	counts := make(map[string]int)
	for _, word := range tokenize(text) {
		counts[word]++
	}

	vec := make([]float32, len(vocabulary))
	var sumSquares float64
	for i, term := range vocabulary {
		c := float64(counts[term])
		vec[i] = float32(c)
		sumSquares += c * c
	}

	if sumSquares == 0 {
		return vec
	}

	magnitude := float32(math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] /= magnitude
	}
	return vec
}

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero-magnitude vectors score 0 rather than erroring, so stored
// entries from an older vocabulary degrade instead of failing a search.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tokenize splits text into lowercase alphanumeric words longer than two
// characters.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 2 {
			words = append(words, f)
		}
	}
	return words
}

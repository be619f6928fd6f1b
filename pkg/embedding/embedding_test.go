package embedding

import (
	"math"
	"testing"
)

func TestEmbed_Deterministic(t *testing.T) {
	text := "react button component with login form state"

	first := Embed(text)
	second := Embed(text)

	if len(first) != Dimensions() {
		t.Fatalf("expected length %d, got %d", Dimensions(), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("vectors differ at index %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEmbed_FixedLength(t *testing.T) {
	inputs := []string{
		"",
		"react",
		"a completely unrelated sentence about cooking pasta",
		"api api api service route backend database model query",
	}

	for _, input := range inputs {
		vec := Embed(input)
		if len(vec) != Dimensions() {
			t.Errorf("Embed(%q) length = %d, want %d", input, len(vec), Dimensions())
		}
	}
}

func TestEmbed_Normalized(t *testing.T) {
	vec := Embed("react component with a button and form state")

	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}

	if math.Abs(sumSquares-1.0) > 1e-6 {
		t.Errorf("expected unit vector, got squared magnitude %v", sumSquares)
	}
}

func TestEmbed_NoVocabularyTermsYieldsZeroVector(t *testing.T) {
	vec := Embed("the quick brown fox jumps over the lazy dog")

	for i, v := range vec {
		if v != 0 {
			t.Errorf("expected zero vector, got %v at index %d", v, i)
		}
	}
}

func TestEmbed_IgnoresShortWords(t *testing.T) {
	// "api" counts; "ap" and "ui" are too short to tokenize at all.
	withNoise := Embed("api ap ui")
	clean := Embed("api")

	for i := range clean {
		if withNoise[i] != clean[i] {
			t.Errorf("short words changed the vector at index %d", i)
		}
	}
}

func TestCosine_SelfSimilarityIsOne(t *testing.T) {
	vec := Embed("react component button")

	sim := Cosine(vec, vec)
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("self-similarity = %v, want 1.0", sim)
	}
}

func TestCosine_Symmetric(t *testing.T) {
	a := Embed("react button component")
	b := Embed("api service backend")

	if Cosine(a, b) != Cosine(b, a) {
		t.Errorf("cosine not symmetric: %v vs %v", Cosine(a, b), Cosine(b, a))
	}
}

func TestCosine_ZeroVectorScoresZero(t *testing.T) {
	zero := make([]float32, Dimensions())
	vec := Embed("react component")

	if got := Cosine(zero, vec); got != 0 {
		t.Errorf("Cosine(zero, vec) = %v, want 0", got)
	}
	if got := Cosine(vec, zero); got != 0 {
		t.Errorf("Cosine(vec, zero) = %v, want 0", got)
	}
	if got := Cosine(zero, zero); got != 0 {
		t.Errorf("Cosine(zero, zero) = %v, want 0", got)
	}
}

func TestCosine_LengthMismatchScoresZero(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{1, 0}

	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine with mismatched lengths = %v, want 0", got)
	}
}

func TestCosine_RelatedTextScoresHigherThanUnrelated(t *testing.T) {
	query := Embed("button component")
	related := Embed("react button component with click handler button")
	unrelated := Embed("database query model backend")

	if Cosine(query, related) <= Cosine(query, unrelated) {
		t.Errorf("related text should outscore unrelated: %v vs %v",
			Cosine(query, related), Cosine(query, unrelated))
	}
}

func TestVocabulary_ReturnsCopy(t *testing.T) {
	terms := Vocabulary()
	terms[0] = "mutated"

	if Vocabulary()[0] == "mutated" {
		t.Error("Vocabulary() exposed internal slice")
	}
}

package embedding

import (
	"context"
	"strings"
	"unicode"

	"github.com/Hsinha11/AI-Journal/pkg/domain/interfaces"
	"github.com/cespare/xxhash/v2"
)

// Hashing is a deterministic local embedder based on feature hashing of words and
// character trigrams. It needs no model and is meant for development and tests.
// Texts sharing vocabulary end up close to each other; it has no semantic knowledge.
type Hashing struct {
	dimension int
}

var _ interfaces.Embedder = &Hashing{}

func NewHashing(dimension int) *Hashing {
	return &Hashing{dimension: dimension}
}

func (h *Hashing) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	words := tokenize(text)
	if len(words) == 0 {
		words = []string{strings.TrimSpace(text)}
	}

	vec := make([]float32, h.dimension)
	for _, word := range words {
		h.add(vec, "w:"+word, 1.0)

		padded := "^" + word + "$"
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			h.add(vec, "t:"+string(runes[i:i+3]), 0.5)
		}
	}
	return normalize(vec), nil
}

func (h *Hashing) add(vec []float32, feature string, weight float32) {
	sum := xxhash.Sum64String(feature)
	idx := int(sum % uint64(h.dimension))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

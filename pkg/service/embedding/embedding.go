// Package embedding provides text embedding providers. Every provider returns
// L2-normalized vectors of a fixed dimension.
package embedding

import (
	"math"
	"strings"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return goerr.Wrap(model.ErrValidation, "text to embed is empty")
	}
	return nil
}

// normalize scales v to unit length in place and returns it. Zero vectors are returned as is.
func normalize(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

func checkDimension(provider string, got, want int) error {
	if got != want {
		return goerr.Wrap(model.ErrModelUnavailable, "unexpected embedding dimension",
			goerr.V("provider", provider),
			goerr.V("expected", want),
			goerr.V("got", got))
	}
	return nil
}

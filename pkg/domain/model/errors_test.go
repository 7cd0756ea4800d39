package model_test

import (
	"errors"
	"testing"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestClassify(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		gt.NoError(t, model.Classify(model.ErrIndexUnavailable, nil))
	})

	t.Run("keeps both kind and cause reachable", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := goerr.Wrap(model.Classify(model.ErrIndexUnavailable, cause), "failed to query")

		gt.Bool(t, errors.Is(err, model.ErrIndexUnavailable)).True()
		gt.Bool(t, errors.Is(err, cause)).True()
		gt.Bool(t, errors.Is(err, model.ErrModelUnavailable)).False()
		gt.String(t, err.Error()).Contains("connection refused")
	})

	t.Run("already classified error is returned unchanged", func(t *testing.T) {
		err := goerr.Wrap(model.ErrStoreUnavailable, "down")
		gt.Value(t, model.Classify(model.ErrStoreUnavailable, err)).Equal(err)
	})

	t.Run("error of another kind keeps its kind", func(t *testing.T) {
		err := goerr.Wrap(model.ErrValidation, "bad input")
		classified := model.Classify(model.ErrModelUnavailable, err)
		gt.Bool(t, errors.Is(classified, model.ErrValidation)).True()
		gt.Bool(t, errors.Is(classified, model.ErrModelUnavailable)).False()
	})
}

func TestClassifyDependency(t *testing.T) {
	t.Run("validation failure of a collaborator becomes the given kind", func(t *testing.T) {
		err := goerr.Wrap(model.ErrValidation, "dimension mismatch", goerr.V("got", 3), goerr.V("want", 768))
		classified := model.ClassifyDependency(model.ErrIndexUnavailable, err)

		gt.Bool(t, errors.Is(classified, model.ErrIndexUnavailable)).True()
		gt.Bool(t, errors.Is(classified, model.ErrValidation)).False()
		gt.String(t, classified.Error()).Contains("dimension mismatch")
	})

	t.Run("other kinds are kept", func(t *testing.T) {
		err := goerr.Wrap(model.ErrStoreUnavailable, "down")
		gt.Value(t, model.ClassifyDependency(model.ErrIndexUnavailable, err)).Equal(err)
	})

	t.Run("unclassified error gets the kind", func(t *testing.T) {
		cause := errors.New("timeout")
		classified := model.ClassifyDependency(model.ErrModelUnavailable, cause)
		gt.Bool(t, errors.Is(classified, model.ErrModelUnavailable)).True()
		gt.Bool(t, errors.Is(classified, cause)).True()
	})

	t.Run("nil stays nil", func(t *testing.T) {
		gt.NoError(t, model.ClassifyDependency(model.ErrIndexUnavailable, nil))
	})
}

func TestErrors_ErrorsAreDistinct(t *testing.T) {
	kinds := []error{
		model.ErrValidation,
		model.ErrNotFound,
		model.ErrConflict,
		model.ErrUnauthorized,
		model.ErrForbidden,
		model.ErrModelUnavailable,
		model.ErrIndexUnavailable,
		model.ErrStoreUnavailable,
	}
	for i, a := range kinds {
		for j, b := range kinds {
			gt.Value(t, errors.Is(a, b)).Equal(i == j)
		}
	}
}

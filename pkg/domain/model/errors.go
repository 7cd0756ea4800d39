package model

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Error taxonomy shared by every layer. Check with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrModelUnavailable = errors.New("embedding model unavailable")
	ErrIndexUnavailable = errors.New("vector index unavailable")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// Context keys for error values
const (
	EntryIDKey = "entry_id"
	OwnerIDKey = "owner_id"
	UserIDKey  = "user_id"
)

var kinds = []error{
	ErrValidation,
	ErrNotFound,
	ErrConflict,
	ErrUnauthorized,
	ErrForbidden,
	ErrModelUnavailable,
	ErrIndexUnavailable,
	ErrStoreUnavailable,
}

// IsClassified reports whether err already belongs to one of the error kinds
func IsClassified(err error) bool {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return true
		}
	}
	return false
}

// Classify marks err as belonging to kind so that errors.Is(err, kind) holds.
// Errors that already carry a kind are returned unchanged. nil stays nil.
func Classify(kind, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	return goerr.Join(kind, err)
}

// ClassifyDependency classifies an error raised by a collaborator such as the
// embedding model or the vector index. A validation failure there means the
// collaborator is misconfigured, not that the caller sent bad input, so it is
// reported as kind instead.
func ClassifyDependency(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) {
		return goerr.Wrap(kind, err.Error())
	}
	return Classify(kind, err)
}

package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// PreviewMaxLength is the number of characters of entry content kept as vector metadata
	PreviewMaxLength = 1000

	// DefaultSearchLimit is the number of nearest neighbors requested per search
	DefaultSearchLimit = 5
)

// EntryID is a UUID-based identifier for Entry. It is also the vector id in the index.
type EntryID string

// NewEntryID generates a new UUID v4 EntryID
func NewEntryID() EntryID {
	return EntryID(uuid.New().String())
}

func (id EntryID) String() string {
	return string(id)
}

// Entry is a journal entry owned by exactly one user
type Entry struct {
	ID        EntryID   `json:"id"`
	OwnerID   UserID    `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks that the entry has an owner and non-blank content
func (e *Entry) Validate() error {
	if e.OwnerID == "" {
		return goerr.Wrap(ErrValidation, "owner is required", goerr.V(EntryIDKey, e.ID))
	}
	if strings.TrimSpace(e.Content) == "" {
		return goerr.Wrap(ErrValidation, "content is required", goerr.V(EntryIDKey, e.ID))
	}
	return nil
}

// Preview returns at most n characters from the head of the content.
// Truncation counts runes so multi-byte text is never split.
func (e *Entry) Preview(n int) string {
	return truncateRunes(e.Content, n)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

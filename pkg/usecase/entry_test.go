package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/repository/memory"
	"github.com/Hsinha11/AI-Journal/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func setupEntryUseCase(t *testing.T) (*usecase.UseCases, *fakeIndex) {
	t.Helper()
	idx := newFakeIndex()
	uc, err := usecase.New(memory.New(),
		usecase.WithEmbedder(&fakeEmbedder{}),
		usecase.WithVectorIndex(idx),
	)
	gt.NoError(t, err).Required()
	return uc, idx
}

func TestEntryUseCase(t *testing.T) {
	ctx := context.Background()
	owner := model.NewUserID()

	t.Run("create stores and indexes", func(t *testing.T) {
		uc, idx := setupEntryUseCase(t)

		entry, err := uc.Entry.CreateEntry(ctx, owner, "today was good")
		gt.NoError(t, err).Required()
		gt.Value(t, entry.OwnerID).Equal(owner)
		gt.Value(t, entry.Content).Equal("today was good")
		gt.Bool(t, entry.CreatedAt.IsZero()).False()

		_, ok := idx.get(entry.ID)
		gt.Bool(t, ok).True()
	})

	t.Run("blank content is rejected", func(t *testing.T) {
		uc, _ := setupEntryUseCase(t)

		_, err := uc.Entry.CreateEntry(ctx, owner, "  ")
		gt.Error(t, err).Is(model.ErrValidation)

		entry, err := uc.Entry.CreateEntry(ctx, owner, "x")
		gt.NoError(t, err).Required()
		_, err = uc.Entry.UpdateEntry(ctx, owner, entry.ID, "")
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("create succeeds when indexing fails", func(t *testing.T) {
		idx := newFakeIndex()
		idx.upsertFn = func(ctx context.Context, vector *model.EntryVector) error {
			return errors.New("unavailable")
		}
		uc, err := usecase.New(memory.New(),
			usecase.WithEmbedder(&fakeEmbedder{}),
			usecase.WithVectorIndex(idx),
		)
		gt.NoError(t, err).Required()

		entry, err := uc.Entry.CreateEntry(ctx, owner, "still saved")
		gt.NoError(t, err).Required()

		got, err := uc.Entry.GetEntry(ctx, owner, entry.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Content).Equal("still saved")
	})

	t.Run("create succeeds without search configured", func(t *testing.T) {
		uc, err := usecase.New(memory.New())
		gt.NoError(t, err).Required()

		_, err = uc.Entry.CreateEntry(ctx, owner, "no index")
		gt.NoError(t, err)
	})

	t.Run("update refreshes content and index", func(t *testing.T) {
		uc, idx := setupEntryUseCase(t)

		entry, err := uc.Entry.CreateEntry(ctx, owner, "draft")
		gt.NoError(t, err).Required()

		updated, err := uc.Entry.UpdateEntry(ctx, owner, entry.ID, "final")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Content).Equal("final")
		gt.Bool(t, updated.UpdatedAt.After(entry.UpdatedAt)).True()

		v, ok := idx.get(entry.ID)
		gt.Bool(t, ok).True()
		gt.Value(t, v.Metadata.ContentPreview).Equal("final")
	})

	t.Run("foreign entries are not found", func(t *testing.T) {
		uc, _ := setupEntryUseCase(t)
		stranger := model.NewUserID()

		entry, err := uc.Entry.CreateEntry(ctx, owner, "private")
		gt.NoError(t, err).Required()

		_, err = uc.Entry.GetEntry(ctx, stranger, entry.ID)
		gt.Error(t, err).Is(model.ErrNotFound)
		_, err = uc.Entry.UpdateEntry(ctx, stranger, entry.ID, "hijack")
		gt.Error(t, err).Is(model.ErrNotFound)
		gt.Error(t, uc.Entry.DeleteEntry(ctx, stranger, entry.ID)).Is(model.ErrNotFound)

		got, err := uc.Entry.GetEntry(ctx, owner, entry.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Content).Equal("private")
	})

	t.Run("delete removes entry and vector", func(t *testing.T) {
		uc, idx := setupEntryUseCase(t)

		entry, err := uc.Entry.CreateEntry(ctx, owner, "bye")
		gt.NoError(t, err).Required()
		gt.NoError(t, uc.Entry.DeleteEntry(ctx, owner, entry.ID)).Required()

		_, err = uc.Entry.GetEntry(ctx, owner, entry.ID)
		gt.Error(t, err).Is(model.ErrNotFound)
		_, ok := idx.get(entry.ID)
		gt.Bool(t, ok).False()
	})

	t.Run("list is newest first and scoped by owner", func(t *testing.T) {
		uc, _ := setupEntryUseCase(t)

		first, err := uc.Entry.CreateEntry(ctx, owner, "first")
		gt.NoError(t, err).Required()
		second, err := uc.Entry.CreateEntry(ctx, owner, "second")
		gt.NoError(t, err).Required()
		_, err = uc.Entry.CreateEntry(ctx, model.NewUserID(), "other")
		gt.NoError(t, err).Required()

		entries, err := uc.Entry.ListEntries(ctx, owner)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2).Required()
		gt.Value(t, entries[0].ID).Equal(second.ID)
		gt.Value(t, entries[1].ID).Equal(first.ID)
	})
}

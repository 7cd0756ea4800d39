package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestNewEntryID(t *testing.T) {
	id := model.NewEntryID()
	gt.Value(t, len(id)).Equal(36)
	gt.Value(t, id).NotEqual(model.NewEntryID())
}

func TestEntry_Validate(t *testing.T) {
	t.Run("valid entry", func(t *testing.T) {
		e := &model.Entry{OwnerID: "u1", Content: "went for a walk"}
		gt.NoError(t, e.Validate())
	})

	t.Run("blank content", func(t *testing.T) {
		e := &model.Entry{OwnerID: "u1", Content: " \n\t"}
		err := e.Validate()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
	})

	t.Run("missing owner", func(t *testing.T) {
		e := &model.Entry{Content: "hello"}
		gt.Bool(t, errors.Is(e.Validate(), model.ErrValidation)).True()
	})
}

func TestEntry_Preview(t *testing.T) {
	t.Run("short content is kept as is", func(t *testing.T) {
		e := &model.Entry{Content: "short"}
		gt.Value(t, e.Preview(model.PreviewMaxLength)).Equal("short")
	})

	t.Run("long content is truncated to the limit", func(t *testing.T) {
		e := &model.Entry{Content: strings.Repeat("a", 1500)}
		gt.Value(t, len(e.Preview(model.PreviewMaxLength))).Equal(1000)
	})

	t.Run("multi-byte characters are counted as characters", func(t *testing.T) {
		e := &model.Entry{Content: strings.Repeat("日", 1200)}
		p := e.Preview(model.PreviewMaxLength)
		gt.Value(t, len([]rune(p))).Equal(1000)
		gt.String(t, p).Equal(strings.Repeat("日", 1000))
	})

	t.Run("zero limit yields empty preview", func(t *testing.T) {
		e := &model.Entry{Content: "abc"}
		gt.Value(t, e.Preview(0)).Equal("")
	})
}

func TestNewEntryVector(t *testing.T) {
	e := &model.Entry{ID: "e1", Content: strings.Repeat("x", 1200)}
	v := model.NewEntryVector(e, []float32{1, 0}, model.PreviewMaxLength)
	gt.Value(t, v.ID).Equal(model.EntryID("e1"))
	gt.Array(t, v.Values).Length(2)
	gt.Value(t, len(v.Metadata.ContentPreview)).Equal(1000)
}

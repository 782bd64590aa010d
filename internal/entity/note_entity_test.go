package entity

import (
	"testing"

	"notetaking-be/internal/apperror"
	"notetaking-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteUpdate(t *testing.T) {
	angular := &Tag{Id: 1, Name: "Angular", Slug: "angular"}
	golang := &Tag{Id: 2, Name: "Go", Slug: "go"}

	t.Run("new note skips the version check", func(t *testing.T) {
		note := &Note{}

		err := note.Update("Quinntyne Brown", "body", []*Tag{angular}, 42)

		require.NoError(t, err)
		assert.Equal(t, "Quinntyne Brown", note.Title)
		assert.Equal(t, "quinntyne-brown", note.Slug)
		assert.Equal(t, "body", note.Body)
		assert.Equal(t, 1, note.Version)
		require.Len(t, note.NoteTags, 1)
		assert.Equal(t, uint(1), note.NoteTags[0].TagId)
		assert.Same(t, note, note.NoteTags[0].Note)
	})

	t.Run("matching version increments and rebuilds tags", func(t *testing.T) {
		note := &Note{Id: 5, Title: "Old", Slug: "old", Version: 3}
		note.NoteTags = []*NoteTag{{NoteId: 5, TagId: 1, Tag: angular}}

		err := note.Update("New Title", "", []*Tag{golang}, 3)

		require.NoError(t, err)
		assert.Equal(t, 4, note.Version)
		assert.Equal(t, "new-title", note.Slug)
		require.Len(t, note.NoteTags, 1)
		assert.Equal(t, uint(2), note.NoteTags[0].TagId)
		assert.Equal(t, uint(5), note.NoteTags[0].NoteId)
		assert.Equal(t, []*Tag{golang}, note.Tags())
	})

	t.Run("stale version is rejected without changes", func(t *testing.T) {
		note := &Note{Id: 5, Title: "Old", Slug: "old", Version: 3}

		err := note.Update("New Title", "x", nil, 2)

		assert.ErrorIs(t, err, apperror.ErrConcurrency)
		assert.Equal(t, "Old", note.Title)
		assert.Equal(t, "old", note.Slug)
		assert.Equal(t, 3, note.Version)
	})
}

func TestTagUpdateSlugIsDeterministic(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Angular", want: "angular"},
		{name: "Routing", want: "routing"},
		{name: "Domain Driven Design", want: "domain-driven-design"},
		{name: "  Trim Me  ", want: "trim-me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := &Tag{}, &Tag{Id: 9}
			a.Update(tt.name)
			b.Update(tt.name)

			assert.Equal(t, tt.want, a.Slug)
			assert.Equal(t, a.Slug, b.Slug)
			assert.Equal(t, tt.name, a.Name)
		})
	}
}

func TestEntityDomainEvents(t *testing.T) {
	tag := &Tag{}
	assert.False(t, tag.HasDomainEvents())

	first := events.BaseEvent{Type: "FIRST"}
	second := events.BaseEvent{Type: "SECOND"}
	tag.RaiseDomainEvent(first)
	tag.RaiseDomainEvent(second)

	pending := tag.DomainEvents()
	require.Len(t, pending, 2)
	assert.Equal(t, "FIRST", pending[0].EventType())
	assert.Equal(t, "SECOND", pending[1].EventType())

	// the returned slice is a copy
	pending[0] = nil
	assert.Equal(t, "FIRST", tag.DomainEvents()[0].EventType())

	tag.ClearEvents()
	assert.False(t, tag.HasDomainEvents())
	assert.Empty(t, tag.DomainEvents())
}

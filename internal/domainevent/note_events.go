package domainevent

import (
	"time"

	"notetaking-be/internal/entity"
)

const (
	NoteSavedType   = "NOTE_SAVED"
	NoteRemovedType = "NOTE_REMOVED"
)

// NoteSaved is raised when a note is created or updated. The payload is read
// from the entity at publish time, after the store has assigned its id.
type NoteSaved struct {
	Note       *entity.Note
	OccurredAt time.Time
}

func NewNoteSaved(note *entity.Note) NoteSaved {
	return NoteSaved{Note: note, OccurredAt: time.Now().UTC()}
}

func (e NoteSaved) EventType() string {
	return NoteSavedType
}

func (e NoteSaved) Payload() map[string]interface{} {
	return notePayload(e.Note)
}

func (e NoteSaved) Timestamp() time.Time {
	return e.OccurredAt
}

type NoteRemoved struct {
	Note       *entity.Note
	OccurredAt time.Time
}

func NewNoteRemoved(note *entity.Note) NoteRemoved {
	return NoteRemoved{Note: note, OccurredAt: time.Now().UTC()}
}

func (e NoteRemoved) EventType() string {
	return NoteRemovedType
}

func (e NoteRemoved) Payload() map[string]interface{} {
	return notePayload(e.Note)
}

func (e NoteRemoved) Timestamp() time.Time {
	return e.OccurredAt
}

func notePayload(note *entity.Note) map[string]interface{} {
	tagIds := make([]uint, 0, len(note.NoteTags))
	for _, nt := range note.NoteTags {
		tagIds = append(tagIds, nt.TagId)
	}
	return map[string]interface{}{
		"note_id": note.Id,
		"title":   note.Title,
		"slug":    note.Slug,
		"version": note.Version,
		"tag_ids": tagIds,
	}
}

package domainevent

import (
	"time"

	"notetaking-be/internal/entity"
)

const (
	TagSavedType   = "TAG_SAVED"
	TagRemovedType = "TAG_REMOVED"
)

type TagSaved struct {
	Tag        *entity.Tag
	OccurredAt time.Time
}

func NewTagSaved(tag *entity.Tag) TagSaved {
	return TagSaved{Tag: tag, OccurredAt: time.Now().UTC()}
}

func (e TagSaved) EventType() string {
	return TagSavedType
}

func (e TagSaved) Payload() map[string]interface{} {
	return tagPayload(e.Tag)
}

func (e TagSaved) Timestamp() time.Time {
	return e.OccurredAt
}

type TagRemoved struct {
	Tag        *entity.Tag
	OccurredAt time.Time
}

func NewTagRemoved(tag *entity.Tag) TagRemoved {
	return TagRemoved{Tag: tag, OccurredAt: time.Now().UTC()}
}

func (e TagRemoved) EventType() string {
	return TagRemovedType
}

func (e TagRemoved) Payload() map[string]interface{} {
	return tagPayload(e.Tag)
}

func (e TagRemoved) Timestamp() time.Time {
	return e.OccurredAt
}

func tagPayload(tag *entity.Tag) map[string]interface{} {
	return map[string]interface{}{
		"tag_id": tag.Id,
		"name":   tag.Name,
		"slug":   tag.Slug,
	}
}

// Types lists every domain event type, in the order subscribers are usually wired.
func Types() []string {
	return []string{NoteSavedType, NoteRemovedType, TagSavedType, TagRemovedType}
}

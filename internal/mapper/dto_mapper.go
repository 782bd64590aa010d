package mapper

import (
	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
)

// ToNoteDto maps a note for a response. withTags controls whether the
// linked tags are included; tags nested under a note never list notes.
func ToNoteDto(note *entity.Note, withTags bool) dto.NoteDto {
	out := dto.NoteDto{
		NoteId:  note.Id,
		Title:   note.Title,
		Body:    note.Body,
		Slug:    note.Slug,
		Version: note.Version,
		Tags:    []dto.TagDto{},
	}
	if withTags {
		for _, tag := range note.Tags() {
			out.Tags = append(out.Tags, ToTagDto(tag, false))
		}
	}
	return out
}

func ToTagDto(tag *entity.Tag, withNotes bool) dto.TagDto {
	id := tag.Id
	out := dto.TagDto{
		TagId: &id,
		Name:  tag.Name,
		Slug:  tag.Slug,
	}
	if withNotes {
		out.Notes = []dto.NoteDto{}
		for _, note := range tag.Notes() {
			out.Notes = append(out.Notes, ToNoteDto(note, false))
		}
	}
	return out
}

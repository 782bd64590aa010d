package mapper

import (
	"notetaking-be/internal/entity"
	"notetaking-be/internal/model"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

// ToEntity maps a note row and its preloaded links. Links whose tag was not
// loaded (soft-deleted) are dropped.
func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	note := &entity.Note{
		Entity: entity.Entity{
			CreatedOn:      n.CreatedOn,
			LastModifiedOn: n.LastModifiedOn,
			IsDeleted:      n.IsDeleted,
		},
		Id:      n.Id,
		Title:   n.Title,
		Slug:    n.Slug,
		Body:    n.Body,
		Version: n.Version,
	}

	tagMapper := NewTagMapper()
	note.NoteTags = make([]*entity.NoteTag, 0, len(n.NoteTags))
	for _, nt := range n.NoteTags {
		if nt.Tag == nil {
			continue
		}
		note.NoteTags = append(note.NoteTags, &entity.NoteTag{
			NoteId: nt.NoteId,
			TagId:  nt.TagId,
			Note:   note,
			Tag:    tagMapper.ToEntity(nt.Tag),
		})
	}
	return note
}

// ToModel maps the note row plus bare join rows; associated tags are not
// written through the note.
func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	row := &model.Note{
		Id:             n.Id,
		Title:          n.Title,
		Slug:           n.Slug,
		Body:           n.Body,
		Version:        n.Version,
		CreatedOn:      n.CreatedOn,
		LastModifiedOn: n.LastModifiedOn,
		IsDeleted:      n.IsDeleted,
	}
	for _, nt := range n.NoteTags {
		row.NoteTags = append(row.NoteTags, model.NoteTag{NoteId: n.Id, TagId: nt.TagId})
	}
	return row
}

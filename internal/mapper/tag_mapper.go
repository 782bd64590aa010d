package mapper

import (
	"notetaking-be/internal/entity"
	"notetaking-be/internal/model"
)

type TagMapper struct{}

func NewTagMapper() *TagMapper {
	return &TagMapper{}
}

func (m *TagMapper) ToEntity(t *model.Tag) *entity.Tag {
	if t == nil {
		return nil
	}

	tag := &entity.Tag{
		Entity: entity.Entity{
			CreatedOn:      t.CreatedOn,
			LastModifiedOn: t.LastModifiedOn,
			IsDeleted:      t.IsDeleted,
		},
		Id:   t.Id,
		Name: t.Name,
		Slug: t.Slug,
	}

	tag.NoteTags = make([]*entity.NoteTag, 0, len(t.NoteTags))
	for _, nt := range t.NoteTags {
		if nt.Note == nil {
			continue
		}
		note := &entity.Note{
			Entity: entity.Entity{
				CreatedOn:      nt.Note.CreatedOn,
				LastModifiedOn: nt.Note.LastModifiedOn,
				IsDeleted:      nt.Note.IsDeleted,
			},
			Id:      nt.Note.Id,
			Title:   nt.Note.Title,
			Slug:    nt.Note.Slug,
			Body:    nt.Note.Body,
			Version: nt.Note.Version,
		}
		tag.NoteTags = append(tag.NoteTags, &entity.NoteTag{
			NoteId: nt.NoteId,
			TagId:  nt.TagId,
			Note:   note,
			Tag:    tag,
		})
	}
	return tag
}

func (m *TagMapper) ToModel(t *entity.Tag) *model.Tag {
	if t == nil {
		return nil
	}
	return &model.Tag{
		Id:             t.Id,
		Name:           t.Name,
		Slug:           t.Slug,
		CreatedOn:      t.CreatedOn,
		LastModifiedOn: t.LastModifiedOn,
		IsDeleted:      t.IsDeleted,
	}
}

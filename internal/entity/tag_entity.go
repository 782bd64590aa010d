package entity

import "github.com/gosimple/slug"

type Tag struct {
	Entity
	Id       uint
	Name     string
	Slug     string
	NoteTags []*NoteTag
}

// Update renames the tag; the slug always follows the name.
func (t *Tag) Update(name string) {
	t.Name = name
	t.Slug = slug.Make(name)
}

// Notes returns the notes linked to the tag.
func (t *Tag) Notes() []*Note {
	notes := make([]*Note, 0, len(t.NoteTags))
	for _, nt := range t.NoteTags {
		if nt.Note != nil {
			notes = append(notes, nt.Note)
		}
	}
	return notes
}

// NoteTag links a note to a tag. The pair (TagId, NoteId) is the key.
type NoteTag struct {
	NoteId uint
	TagId  uint
	Note   *Note
	Tag    *Tag
}

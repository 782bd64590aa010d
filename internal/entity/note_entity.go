package entity

import (
	"notetaking-be/internal/apperror"

	"github.com/gosimple/slug"
)

type Note struct {
	Entity
	Id       uint
	Title    string
	Slug     string
	Body     string
	Version  int
	NoteTags []*NoteTag
}

// Update applies an edit. For a persisted note the caller's version must match
// the one that was read; a new note (Id == 0) skips the check.
func (n *Note) Update(title, body string, tags []*Tag, version int) error {
	if n.Id != 0 && version != n.Version {
		return apperror.ErrConcurrency
	}

	n.Body = body
	n.Title = title
	n.Slug = slug.Make(title)
	n.Version++

	n.NoteTags = make([]*NoteTag, 0, len(tags))
	for _, tag := range tags {
		n.NoteTags = append(n.NoteTags, &NoteTag{
			NoteId: n.Id,
			TagId:  tag.Id,
			Tag:    tag,
			Note:   n,
		})
	}
	return nil
}

// Tags returns the tags linked to the note.
func (n *Note) Tags() []*Tag {
	tags := make([]*Tag, 0, len(n.NoteTags))
	for _, nt := range n.NoteTags {
		if nt.Tag != nil {
			tags = append(tags, nt.Tag)
		}
	}
	return tags
}

package implementation

import (
	"fmt"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/mapper"
	"notetaking-be/internal/model"
	"notetaking-be/internal/repository/tracking"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notePersister struct {
	mapper *mapper.NoteMapper
}

func NewNotePersister() tracking.Persister {
	return &notePersister{mapper: mapper.NewNoteMapper()}
}

func (p *notePersister) Table() string {
	return model.Note{}.TableName()
}

func (p *notePersister) Key(e tracking.Trackable) (interface{}, bool) {
	note := e.(*entity.Note)
	return note.Id, note.Id != 0
}

func (p *notePersister) Snapshot(e tracking.Trackable) interface{} {
	return p.mapper.ToModel(e.(*entity.Note))
}

func (p *notePersister) Insert(tx *gorm.DB, e tracking.Trackable) (int64, func(), error) {
	note := e.(*entity.Note)
	m := p.mapper.ToModel(note)
	links := m.NoteTags
	m.NoteTags = nil

	res := tx.Omit(clause.Associations).Create(m)
	if res.Error != nil {
		return 0, nil, fmt.Errorf("insert note: %w", res.Error)
	}
	rows := res.RowsAffected

	linked, err := insertNoteTags(tx, m.Id, links)
	if err != nil {
		return 0, nil, err
	}

	assign := func() {
		note.Id = m.Id
		for _, nt := range note.NoteTags {
			nt.NoteId = m.Id
		}
	}
	return rows + linked, assign, nil
}

// Update writes the note only if the stored version still equals the one
// that was read. Join rows are rewritten when the tag set changed.
func (p *notePersister) Update(tx *gorm.DB, e tracking.Trackable, original interface{}) (int64, error) {
	note := e.(*entity.Note)
	orig := original.(*model.Note)
	m := p.mapper.ToModel(note)

	res := tx.Model(&model.Note{}).
		Where("id = ? AND version = ?", m.Id, orig.Version).
		Updates(map[string]interface{}{
			"title":            m.Title,
			"slug":             m.Slug,
			"body":             m.Body,
			"version":          m.Version,
			"created_on":       m.CreatedOn,
			"last_modified_on": m.LastModifiedOn,
			"is_deleted":       m.IsDeleted,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update note %d: %w", m.Id, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("note %d at version %d: %w", m.Id, orig.Version, apperror.ErrConcurrency)
	}
	rows := res.RowsAffected

	if sameIds(tagIds(orig.NoteTags), tagIds(m.NoteTags)) {
		return rows, nil
	}

	del := tx.Where("note_id = ?", m.Id).Delete(&model.NoteTag{})
	if del.Error != nil {
		return 0, fmt.Errorf("unlink tags of note %d: %w", m.Id, del.Error)
	}
	linked, err := insertNoteTags(tx, m.Id, m.NoteTags)
	if err != nil {
		return 0, err
	}
	return rows + del.RowsAffected + linked, nil
}

func insertNoteTags(tx *gorm.DB, noteId uint, links []model.NoteTag) (int64, error) {
	if len(links) == 0 {
		return 0, nil
	}
	rows := make([]model.NoteTag, 0, len(links))
	for _, l := range links {
		rows = append(rows, model.NoteTag{NoteId: noteId, TagId: l.TagId})
	}
	res := tx.Omit(clause.Associations).Create(&rows)
	if res.Error != nil {
		return 0, fmt.Errorf("link tags to note %d: %w", noteId, res.Error)
	}
	return res.RowsAffected, nil
}

func tagIds(links []model.NoteTag) []uint {
	ids := make([]uint, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.TagId)
	}
	return ids
}

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

type tagPersister struct {
	mapper *mapper.TagMapper
}

func NewTagPersister() tracking.Persister {
	return &tagPersister{mapper: mapper.NewTagMapper()}
}

func (p *tagPersister) Table() string {
	return model.Tag{}.TableName()
}

func (p *tagPersister) Key(e tracking.Trackable) (interface{}, bool) {
	tag := e.(*entity.Tag)
	return tag.Id, tag.Id != 0
}

func (p *tagPersister) Snapshot(e tracking.Trackable) interface{} {
	return p.mapper.ToModel(e.(*entity.Tag))
}

func (p *tagPersister) Insert(tx *gorm.DB, e tracking.Trackable) (int64, func(), error) {
	tag := e.(*entity.Tag)
	m := p.mapper.ToModel(tag)

	res := tx.Omit(clause.Associations).Create(m)
	if res.Error != nil {
		return 0, nil, fmt.Errorf("insert tag: %w", res.Error)
	}
	return res.RowsAffected, func() { tag.Id = m.Id }, nil
}

// Update is last-write-wins.
func (p *tagPersister) Update(tx *gorm.DB, e tracking.Trackable, _ interface{}) (int64, error) {
	m := p.mapper.ToModel(e.(*entity.Tag))

	res := tx.Model(&model.Tag{}).
		Where("id = ?", m.Id).
		Updates(map[string]interface{}{
			"name":             m.Name,
			"slug":             m.Slug,
			"created_on":       m.CreatedOn,
			"last_modified_on": m.LastModifiedOn,
			"is_deleted":       m.IsDeleted,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update tag %d: %w", m.Id, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("tag %d vanished: %w", m.Id, apperror.ErrConcurrency)
	}
	return res.RowsAffected, nil
}

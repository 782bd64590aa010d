package service

import (
	"context"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/domainevent"
	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/mapper"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/validation"
	"notetaking-be/internal/repository/scope"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"
)

type INoteService interface {
	Save(ctx context.Context, req *dto.SaveNoteRequest) (*dto.SaveNoteResponse, error)
	Remove(ctx context.Context, req *dto.RemoveNoteRequest) error
	GetById(ctx context.Context, req *dto.GetNoteByIdRequest) (*dto.GetNoteResponse, error)
	GetBySlug(ctx context.Context, req *dto.GetNoteBySlugRequest) (*dto.GetNoteResponse, error)
	List(ctx context.Context) (*dto.ListNotesResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *noteService) Save(ctx context.Context, req *dto.SaveNoteRequest) (*dto.SaveNoteResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	tags, err := loadTags(ctx, uow, req.Note.Tags)
	if err != nil {
		return nil, err
	}

	var note *entity.Note
	if req.Note.NoteId == 0 {
		note = &entity.Note{}
		uow.Notes().Add(note)
	} else {
		note, err = uow.Notes().FindOne(ctx, specification.ByID{ID: req.Note.NoteId})
		if err != nil {
			return nil, err
		}
		if note == nil {
			return nil, apperror.NotFound("note", req.Note.NoteId)
		}
	}

	if err := note.Update(req.Note.Title, req.Note.Body, tags, req.Note.Version); err != nil {
		return nil, err
	}
	note.RaiseDomainEvent(domainevent.NewNoteSaved(note))

	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("NOTE", "Note saved", map[string]interface{}{
		"note_id": note.Id,
		"version": note.Version,
	})

	return &dto.SaveNoteResponse{NoteId: note.Id}, nil
}

// loadTags resolves the referenced tags; an unknown or removed id is NotFound.
func loadTags(ctx context.Context, uow unitofwork.UnitOfWork, refs []dto.TagDto) ([]*entity.Tag, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(refs))
	seen := make(map[uint]bool, len(refs))
	for _, ref := range refs {
		var id uint
		if ref.TagId != nil {
			id = *ref.TagId
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	found, err := uow.Tags().FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	byId := make(map[uint]*entity.Tag, len(found))
	for _, tag := range found {
		byId[tag.Id] = tag
	}

	tags := make([]*entity.Tag, 0, len(ids))
	for _, id := range ids {
		tag, ok := byId[id]
		if !ok {
			return nil, apperror.NotFound("tag", id)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *noteService) Remove(ctx context.Context, req *dto.RemoveNoteRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.Notes().FindOne(ctx, specification.ByID{ID: req.NoteId})
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound("note", req.NoteId)
	}

	uow.Notes().Remove(note)
	note.RaiseDomainEvent(domainevent.NewNoteRemoved(note))

	if _, err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("NOTE", "Note removed", map[string]interface{}{
		"note_id": note.Id,
	})
	return nil
}

func (s *noteService) GetById(ctx context.Context, req *dto.GetNoteByIdRequest) (*dto.GetNoteResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.Notes().FindOne(ctx, specification.ByID{ID: req.NoteId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note", req.NoteId)
	}

	return &dto.GetNoteResponse{Note: mapper.ToNoteDto(note, true)}, nil
}

func (s *noteService) GetBySlug(ctx context.Context, req *dto.GetNoteBySlugRequest) (*dto.GetNoteResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.Notes().FindSingle(ctx, specification.BySlug{Slug: req.Slug})
	if err != nil {
		return nil, err
	}

	return &dto.GetNoteResponse{Note: mapper.ToNoteDto(note, true)}, nil
}

func (s *noteService) List(ctx context.Context) (*dto.ListNotesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.Notes().FindAll(ctx, specification.Scoped(scope.OrderByIdAsc))
	if err != nil {
		return nil, err
	}

	res := &dto.ListNotesResponse{Notes: make([]dto.NoteDto, 0, len(notes))}
	for _, note := range notes {
		res.Notes = append(res.Notes, mapper.ToNoteDto(note, true))
	}
	return res, nil
}

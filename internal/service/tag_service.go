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

type ITagService interface {
	Save(ctx context.Context, req *dto.SaveTagRequest) (*dto.SaveTagResponse, error)
	Remove(ctx context.Context, req *dto.RemoveTagRequest) error
	GetById(ctx context.Context, req *dto.GetTagByIdRequest) (*dto.GetTagResponse, error)
	GetBySlug(ctx context.Context, req *dto.GetTagBySlugRequest) (*dto.GetTagResponse, error)
	List(ctx context.Context) (*dto.ListTagsResponse, error)
}

type tagService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewTagService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ITagService {
	return &tagService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *tagService) Save(ctx context.Context, req *dto.SaveTagRequest) (*dto.SaveTagResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var tag *entity.Tag
	if id := *req.Tag.TagId; id == 0 {
		tag = &entity.Tag{}
		uow.Tags().Add(tag)
	} else {
		found, err := uow.Tags().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, apperror.NotFound("tag", id)
		}
		tag = found
	}

	tag.Update(req.Tag.Name)
	tag.RaiseDomainEvent(domainevent.NewTagSaved(tag))

	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("TAG", "Tag saved", map[string]interface{}{
		"tag_id": tag.Id,
		"slug":   tag.Slug,
	})

	return &dto.SaveTagResponse{TagId: tag.Id}, nil
}

func (s *tagService) Remove(ctx context.Context, req *dto.RemoveTagRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tag, err := uow.Tags().FindOne(ctx, specification.ByID{ID: req.TagId})
	if err != nil {
		return err
	}
	if tag == nil {
		return apperror.NotFound("tag", req.TagId)
	}

	uow.Tags().Remove(tag)
	tag.RaiseDomainEvent(domainevent.NewTagRemoved(tag))

	if _, err := uow.SaveChanges(ctx); err != nil {
		return err
	}

	s.logger.Info("TAG", "Tag removed", map[string]interface{}{
		"tag_id": tag.Id,
	})
	return nil
}

func (s *tagService) GetById(ctx context.Context, req *dto.GetTagByIdRequest) (*dto.GetTagResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tag, err := uow.Tags().FindOne(ctx, specification.ByID{ID: req.TagId})
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.NotFound("tag", req.TagId)
	}

	return &dto.GetTagResponse{Tag: mapper.ToTagDto(tag, true)}, nil
}

func (s *tagService) GetBySlug(ctx context.Context, req *dto.GetTagBySlugRequest) (*dto.GetTagResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	tag, err := uow.Tags().FindSingle(ctx, specification.BySlug{Slug: req.Slug})
	if err != nil {
		return nil, err
	}

	return &dto.GetTagResponse{Tag: mapper.ToTagDto(tag, true)}, nil
}

func (s *tagService) List(ctx context.Context) (*dto.ListTagsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tags, err := uow.Tags().FindAll(ctx, specification.Scoped(scope.OrderByIdAsc))
	if err != nil {
		return nil, err
	}

	res := &dto.ListTagsResponse{Tags: make([]dto.TagDto, 0, len(tags))}
	for _, tag := range tags {
		res.Tags = append(res.Tags, mapper.ToTagDto(tag, false))
	}
	return res, nil
}

package seed

import (
	"context"
	"fmt"

	"notetaking-be/internal/domainevent"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"
)

// DefaultTags are created on an empty database.
var DefaultTags = []string{"Angular", "Routing", "Go", "Testing"}

type Options struct {
	Username string
	Password string
	Tags     []string
}

type Result struct {
	UsersCreated int
	TagsCreated  int
	RowsAffected int64
}

type Seeder struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSeeder(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) *Seeder {
	return &Seeder{uowFactory: uowFactory, logger: logger}
}

// Seed inserts the default user and tags that are not present yet. Running it
// twice changes nothing.
func (s *Seeder) Seed(ctx context.Context, opts Options) (*Result, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	res := &Result{}

	if opts.Username != "" {
		existing, err := uow.Users().FindOne(ctx, specification.ByUsername{Username: opts.Username})
		if err != nil {
			return nil, fmt.Errorf("seed user lookup: %w", err)
		}
		if existing == nil {
			user := &entity.User{Username: opts.Username}
			if err := user.SetPassword(opts.Password); err != nil {
				return nil, fmt.Errorf("seed user password: %w", err)
			}
			uow.Users().Add(user)
			res.UsersCreated++
		}
	}

	tags := opts.Tags
	if tags == nil {
		tags = DefaultTags
	}
	for _, name := range tags {
		existing, err := uow.Tags().FindOne(ctx, specification.ByName{Name: name})
		if err != nil {
			return nil, fmt.Errorf("seed tag lookup: %w", err)
		}
		if existing != nil {
			continue
		}
		tag := &entity.Tag{}
		tag.Update(name)
		tag.RaiseDomainEvent(domainevent.NewTagSaved(tag))
		uow.Tags().Add(tag)
		res.TagsCreated++
	}

	affected, err := uow.SaveChanges(ctx)
	if err != nil {
		return nil, err
	}
	res.RowsAffected = affected

	s.logger.Info("SEED", "Seed completed", map[string]interface{}{
		"users_created": res.UsersCreated,
		"tags_created":  res.TagsCreated,
	})
	return res, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"notetaking-be/internal/apperror"
	"notetaking-be/internal/dto"
	"notetaking-be/internal/entity"
	"notetaking-be/internal/pkg/logger"
	"notetaking-be/internal/pkg/validation"
	"notetaking-be/internal/repository/memory"
	"notetaking-be/internal/repository/specification"
	"notetaking-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAuthService interface {
	Authenticate(ctx context.Context, req *dto.AuthenticateRequest) (*dto.AuthenticateResponse, error)
	SignOut(ctx context.Context, req *dto.SignOutRequest) error
	ValidateSession(ctx context.Context, sessionId uuid.UUID) (*entity.Session, error)
	// VerifyToken checks the signature and expiry of an access token and
	// that its session is still active.
	VerifyToken(ctx context.Context, token string) (*entity.Session, error)
}

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	UserId    uint   `json:"user_id"`
	SessionId string `json:"session_id"`
	jwt.RegisteredClaims
}

type AuthOptions struct {
	Secret        string
	TokenLifetime time.Duration
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	sessions   *memory.SessionCache
	opts       AuthOptions
	logger     logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions *memory.SessionCache,
	opts AuthOptions,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory: uowFactory,
		sessions:   sessions,
		opts:       opts,
		logger:     logger,
	}
}

func (s *authService) Authenticate(ctx context.Context, req *dto.AuthenticateRequest) (*dto.AuthenticateResponse, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.Users().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(req.Password) {
		s.logger.Warn("AUTH", "Failed login attempt", map[string]interface{}{
			"username": req.Username,
		})
		return nil, apperror.ErrInvalidCredentials
	}

	session := &entity.Session{
		Id:       uuid.New(),
		UserId:   user.Id,
		Username: user.Username,
		Status:   entity.SessionStatusActive,
	}
	token, err := s.signToken(session)
	if err != nil {
		return nil, err
	}
	session.AccessToken = token
	uow.Sessions().Add(session)

	if _, err := uow.SaveChanges(ctx); err != nil {
		return nil, err
	}
	s.sessions.Save(session)

	s.logger.Info("AUTH", "User authenticated", map[string]interface{}{
		"user_id":    user.Id,
		"session_id": session.Id.String(),
	})

	return &dto.AuthenticateResponse{
		AccessToken: token,
		SessionId:   session.Id,
		UserId:      user.Id,
	}, nil
}

func (s *authService) signToken(session *entity.Session) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserId:    session.UserId,
		SessionId: session.Id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.opts.TokenLifetime)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.Secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *authService) SignOut(ctx context.Context, req *dto.SignOutRequest) error {
	if err := validation.Validate(req); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.Sessions().FindOne(ctx, specification.BySessionID{ID: req.SessionId})
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NotFound("session", req.SessionId)
	}

	session.Status = entity.SessionStatusInactive
	if _, err := uow.SaveChanges(ctx); err != nil {
		return err
	}
	s.sessions.Delete(session.Id)
	return nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionId uuid.UUID) (*entity.Session, error) {
	if cached, ok := s.sessions.Get(sessionId); ok && cached.IsActive() {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.Sessions().FindOne(ctx, specification.BySessionID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || !session.IsActive() {
		return nil, apperror.ErrUnauthorized
	}

	s.sessions.Save(session)
	return session, nil
}

func (s *authService) VerifyToken(ctx context.Context, token string) (*entity.Session, error) {
	var claims AccessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", errors.Join(apperror.ErrUnauthorized, err))
	}

	sessionId, err := uuid.Parse(claims.SessionId)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.ValidateSession(ctx, sessionId)
}

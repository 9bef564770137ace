package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oteixeira-dev/cadastro-api/internal/domain/apperr"
	"github.com/oteixeira-dev/cadastro-api/internal/domain/entity"
	repo "github.com/oteixeira-dev/cadastro-api/internal/domain/repository"
	"github.com/oteixeira-dev/cadastro-api/pkg/helpers"
)

// Service orchestrates the user store, the password hasher, and the token
// manager. It holds no per-request state: every operation re-fetches from
// the store.
type Service struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *Service {
	return &Service{Repo: repo, JWT: jwt, Logger: logger}
}

// CreateUserInput carries the plaintext password; it is hashed before the
// record ever reaches the store.
type CreateUserInput struct {
	Nome         string
	Email        string
	CPF          string
	TipoCadastro string
	Senha        string
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if in.Nome == "" || in.Email == "" || in.CPF == "" || in.TipoCadastro == "" || in.Senha == "" {
		return nil, apperr.ErrValidation
	}
	hash, err := helpers.HashPassword(in.Senha)
	if err != nil {
		s.Logger.WithError(err).Error("password hashing failed")
		return nil, err
	}
	u, err := s.Repo.Create(ctx, &entity.User{
		Nome:         in.Nome,
		Email:        in.Email,
		CPF:          in.CPF,
		TipoCadastro: in.TipoCadastro,
		Senha:        hash,
	})
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user created")
	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// UpdateUserInput is a partial update: empty fields keep their stored
// values, a supplied Senha is re-hashed.
type UpdateUserInput struct {
	Nome         string
	Email        string
	CPF          string
	TipoCadastro string
	Senha        string
}

func (s *Service) UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Nome != "" {
		u.Nome = in.Nome
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.CPF != "" {
		u.CPF = in.CPF
	}
	if in.TipoCadastro != "" {
		u.TipoCadastro = in.TipoCadastro
	}
	if in.Senha != "" {
		hash, err := helpers.HashPassword(in.Senha)
		if err != nil {
			s.Logger.WithError(err).Error("password hashing failed")
			return nil, err
		}
		u.Senha = hash
	}
	updated, err := s.Repo.Update(ctx, u)
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", updated.ID).Info("user updated")
	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.Logger.WithField("user_id", id).Info("user deleted")
	return nil
}

// Login validates email and password and issues a bearer token. Unknown
// email and wrong password collapse into the same error on purpose.
func (s *Service) Login(ctx context.Context, email, senha string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", time.Time{}, apperr.ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Senha, senha) {
		return "", time.Time{}, apperr.ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("token generation failed")
		return "", time.Time{}, err
	}
	return token, exp, nil
}

package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oteixeira-dev/cadastro-api/internal/domain/apperr"
	"github.com/oteixeira-dev/cadastro-api/internal/domain/entity"
	"github.com/oteixeira-dev/cadastro-api/pkg/helpers"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

type mockUserRepository struct {
	createFunc     func(ctx context.Context, u *entity.User) (*entity.User, error)
	getByIDFunc    func(ctx context.Context, id int64) (*entity.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	listFunc       func(ctx context.Context) ([]entity.User, error)
	updateFunc     func(ctx context.Context, u *entity.User) (*entity.User, error)
	deleteFunc     func(ctx context.Context, id int64) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, u)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func newTestService(t *testing.T, repo *mockUserRepository) *Service {
	t.Helper()
	jwtm, err := helpers.NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(repo, jwtm, logger)
}

func validInput() CreateUserInput {
	return CreateUserInput{
		Nome:         "Amanda",
		Email:        "amanda@gmail.com",
		CPF:          "12345678901",
		TipoCadastro: "Tipo1",
		Senha:        "password123",
	}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	var stored *entity.User
	repo := &mockUserRepository{
		createFunc: func(_ context.Context, u *entity.User) (*entity.User, error) {
			stored = u
			created := *u
			created.ID = 1
			return &created, nil
		},
	}
	svc := newTestService(t, repo)

	u, err := svc.CreateUser(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "Amanda", u.Nome)

	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.Senha)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Senha), []byte("password123")))
}

func TestCreateUser_MissingFields(t *testing.T) {
	svc := newTestService(t, &mockUserRepository{})

	tests := []struct {
		name   string
		mutate func(*CreateUserInput)
	}{
		{"missing nome", func(in *CreateUserInput) { in.Nome = "" }},
		{"missing email", func(in *CreateUserInput) { in.Email = "" }},
		{"missing cpf", func(in *CreateUserInput) { in.CPF = "" }},
		{"missing tipo", func(in *CreateUserInput) { in.TipoCadastro = "" }},
		{"missing senha", func(in *CreateUserInput) { in.Senha = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.CreateUser(context.Background(), in)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestCreateUser_DuplicatePassesThrough(t *testing.T) {
	repo := &mockUserRepository{
		createFunc: func(_ context.Context, _ *entity.User) (*entity.User, error) {
			return nil, apperr.ErrDuplicateEmail
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.CreateUser(context.Background(), validInput())
	assert.ErrorIs(t, err, apperr.ErrDuplicateEmail)
}

func TestUpdateUser_PartialKeepsStoredFields(t *testing.T) {
	existing := entity.User{ID: 1, Nome: "Amanda", Email: "amanda@gmail.com", CPF: "12345678901", TipoCadastro: "Tipo1", Senha: "stored-hash"}
	repo := &mockUserRepository{
		getByIDFunc: func(_ context.Context, id int64) (*entity.User, error) {
			u := existing
			return &u, nil
		},
		updateFunc: func(_ context.Context, u *entity.User) (*entity.User, error) {
			out := *u
			return &out, nil
		},
	}
	svc := newTestService(t, repo)

	u, err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{Nome: "Amanda Souza"})
	require.NoError(t, err)
	assert.Equal(t, "Amanda Souza", u.Nome)
	assert.Equal(t, existing.Email, u.Email)
	assert.Equal(t, existing.CPF, u.CPF)
	assert.Equal(t, existing.Senha, u.Senha, "password hash must be untouched when senha is absent")
}

func TestUpdateUser_RehashesSuppliedPassword(t *testing.T) {
	existing := entity.User{ID: 1, Nome: "Amanda", Email: "amanda@gmail.com", CPF: "12345678901", TipoCadastro: "Tipo1", Senha: "stored-hash"}
	repo := &mockUserRepository{
		getByIDFunc: func(_ context.Context, id int64) (*entity.User, error) {
			u := existing
			return &u, nil
		},
		updateFunc: func(_ context.Context, u *entity.User) (*entity.User, error) {
			out := *u
			return &out, nil
		},
	}
	svc := newTestService(t, repo)

	u, err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{Senha: "newpassword1"})
	require.NoError(t, err)
	assert.NotEqual(t, "stored-hash", u.Senha)
	assert.NotEqual(t, "newpassword1", u.Senha)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Senha), []byte("newpassword1")))
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo := &mockUserRepository{
		getByIDFunc: func(_ context.Context, _ int64) (*entity.User, error) {
			return nil, apperr.ErrUserNotFound
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.UpdateUser(context.Background(), 99, UpdateUserInput{Nome: "x"})
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	deleted := map[int64]bool{1: false}
	repo := &mockUserRepository{
		deleteFunc: func(_ context.Context, id int64) error {
			if done, ok := deleted[id]; !ok || done {
				return apperr.ErrUserNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	svc := newTestService(t, repo)

	require.NoError(t, svc.DeleteUser(context.Background(), 1))
	// second delete is not idempotent-success
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 1), apperr.ErrUserNotFound)
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	repo := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
			if email != "amanda@gmail.com" {
				return nil, apperr.ErrUserNotFound
			}
			return &entity.User{ID: 42, Email: email, Senha: hash}, nil
		},
	}
	svc := newTestService(t, repo)

	token, exp, err := svc.Login(context.Background(), "amanda@gmail.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "amanda@gmail.com", claims.Email)
}

func TestLogin_FailureIsUndifferentiated(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	repo := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, email string) (*entity.User, error) {
			if email != "amanda@gmail.com" {
				return nil, apperr.ErrUserNotFound
			}
			return &entity.User{ID: 42, Email: email, Senha: hash}, nil
		},
	}
	svc := newTestService(t, repo)

	_, _, wrongPassword := svc.Login(context.Background(), "amanda@gmail.com", "wrong-password")
	_, _, unknownEmail := svc.Login(context.Background(), "nobody@gmail.com", "password123")

	assert.ErrorIs(t, wrongPassword, apperr.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, apperr.ErrInvalidCredentials)
	// the caller must not be able to tell which case occurred
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestGetUser_NotFound(t *testing.T) {
	repo := &mockUserRepository{
		getByIDFunc: func(_ context.Context, _ int64) (*entity.User, error) {
			return nil, apperr.ErrUserNotFound
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.GetUser(context.Background(), 123)
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	repo := &mockUserRepository{
		listFunc: func(_ context.Context) ([]entity.User, error) {
			return []entity.User{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := newTestService(t, repo)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oteixeira-dev/cadastro-api/internal/domain/apperr"
	"github.com/oteixeira-dev/cadastro-api/internal/domain/entity"
	"github.com/oteixeira-dev/cadastro-api/internal/domain/repository"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. Tests satisfy
// it with a pgxmock pool.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepository struct {
	pool PgxPool
}

func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = "id, nome, email, cpf, tipo_cadastro, senha"

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (nome, email, cpf, tipo_cadastro, senha)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, u.Nome, u.Email, u.CPF, u.TipoCadastro, u.Senha)

	created := &entity.User{}
	if err := scanUser(row, created); err != nil {
		return nil, mapPgError(err)
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	u := &entity.User{}
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	u := &entity.User{}
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entity.User, 0)
	for rows.Next() {
		var u entity.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET nome = $2, email = $3, cpf = $4, tipo_cadastro = $5, senha = $6
		WHERE id = $1
		RETURNING `+userColumns+`
	`, u.ID, u.Nome, u.Email, u.CPF, u.TipoCadastro, u.Senha)

	updated := &entity.User{}
	if err := scanUser(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, mapPgError(err)
	}
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.Nome, &u.Email, &u.CPF, &u.TipoCadastro, &u.Senha)
}

// mapPgError translates constraint violations raised by Postgres into the
// application taxonomy. Uniqueness is decided here, at the storage engine,
// so concurrent writers can never both succeed.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "cpf") {
				return apperr.ErrDuplicateCPF
			}
			return apperr.ErrDuplicateEmail
		case "23502": // not_null_violation
			return apperr.ErrValidation
		}
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)

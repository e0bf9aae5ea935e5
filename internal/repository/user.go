package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/model"
)

const userColumns = `id, name, email, password`

// UserRepository reads and creates rows of the users table.
type UserRepository struct {
	baseRepository
}

func NewUserRepository(db DBTX, log *zerolog.Logger) *UserRepository {
	return &UserRepository{baseRepository: newBaseRepository(db, log)}
}

// GetUserByEmail returns the user whose email matches exactly
// (case-sensitive under the database collation).
//
// No match is not an error: it returns (nil, nil).
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, "get_user_by_email", `
	SELECT `+userColumns+`
	FROM users
	WHERE email = $1`, email)
}

// GetUserByID returns the user with the given primary key, or (nil, nil).
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "get_user_by_id", `
	SELECT `+userColumns+`
	FROM users
	WHERE id = $1`, id)
}

// AddUser inserts a user and returns the stored row including its
// generated id. The password is stored exactly as given.
//
// A duplicate email surfaces as a ConstraintViolation error with code
// USER_ALREADY_EXISTS.
func (r *UserRepository) AddUser(ctx context.Context, user model.NewUser) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
	INSERT INTO users (name, email, password)
	VALUES ($1, $2, $3)
	RETURNING `+userColumns, user.Name, user.Email, user.Password)
	if err != nil {
		return nil, r.fail(ctx, err, "add_user")
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if err != nil {
		return nil, r.fail(ctx, err, "add_user")
	}

	return created, nil
}

func (r *UserRepository) getOne(ctx context.Context, operation, query string, arg any) (*model.User, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, r.fail(ctx, err, operation)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.User])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail(ctx, err, operation)
	}

	return user, nil
}

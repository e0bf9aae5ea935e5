// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch or persist
// data, abstracting SQL logic away from the service layer. Every
// method issues exactly one parameterized statement; none of them
// needs a transaction.
package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

// DBTX is the query surface the repositories need. *pgxpool.Pool,
// pgx.Tx and pgxmock pools all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// baseRepository carries the query handle and logger shared by every repository.
type baseRepository struct {
	db  DBTX
	log *zerolog.Logger
}

func newBaseRepository(db DBTX, log *zerolog.Logger) baseRepository {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return baseRepository{db: db, log: log}
}

// fail logs a failed statement and converts the driver error into an
// *errs.Error the caller can switch on. The request logger stored in ctx
// wins over the repository's own so its fields carry over.
func (r baseRepository) fail(ctx context.Context, err error, operation string) error {
	appErr := sqlerr.HandleError(err)

	log := r.log
	if ctxLog := zerolog.Ctx(ctx); ctxLog.GetLevel() != zerolog.Disabled {
		log = ctxLog
	}

	log.Error().
		Err(err).
		Str("operation", operation).
		Str("error_kind", string(kindOf(appErr))).
		Msg("query failed")

	return appErr
}

func kindOf(err error) errs.Kind {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return errs.KindQueryFailed
}

package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lightbnb/internal/errs"
)

func TestMapCode(t *testing.T) {
	tests := map[string]Code{
		"23505": UniqueViolation,
		"23503": ForeignKeyViolation,
		"23502": NotNullViolation,
		"23514": CheckViolation,
		"23P01": ExclusionViolation,
		"08006": ConnectionException,
		"08001": ConnectionException,
		"57P01": ConnectionException,
		"57014": QueryCanceled,
		"53300": InsufficientRes,
		"42P01": UndefinedTable,
		"XX000": Other,
		"":      Other,
	}

	for state, want := range tests {
		assert.Equal(t, want, MapCode(state), state)
	}
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}

func TestHandleError_Nil(t *testing.T) {
	assert.NoError(t, HandleError(nil))
}

func TestHandleError_AppErrorPassesThrough(t *testing.T) {
	original := errs.NewInvalidError("bad", nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_email_key",
	})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindConstraintViolation, appErr.Kind)
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.Code)
	assert.Equal(t, "A User with this Email already exists", appErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "email", Error: "already exists"}}, appErr.Errors)

	var sqlErr *Error
	require.ErrorAs(t, err, &sqlErr)
	assert.Equal(t, UniqueViolation, ErrCode(err))
}

func TestHandleError_ForeignKeyNamesReferencedEntity(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "reservations",
		ColumnName: "guest_id",
	})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindConstraintViolation, appErr.Kind)
	assert.Equal(t, "GUEST_NOT_FOUND", appErr.Code)
	assert.Equal(t, "The referenced Guest does not exist", appErr.Message)
}

func TestGenerateErrorCode(t *testing.T) {
	assert.Equal(t, "OWNER_NOT_FOUND", generateErrorCode("properties", "owner_id", ForeignKeyViolation))
	assert.Equal(t, "PROPERTY_NOT_FOUND", generateErrorCode("properties", "", ForeignKeyViolation))
	assert.Equal(t, "USER_ALREADY_EXISTS", generateErrorCode("users", "", UniqueViolation))
	assert.Equal(t, "RECORD_ERROR", generateErrorCode("", "", Other))
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "properties",
		ColumnName: "post_code",
	})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errs.KindConstraintViolation, appErr.Kind)
	assert.Equal(t, "PROPERTY_REQUIRED", appErr.Code)
	assert.Equal(t, "The Post Code is required", appErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "post_code", Error: "is required"}}, appErr.Errors)
}

func TestHandleError_CheckViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23514",
		TableName:  "property_reviews",
		ColumnName: "rating",
	})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PROPERTY_REVIEW_INVALID", appErr.Code)
	assert.True(t, errors.Is(err, errs.ErrConstraintViolation))
}

func TestHandleError_ConnectionClass(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "08006"})
	assert.True(t, errors.Is(err, errs.ErrConnectionFailure))
}

func TestHandleError_OtherPgError(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "42703", Message: "column does not exist"})
	assert.True(t, errors.Is(err, errs.ErrQueryFailed))
}

func TestHandleError_NoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("scan: %w", pgx.ErrNoRows))
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestHandleError_DeadlineExceeded(t *testing.T) {
	err := HandleError(context.DeadlineExceeded)
	assert.True(t, errors.Is(err, errs.ErrConnectionFailure))
}

func TestHandleError_Unknown(t *testing.T) {
	cause := errors.New("boom")
	err := HandleError(cause)

	assert.True(t, errors.Is(err, errs.ErrQueryFailed))
	assert.ErrorIs(t, err, cause)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestSingularize(t *testing.T) {
	assert.Equal(t, "property", singularize("properties"))
	assert.Equal(t, "user", singularize("users"))
	assert.Equal(t, "reservation", singularize("reservations"))
	assert.Equal(t, "property_review", singularize("property_reviews"))
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		is     error
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, ErrNotFound},
		{"wrapped not found", fmt.Errorf("tx: %w", gorm.ErrRecordNotFound), http.StatusNotFound, ErrNotFound},
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "users_username_key"`), http.StatusConflict, ErrConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: users.username"), http.StatusConflict, ErrConflict},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, ErrForeignKeyConstraint},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable, ErrDatabaseConnection},
		{"other", errors.New("syntax error"), http.StatusInternalServerError, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("find", "post", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestNewDatabaseErrorKeepsApiErr(t *testing.T) {
	inner := NewNotFound("tag")
	assert.Same(t, inner, NewDatabaseError("find", "tags", inner))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("post")))
	assert.True(t, IsNotFound(NewNotFoundError("post not found")))
	assert.True(t, IsValidationError(NewMissingRequiredFieldError("title")))
	assert.True(t, IsValidationError(NewInvalidFieldError("month", "month must be between 1 and 12")))
	assert.False(t, IsValidationError(NewUserInputError("q", "please enter a search keyword")))
	assert.True(t, IsUserInputError(NewUserInputError("q", "please enter a search keyword")))
	assert.True(t, IsMalformedPayloadError(NewMalformedPayloadError("post", errors.New("EOF"))))
	assert.True(t, IsUnauthorized(Unauthorized))
	assert.True(t, IsBadRequest(NewBadRequestError("invalid postID")))
	assert.True(t, IsMissingTokenError(NewMissingTokenError()))
	assert.True(t, IsInvalidTokenError(NewInvalidTokenError(errors.New("signature is invalid"))))
	assert.False(t, IsInvalidTokenError(NewExpiredTokenError()))
	assert.True(t, IsExpiredTokenError(NewExpiredTokenError()))
	assert.True(t, IsConflict(NewDatabaseError("create", "user", errors.New("UNIQUE constraint failed: users.username"))))
	assert.True(t, IsForeignKeyConstraintError(NewDatabaseError("create", "post", errors.New("FOREIGN KEY constraint failed"))))
	assert.True(t, IsEnvironmentVariableError(NewEnvironmentVariableError("JWT_SECRET")))
	assert.True(t, IsConfigError(NewConfigError("DATABASE_READ_DSN", errors.New("bad dsn"))))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "post not found", NewNotFound("post").Error())
	assert.Equal(t, "missing required field: title is required", NewMissingRequiredFieldError("title").Error())
	assert.Equal(t, "invalid user input: please enter a search keyword", NewUserInputError("q", "please enter a search keyword").Error())
	assert.Equal(t, "malformed request", NewBadRequestError("malformed request").Error())
}

func TestGetFullError(t *testing.T) {
	err := NewInternalErrorWithCause("render post body", NewConfigError("HIGHLIGHT_STYLE", errors.New("unknown style")))
	assert.Equal(t,
		"render post body -> configuration invalid: Configuration error for HIGHLIGHT_STYLE -> unknown style",
		err.GetFullError())
}

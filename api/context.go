package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/tutorial-blog-backend/errs"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated user ID to the context
func ctxWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user ID from the context
func ctxGetUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, errs.Unauthorized
	}
	return userID, nil
}

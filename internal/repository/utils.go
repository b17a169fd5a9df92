package repository

import (
	"context"
	"errors"

	"github.com/nexuslan/arena/internal/domain"
	"github.com/nexuslan/arena/internal/logger"
)

// RequireAdmin verifies that the acting user exists and carries the admin
// flag. Unknown actors report forbidden, not not-found.
func RequireAdmin(ctx context.Context, users User, actorID string) error {
	if actorID == "" {
		return domain.ErrForbidden
	}
	actor, err := users.GetUser(ctx, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return nil
}

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

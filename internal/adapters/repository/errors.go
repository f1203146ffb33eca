package repository

import (
	"errors"
	"fmt"

	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"go.mongodb.org/mongo-driver/mongo"
)

// storeError maps driver errors onto domain kinds. what names the entity for
// the caller-facing message.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.NotFound("%s not found", what)
	case mongo.IsDuplicateKeyError(err):
		return domain.Conflict("%s already exists", what)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

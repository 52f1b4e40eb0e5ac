package repository

import (
	"context"
	"fmt"

	"messageboard/internal/model"
)

// UnavailableMessageRepository stands in for a store whose database could not
// be reached at startup, so the process keeps serving and every store call
// fails with ErrStoreUnavailable.
type UnavailableMessageRepository struct {
	cause error
}

func NewUnavailableMessageRepository(cause error) *UnavailableMessageRepository {
	return &UnavailableMessageRepository{cause: cause}
}

func (r *UnavailableMessageRepository) err() error {
	if r.cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, r.cause)
}

func (r *UnavailableMessageRepository) ListAll(context.Context) ([]model.Message, error) {
	return nil, r.err()
}

func (r *UnavailableMessageRepository) FindByID(context.Context, string) ([]model.Message, error) {
	return nil, r.err()
}

func (r *UnavailableMessageRepository) Create(context.Context, string, string) (*model.Message, error) {
	return nil, r.err()
}

func (r *UnavailableMessageRepository) Ping(context.Context) error {
	return r.err()
}

func (r *UnavailableMessageRepository) Close() error {
	return nil
}

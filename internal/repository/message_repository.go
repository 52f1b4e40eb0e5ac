package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messageboard/internal/model"
)

// ErrStoreUnavailable is returned by every operation of a store whose
// backing database could not be reached at startup.
var ErrStoreUnavailable = errors.New("message store unavailable")

// MessageStore is the append-only message collection. Lookups that match
// nothing return an empty slice, never an error.
type MessageStore interface {
	ListAll(ctx context.Context) ([]model.Message, error)
	FindByID(ctx context.Context, id string) ([]model.Message, error)
	Create(ctx context.Context, name, text string) (*model.Message, error)
	Ping(ctx context.Context) error
	Close() error
}

type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// Migrate creates the messages table if it does not exist yet.
func (r *GormMessageRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&model.Message{}); err != nil {
		return fmt.Errorf("auto migrate messages failed: %w", err)
	}
	return nil
}

func (r *GormMessageRepository) ListAll(ctx context.Context) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

func (r *GormMessageRepository) FindByID(ctx context.Context, id string) ([]model.Message, error) {
	messages := make([]model.Message, 0, 1)
	if err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("find message failed: %w", err)
	}
	return messages, nil
}

func (r *GormMessageRepository) Create(ctx context.Context, name, text string) (*model.Message, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate message id failed: %w", err)
	}

	message := &model.Message{
		ID:        id.String(),
		Name:      name,
		Text:      text,
		CreatedAt: now(),
	}
	// A single-row INSERT is atomic in every supported engine.
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, fmt.Errorf("create message failed: %w", err)
	}
	return message, nil
}

func (r *GormMessageRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db failed: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql db failed: %w", err)
	}
	return nil
}

func (r *GormMessageRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// now is truncated to milliseconds, the coarsest precision among the
// supported engines, so a stored record reads back identical.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

package app

import (
	"context"
	"errors"
	"log/slog"

	"messageboard/internal/model"
	"messageboard/internal/repository"
)

type MessageCache interface {
	ListGeneration(ctx context.Context) (int64, error)
	BumpGeneration(ctx context.Context) error
	GetAll(ctx context.Context, generation int64) ([]model.Message, bool, error)
	SetAll(ctx context.Context, generation int64, messages []model.Message) error
	Get(ctx context.Context, id string) (*model.Message, bool, error)
	Set(ctx context.Context, message model.Message) error
}

type EventPublisher interface {
	PublishMessageCreated(ctx context.Context, msg model.Message) error
}

type StoreObserver interface {
	ObserveStoreOp(op string, err error)
}

// MessageService exposes the three board operations on top of a
// MessageStore. The cache, publisher and observer are optional.
type MessageService struct {
	store     repository.MessageStore
	cache     MessageCache
	publisher EventPublisher
	observer  StoreObserver
	log       *slog.Logger
}

func NewMessageService(
	store repository.MessageStore,
	cache MessageCache,
	publisher EventPublisher,
	observer StoreObserver,
	log *slog.Logger,
) *MessageService {
	if log == nil {
		log = slog.Default()
	}
	return &MessageService{
		store:     store,
		cache:     cache,
		publisher: publisher,
		observer:  observer,
		log:       log,
	}
}

// ListAll reads the generation before the store, so a list cached under it
// can never miss a save whose generation bump came later.
func (s *MessageService) ListAll(ctx context.Context) ([]model.Message, error) {
	generation, cacheable := s.listGeneration(ctx)
	if cacheable {
		cached, hit, err := s.cache.GetAll(ctx, generation)
		if err != nil {
			s.log.Debug("read cached message list failed", "err", err)
		} else if hit {
			return cached, nil
		}
	}

	messages, err := s.store.ListAll(ctx)
	s.observe("list", err)
	if err != nil {
		return nil, s.storeFault("list messages", err)
	}

	if cacheable {
		if setErr := s.cache.SetAll(ctx, generation, messages); setErr != nil {
			s.log.Debug("cache message list failed", "err", setErr)
		}
	}
	return messages, nil
}

// FindByID returns zero or one message. An id that matches nothing is not an
// error.
func (s *MessageService) FindByID(ctx context.Context, id string) ([]model.Message, error) {
	if s.cache != nil {
		if cached, hit, err := s.cache.Get(ctx, id); err == nil && hit {
			return []model.Message{*cached}, nil
		} else if err != nil {
			s.log.Debug("read cached message failed", "id", id, "err", err)
		}
	}

	messages, err := s.store.FindByID(ctx, id)
	s.observe("find", err)
	if err != nil {
		return nil, s.storeFault("find message", err)
	}

	if s.cache != nil && len(messages) == 1 {
		if setErr := s.cache.Set(ctx, messages[0]); setErr != nil {
			s.log.Debug("cache message failed", "id", id, "err", setErr)
		}
	}
	return messages, nil
}

// Save stores name and text exactly as given. If the list generation cannot
// be bumped afterwards, cached lists may omit the new message until they
// expire, at most the configured list TTL.
func (s *MessageService) Save(ctx context.Context, name, text string) (*model.Message, error) {
	message, err := s.store.Create(ctx, name, text)
	s.observe("create", err)
	if err != nil {
		return nil, s.storeFault("save message", err)
	}

	if s.cache != nil {
		if err := s.cache.BumpGeneration(ctx); err != nil {
			s.log.Error("bump message list generation failed, cached lists are stale until they expire", "id", message.ID, "err", err)
		}
	}
	s.announce(ctx, *message)
	return message, nil
}

// announce publishes the created event; the event worker warms the per-id
// cache from it. Without a working publisher the cache is warmed inline.
func (s *MessageService) announce(ctx context.Context, message model.Message) {
	if s.publisher != nil {
		err := s.publisher.PublishMessageCreated(ctx, message)
		if err == nil {
			return
		}
		s.log.Warn("publish message event failed", "id", message.ID, "err", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, message); err != nil {
			s.log.Debug("cache message failed", "id", message.ID, "err", err)
		}
	}
}

func (s *MessageService) listGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	generation, err := s.cache.ListGeneration(ctx)
	if err != nil {
		s.log.Debug("read message list generation failed", "err", err)
		return 0, false
	}
	return generation, true
}

func (s *MessageService) storeFault(op string, err error) *Fault {
	s.log.Error(op+" failed", "err", err)
	message := "message store rejected the operation"
	if errors.Is(err, repository.ErrStoreUnavailable) {
		message = "message store unavailable"
	}
	return newInfrastructureFault(message, err)
}

func (s *MessageService) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveStoreOp(op, err)
	}
}

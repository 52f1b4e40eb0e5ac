package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"messageboard/internal/model"
	"messageboard/internal/platform/rabbitmq"
)

// MessageCacheWriter is the part of the read cache the worker warms.
type MessageCacheWriter interface {
	Set(ctx context.Context, message model.Message) error
}

// MessageEventWorker consumes message.created events and stores each new
// message in the per-id cache, so the first lookup after a save is a hit.
type MessageEventWorker struct {
	conn      *amqp.Connection
	cache     MessageCacheWriter
	queueName string
	log       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewMessageEventWorker(conn *amqp.Connection, cache MessageCacheWriter, queueName string, log *slog.Logger) *MessageEventWorker {
	return &MessageEventWorker{
		conn:      conn,
		cache:     cache,
		queueName: queueName,
		log:       log,
	}
}

func (w *MessageEventWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.Handle(workerCtx, d.Body); err != nil {
					w.log.Warn("message event dropped", "err", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

// Handle processes one event body. Unknown event types are ignored.
func (w *MessageEventWorker) Handle(ctx context.Context, body []byte) error {
	var event model.MessageEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("decode message event failed: %w", err)
	}
	if event.Type != model.EventMessageCreated {
		w.log.Debug("ignoring message event", "type", event.Type)
		return nil
	}
	if event.Message.ID == "" {
		return fmt.Errorf("message event without id")
	}
	if err := w.cache.Set(ctx, event.Message); err != nil {
		return err
	}
	w.log.Debug("message cached from event", "id", event.Message.ID)
	return nil
}

func (w *MessageEventWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

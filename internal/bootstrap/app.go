package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"messageboard/internal/app"
	"messageboard/internal/cache"
	"messageboard/internal/config"
	"messageboard/internal/platform/metrics"
	mongoClient "messageboard/internal/platform/mongo"
	mysqlClient "messageboard/internal/platform/mysql"
	rabbitmqClient "messageboard/internal/platform/rabbitmq"
	redisClient "messageboard/internal/platform/redis"
	"messageboard/internal/repository"
	"messageboard/internal/worker"
)

type App struct {
	Config      *config.Config
	Log         *slog.Logger
	Store       repository.MessageStore
	Redis       *redis.Client
	MQConn      *amqp.Connection
	EventWorker *worker.MessageEventWorker
	Metrics     *metrics.Metrics
	Messages    *app.MessageService

	StartedAt time.Time
}

// New connects every dependency. Connection failures are logged and the
// affected component degrades: an unreachable database yields a store that
// fails each call, an unreachable Redis or RabbitMQ is simply left out.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) *App {
	a := &App{
		Config:    cfg,
		Log:       log,
		Metrics:   metrics.New("messageboard"),
		StartedAt: time.Now(),
	}

	a.Store = openStore(ctx, cfg, log)

	var messageCache *cache.MessageCache
	if cfg.Redis.Enabled {
		client, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, running without cache", "err", err)
		} else {
			a.Redis = client
			messageCache = cache.NewMessageCache(
				client,
				cfg.Redis.KeyPrefix,
				time.Duration(cfg.Redis.MessageTTLSecs)*time.Second,
				time.Duration(cfg.Redis.ListTTLSecs)*time.Second,
			)
		}
	}

	var publisher *rabbitmqClient.MessagePublisher
	if cfg.RabbitMQ.Enabled {
		conn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			log.Warn("rabbitmq unavailable, running without message events", "err", err)
		} else {
			a.MQConn = conn
			publisher = rabbitmqClient.NewMessagePublisher(conn, cfg.RabbitMQ.MessageEventQueue)
			if messageCache != nil {
				a.EventWorker = worker.NewMessageEventWorker(conn, messageCache, cfg.RabbitMQ.MessageEventQueue, log)
				if err := a.EventWorker.Start(ctx); err != nil {
					log.Warn("start message event worker failed", "err", err)
					a.EventWorker = nil
				}
			}
		}
	}

	// Optional collaborators must stay untyped nil when absent.
	var (
		svcCache     app.MessageCache
		svcPublisher app.EventPublisher
	)
	if messageCache != nil {
		svcCache = messageCache
	}
	if publisher != nil {
		svcPublisher = publisher
	}
	a.Messages = app.NewMessageService(a.Store, svcCache, svcPublisher, a.Metrics, log)

	return a
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) repository.MessageStore {
	if cfg.UsesMongo() {
		client, err := mongoClient.New(ctx, cfg.DB.ConnectionString)
		if err != nil {
			log.Error("failed to connect to MongoDB", "err", err)
			return repository.NewUnavailableMessageRepository(err)
		}
		repo := repository.NewMongoMessageRepository(client, cfg.DB.Database, cfg.DB.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn("ensure message indexes failed", "err", err)
		}
		log.Info("connected to MongoDB")
		return repo
	}

	db, err := mysqlClient.New(ctx, cfg.DB.ConnectionString, log)
	if err != nil {
		log.Error("failed to connect to MySQL", "err", err)
		return repository.NewUnavailableMessageRepository(err)
	}
	repo := repository.NewGormMessageRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Error("migrate message store failed", "err", err)
		_ = repo.Close()
		return repository.NewUnavailableMessageRepository(err)
	}
	log.Info("connected to MySQL")
	return repo
}

func (a *App) Close() error {
	var closeErr error
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	return closeErr
}

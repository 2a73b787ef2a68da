package infra

import (
	"context"
	"database/sql"
	"fmt"

	"roadside/infra/database"
	"roadside/infra/database/db_postgresql"
	"roadside/infra/logger"
	"roadside/infra/metrics"
	"roadside/internal/cancellation"
	"roadside/internal/health"
	"roadside/internal/payment"
	"roadside/internal/payment_source"
	"roadside/pkg/cache"
	"roadside/pkg/fcm"
	"roadside/pkg/paymongo"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

const dedupKeyPrefix = "paymongo:event:"

type ContainerDI struct {
	Config  Config
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	ConnDB  *sql.DB
	Redis   *redis.Client

	FcmClient      *fcm.Client
	PaymongoClient *paymongo.Client
	Deduplicator   cache.Deduplicator

	RepositoryCancellation *cancellation.Repository
	ServiceCancellation    *cancellation.Service
	HandlerCancellation    *cancellation.Handler

	RepositoryPayment *payment.Repository
	ServicePayment    *payment.Service
	HandlerPayment    *payment.Handler

	ServicePaymentSource *payment_source.Service
	HandlerPaymentSource *payment_source.Handler

	HandlerHealth *health.Handler
}

func NewContainerDI(ctx context.Context, config Config) (*ContainerDI, error) {
	container := &ContainerDI{
		Config:  config,
		Logger:  logger.New(config.ServerName, config.Environment, config.LogLevel),
		Metrics: metrics.New(),
	}

	if err := container.db(); err != nil {
		return nil, err
	}
	if err := container.buildPkg(ctx); err != nil {
		container.Close()
		return nil, err
	}
	container.buildRepository()
	container.buildService()
	container.buildHandler()
	return container, nil
}

func (c *ContainerDI) db() error {
	dbConfig := database.Config{
		Host:           c.Config.DBHost,
		Port:           c.Config.DBPort,
		User:           c.Config.DBUser,
		Password:       c.Config.DBPassword,
		Database:       c.Config.DBDatabase,
		SSLMode:        c.Config.DBSSLMode,
		Driver:         c.Config.DBDriver,
		Environment:    c.Config.Environment,
		MigrationsPath: c.Config.DBMigrationsPath,
	}

	conn, err := db_postgresql.NewConnection(&dbConfig)
	if err != nil {
		return err
	}
	c.ConnDB = conn
	return nil
}

func (c *ContainerDI) buildPkg(ctx context.Context) error {
	c.Deduplicator = cache.NoopDeduplicator{}
	if c.Config.RedisUrl != "" {
		client, err := cache.NewRedisClient(ctx, c.Config.RedisUrl)
		if err != nil {
			return err
		}
		c.Redis = client
		c.Deduplicator = cache.NewRedisDeduplicator(client, dedupKeyPrefix, c.Config.DedupTTL)
	} else {
		c.Logger.Warn().Msg("REDIS_URL not set, duplicate paymongo deliveries are not filtered")
	}

	if c.Config.FcmServiceAccountJSON != "" {
		client, err := fcm.NewClientFromServiceAccount(ctx, []byte(c.Config.FcmServiceAccountJSON))
		if err != nil {
			return fmt.Errorf("building fcm client: %w", err)
		}
		c.FcmClient = client
	} else {
		c.Logger.Warn().Msg("FCM_SERVICE_ACCOUNT_JSON not set, cancellation pushes will fail")
	}

	if c.Config.PaymongoSecretKey != "" {
		c.PaymongoClient = paymongo.NewClient(c.Config.PaymongoBaseURL, c.Config.PaymongoSecretKey)
	}

	return nil
}

func (c *ContainerDI) buildRepository() {
	c.RepositoryCancellation = cancellation.NewCancellationRepository(c.ConnDB)
	c.RepositoryPayment = payment.NewPaymentRepository(c.ConnDB)
}

func (c *ContainerDI) buildService() {
	var sender cancellation.Sender
	if c.FcmClient != nil {
		sender = c.FcmClient
	}
	c.ServiceCancellation = cancellation.NewCancellationService(c.RepositoryCancellation, sender, c.Metrics)

	verifier := paymongo.Verifier{
		Secret:    c.Config.PaymongoWebhookSecret,
		Tolerance: c.Config.PaymongoSignatureTolerance,
	}
	c.ServicePayment = payment.NewPaymentService(c.RepositoryPayment, verifier, c.Deduplicator, c.Metrics)

	var creator payment_source.SourceCreator
	if c.PaymongoClient != nil {
		creator = c.PaymongoClient
	}
	c.ServicePaymentSource = payment_source.NewPaymentSourceService(creator, c.Config.PaymentRedirectURL, c.Config.PaymentCurrency)
}

func (c *ContainerDI) buildHandler() {
	c.HandlerCancellation = cancellation.NewCancellationHandler(c.ServiceCancellation, c.Metrics)
	c.HandlerPayment = payment.NewPaymentHandler(c.ServicePayment, c.Metrics)
	c.HandlerPaymentSource = payment_source.NewPaymentSourceHandler(c.ServicePaymentSource)

	checks := map[string]health.Check{"postgres": c.ConnDB.PingContext}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	c.HandlerHealth = health.NewHealthHandler(checks)
}

func (c *ContainerDI) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("closing redis")
		}
	}
	if c.ConnDB != nil {
		if err := c.ConnDB.Close(); err != nil {
			c.Logger.Warn().Err(err).Msg("closing postgres")
		}
	}
}

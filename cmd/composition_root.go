package cmd

import (
	"log/slog"

	"courier/internal/adapters/out/postgres"
	"courier/internal/adapters/out/postgres/riderdir"
	"courier/internal/adapters/out/rabbitmq"
	"courier/internal/core/application/engine"
	"courier/internal/core/domain/services"
	"courier/internal/core/ports"
	"courier/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the engine facade.
type CompositionRoot struct {
	engine         *engine.Engine
	rabbitmqClient *rabbitmq.Client
	logger         *slog.Logger
}

// NewCompositionRoot builds the object graph. With no RabbitMQ URL
// configured the engine runs without a notifier; transitions still commit,
// only the post-commit events are skipped.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	var notifier ports.Notifier
	var rabbitmqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		rabbitmqClient = rabbitmq.NewClient(cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
		if err := rabbitmqClient.Connect(); err != nil {
			return nil, err
		}
		notifier = rabbitmq.NewNotifier(rabbitmqClient)
	}

	eng, err := engine.NewEngine(
		gormDB,
		postgres.NewGormUnitOfWorkFactory(gormDB),
		riderdir.NewGormRiderDirectory(gormDB),
		notifier,
		services.NewPricingCalculator(),
		logger,
	)
	if err != nil {
		if rabbitmqClient != nil {
			_ = rabbitmqClient.Close()
		}
		return nil, err
	}

	return &CompositionRoot{
		engine:         eng,
		rabbitmqClient: rabbitmqClient,
		logger:         logger,
	}, nil
}

// Engine returns the delivery engine facade.
func (c *CompositionRoot) Engine() *engine.Engine {
	return c.engine
}

// CreateJobManager wires the scheduled jobs to the engine.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.engine, c.logger)
}

// Close releases external connections.
func (c *CompositionRoot) Close() error {
	if c.rabbitmqClient != nil {
		return c.rabbitmqClient.Close()
	}
	return nil
}

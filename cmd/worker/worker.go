package main

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/netcreators/occupancy-audit-worker/internal/booking"
	"github.com/netcreators/occupancy-audit-worker/internal/config"
	"github.com/netcreators/occupancy-audit-worker/internal/db"
	"github.com/netcreators/occupancy-audit-worker/internal/interval"
	"github.com/netcreators/occupancy-audit-worker/internal/mq"
	"github.com/netcreators/occupancy-audit-worker/internal/reconcile"
	"github.com/netcreators/occupancy-audit-worker/internal/report"
	"github.com/netcreators/occupancy-audit-worker/internal/repository"
	"github.com/netcreators/occupancy-audit-worker/internal/service"
)

func startWorker(
	lc fx.Lifecycle,
	conn *mq.Connection,
	cfg *config.Config,
	logger *zap.Logger,
	processor *service.ProcessorService,
) (*mq.Consumer, error) {
	// Create context for consumer that will be cancelled on shutdown
	ctx, cancel := context.WithCancel(context.Background())

	consumer, err := mq.NewConsumer(mq.ConsumerConfig{
		Connection:       conn,
		Queue:            cfg.RabbitMQ.JobQueue,
		DLQQueue:         cfg.RabbitMQ.DLQQueue,
		Exchange:         cfg.RabbitMQ.JobExchange,
		RoutingKey:       cfg.RabbitMQ.JobRoutingKey,
		PrefetchCount:    cfg.RabbitMQ.PrefetchCount,
		Logger:           logger,
		MessageProcessor: processor.ProcessMessage,
	})
	if err != nil {
		cancel()
		return nil, err
	}

	// Register lifecycle hooks
	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			logger.Info("starting reconciliation worker",
				zap.String("queue", cfg.RabbitMQ.JobQueue),
				zap.Int("prefetch", cfg.RabbitMQ.PrefetchCount))
			return consumer.Start(ctx)
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			if err := consumer.Close(); err != nil {
				logger.Error("failed to close consumer", zap.Error(err))
				return err
			}
			logger.Info("worker stopped gracefully")
			return nil
		},
	})

	return consumer, nil
}

// ProvideRepository creates a new repository instance
func ProvideRepository(pool *db.Pool) *repository.Repository {
	return repository.NewRepository(pool)
}

// ProvideLedgerLoader creates the spreadsheet booking ledger loader
func ProvideLedgerLoader(cfg *config.Config, logger *zap.Logger) *booking.XLSXLoader {
	return booking.NewXLSXLoader(cfg.Analysis.Year, logger)
}

// ProvideIntervalBuilder creates a new interval builder instance
func ProvideIntervalBuilder(cfg *config.Config) *interval.Builder {
	return interval.NewBuilder(cfg.Analysis.HousekeepingThresholdMinutes)
}

// ProvideReconciler creates a new reconciler instance
func ProvideReconciler() *reconcile.Reconciler {
	return reconcile.NewReconciler()
}

// ProvideReportWriter creates a new report writer instance
func ProvideReportWriter(cfg *config.Config) *report.Writer {
	return report.NewWriter(cfg.Report.OutputDir)
}

// ProvidePublisher creates a new publisher instance
func ProvidePublisher(conn *mq.Connection, cfg *config.Config, logger *zap.Logger) (*mq.Publisher, error) {
	return mq.NewPublisher(conn, cfg.RabbitMQ.WorkerExchange, logger)
}

// ProvideProcessorService creates a new processor service instance
func ProvideProcessorService(
	repo *repository.Repository,
	ledgerLoader *booking.XLSXLoader,
	publisher *mq.Publisher,
	builder *interval.Builder,
	reconciler *reconcile.Reconciler,
	reports *report.Writer,
	cfg *config.Config,
	logger *zap.Logger,
) *service.ProcessorService {
	return service.NewProcessorService(repo, ledgerLoader, publisher, builder, reconciler, reports, cfg, logger)
}

// ProvideDBPool creates a new database pool instance
func ProvideDBPool(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*db.Pool, error) {
	return db.NewPool(lc, logger, cfg.Database.URL)
}

// ProvideMQConnection creates a new RabbitMQ connection instance
func ProvideMQConnection(lc fx.Lifecycle, logger *zap.Logger, cfg *config.Config) (*mq.Connection, error) {
	return mq.NewConnection(lc, logger, cfg.RabbitMQ.URL)
}

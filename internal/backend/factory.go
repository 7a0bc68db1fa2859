package backend

import (
	"context"
	"fmt"

	"tracker/internal/amqp"
	"tracker/internal/ident"
	applog "tracker/internal/log"
	"tracker/internal/services"
	"tracker/internal/taxonomy"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// Result contains the assembled services and a cleanup function
type Result struct {
	Tasks    *services.TaskService
	Expenses *services.ExpenseService
	Events   bool // whether change events are being published
	Cleanup  CleanupFunc
}

// Factory assembles the record services from configuration
type Factory interface {
	Create(ctx context.Context, config Config) (*Result, error)
}

// EventClient publishes change events and owns a broker connection
type EventClient interface {
	services.ChangePublisher
	Close() error
}

// Dialer opens an event client
type Dialer func(url, exchange, queue string) (EventClient, error)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
	dial   Dialer
}

// NewFactory creates a new backend factory publishing over AMQP
func NewFactory(logger *applog.Logger) *DefaultFactory {
	return NewFactoryWithDialer(logger, func(url, exchange, queue string) (EventClient, error) {
		return amqp.NewClient(url, exchange, queue, logger)
	})
}

// NewFactoryWithDialer creates a factory with a custom event client dialer
func NewFactoryWithDialer(logger *applog.Logger, dial Dialer) *DefaultFactory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
		dial:   dial,
	}
}

// Create implements Factory.Create
func (f *DefaultFactory) Create(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}

	alloc, err := ident.NewIntAllocator(config.TaskIDStrategy)
	if err != nil {
		return nil, err
	}

	tax, err := taxonomy.Load(config.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	// Change events are optional; a broker that cannot be reached only
	// disables them.
	var (
		publisher services.ChangePublisher
		client    EventClient
	)
	if config.AMQPURL != "" {
		client, err = f.dial(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without change events", "error", err)
			client = nil
		} else {
			publisher = client
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	tasks := services.NewTaskService(alloc, publisher, f.logger)
	expenses := services.NewExpenseService(services.ExpenseServiceConfig{
		PoolSize:  config.ExpenseIDPoolSize,
		Taxonomy:  tax,
		Publisher: publisher,
		Logger:    f.logger,
	})

	f.logger.InfoContext(ctx, "Initialized record services",
		"task_id_strategy", config.TaskIDStrategy,
		"expense_id_pool", config.ExpenseIDPoolSize,
		"categories", len(tax.List()),
		"events_enabled", publisher != nil)

	cleanup := func() error { return nil }
	if client != nil {
		cleanup = client.Close
	}

	return &Result{
		Tasks:    tasks,
		Expenses: expenses,
		Events:   publisher != nil,
		Cleanup:  cleanup,
	}, nil
}

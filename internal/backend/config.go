package backend

import (
	"fmt"

	"tracker/internal/config"
	"tracker/internal/ident"
)

// Config holds what the factory needs to assemble the record services
type Config struct {
	TaskIDStrategy    ident.Strategy
	ExpenseIDPoolSize int
	CategoriesFile    string

	// Change events, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	strategy, err := ident.ParseStrategy(appConfig.TaskIDStrategy)
	if err != nil {
		return Config{}, fmt.Errorf("invalid task id strategy in config: %w", err)
	}

	cfg := Config{
		TaskIDStrategy:    strategy,
		ExpenseIDPoolSize: appConfig.ExpenseIDPoolSize,
		CategoriesFile:    appConfig.CategoriesFile,
	}
	if appConfig.EventsEnabled() {
		cfg.AMQPURL = appConfig.AMQPURL
		cfg.AMQPExchange = appConfig.AMQPExchange
		cfg.AMQPQueue = appConfig.AMQPQueue
	}
	return cfg, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if _, err := ident.ParseStrategy(string(c.TaskIDStrategy)); err != nil {
		return err
	}
	if c.ExpenseIDPoolSize < 1 {
		return fmt.Errorf("expense id pool size must be at least 1, got %d", c.ExpenseIDPoolSize)
	}
	if c.AMQPURL != "" && (c.AMQPExchange == "" || c.AMQPQueue == "") {
		return fmt.Errorf("AMQP exchange and queue are required when AMQP URL is set")
	}
	return nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"tracker/internal/ident"
	"tracker/internal/log"
)

type Config struct {
	// Logging
	LogLevel string

	// Identifier allocation
	TaskIDStrategy    string
	ExpenseIDPoolSize int

	// Expenses
	CategoriesFile string
	Locale         string

	// AMQP change events (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

const maxPoolSize = 1_000_000

func Load() *Config {
	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),

		TaskIDStrategy:    getEnv("TASK_ID_STRATEGY", string(ident.StrategyCounter)),
		ExpenseIDPoolSize: getEnvInt("EXPENSE_ID_POOL_SIZE", 1000),

		CategoriesFile: getEnv("CATEGORIES_FILE", ""),
		Locale:         getEnv("LOCALE", "en"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "tracker"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "record_changes"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if _, err := ident.ParseStrategy(c.TaskIDStrategy); err != nil {
		errors = append(errors, fmt.Sprintf("invalid task id strategy '%s': must be 'counter' or 'recount'", c.TaskIDStrategy))
	}

	if c.ExpenseIDPoolSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid expense id pool size %d: must be at least 1", c.ExpenseIDPoolSize))
	} else if c.ExpenseIDPoolSize > maxPoolSize {
		errors = append(errors, fmt.Sprintf("invalid expense id pool size %d: must be at most %d", c.ExpenseIDPoolSize, maxPoolSize))
	}

	if c.CategoriesFile != "" {
		if info, err := os.Stat(c.CategoriesFile); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("categories file '%s' is a directory", c.CategoriesFile))
		}
	}

	if _, err := language.Parse(c.Locale); err != nil {
		errors = append(errors, fmt.Sprintf("invalid locale '%s': %v", c.Locale, err))
	}

	// AMQP is optional; an empty URL disables change events
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// EventsEnabled reports whether record change events should be published
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

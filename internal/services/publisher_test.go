package services

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"tracker/internal/core"
	"tracker/internal/ident"
	applog "tracker/internal/log"
	"tracker/internal/taxonomy"
)

func infoLogger() (*applog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return applog.New(applog.Config{Level: slog.LevelInfo, Output: &buf}), &buf
}

func TestUserMissesStayBelowInfo(t *testing.T) {
	ctx := context.Background()
	logger, buf := infoLogger()

	tasks := NewTaskService(ident.NewCounter(0), nil, logger)
	_, _ = tasks.Update(ctx, 9, core.TaskPatch{Title: "x"})
	_, _ = tasks.Delete(ctx, 9)
	_, _ = tasks.FilterByStatus(ctx, "archived")

	expenses := NewExpenseService(ExpenseServiceConfig{
		PoolSize: 1,
		Taxonomy: taxonomy.New([]string{"Food"}),
		Logger:   logger,
		Now:      fixedClock(),
	})
	_, _ = expenses.Create(ctx, core.ExpenseInput{Description: "a", Category: "Gadgets"})
	_, _ = expenses.FilterByCategory(ctx, "Gadgets")
	_, _ = expenses.Delete(ctx, "nope")

	assert.Empty(t, buf.String())
}

func TestPoolExhaustionIsWarned(t *testing.T) {
	ctx := context.Background()
	logger, buf := infoLogger()

	expenses := NewExpenseService(ExpenseServiceConfig{
		PoolSize: 1,
		Taxonomy: taxonomy.New(nil),
		Logger:   logger,
		Now:      fixedClock(),
	})
	_, _ = expenses.Create(ctx, core.ExpenseInput{Description: "a"})
	buf.Reset()

	_, err := expenses.Create(ctx, core.ExpenseInput{Description: "b"})
	assert.ErrorIs(t, err, ident.ErrPoolExhausted)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error_type=exhausted_error")
}

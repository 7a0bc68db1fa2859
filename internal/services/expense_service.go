package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tracker/internal/amqp"
	"tracker/internal/core"
	"tracker/internal/ident"
	applog "tracker/internal/log"
	"tracker/internal/query"
	"tracker/internal/store"
	"tracker/internal/taxonomy"
)

// ExpenseServiceConfig holds the dependencies of an ExpenseService
type ExpenseServiceConfig struct {
	PoolSize  int                // number of sequence ids available
	Taxonomy  *taxonomy.Taxonomy // allowed categories
	Publisher ChangePublisher    // optional
	Logger    *applog.Logger
	Now       func() time.Time // clock for ids and default dates
}

// DefaultExpenseServiceConfig returns a configuration with a 1000 id pool,
// the default categories and the wall clock.
func DefaultExpenseServiceConfig() ExpenseServiceConfig {
	return ExpenseServiceConfig{
		PoolSize: 1000,
		Taxonomy: taxonomy.New(taxonomy.DefaultCategories),
		Logger:   applog.Discard(),
		Now:      time.Now,
	}
}

// ExpenseService exposes create/read/update/delete/search/filter over
// expenses, plus the running summary.
type ExpenseService struct {
	store    *store.Store[string, core.Expense]
	pool     *ident.Pool
	taxonomy *taxonomy.Taxonomy
	now      func() time.Time
	events   notifier
}

func NewExpenseService(config ExpenseServiceConfig) *ExpenseService {
	defaults := DefaultExpenseServiceConfig()
	if config.Taxonomy == nil {
		config.Taxonomy = defaults.Taxonomy
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	if config.Now == nil {
		config.Now = defaults.Now
	}

	s := &ExpenseService{
		taxonomy: config.Taxonomy,
		now:      config.Now,
		events:   newNotifier(amqp.KindExpense, config.Publisher, config.Logger.WithComponent(applog.ComponentExpenses)),
	}
	s.pool = ident.NewPool(config.PoolSize, func() string {
		return core.DateOf(s.now()).String()
	})
	s.store = store.New[string, core.Expense](s.pool)
	return s
}

// Create stores a new expense. Its id is the creation date joined with the
// next sequence number; once the sequence runs out every Create fails with
// ident.ErrPoolExhausted.
func (s *ExpenseService) Create(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	category, err := s.resolveCategory(in.Category)
	if err != nil {
		s.events.failed(ctx, "Expense not created", err, applog.ErrorTypeValidation, applog.OpCreate,
			applog.NewFields().With(applog.FieldCategory, in.Category))
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	spent := in.DateSpent
	if spent.IsZero() {
		spent = core.DateOf(s.now())
	}

	e, err := s.store.Create(func(id string) core.Expense {
		return core.Expense{
			ID:          id,
			Description: in.Description,
			Amount:      in.Amount,
			DateSpent:   spent,
			Category:    category,
		}
	})
	if err != nil {
		s.events.failed(ctx, "Expense not created", err, errorType(err), applog.OpCreate, nil)
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.events.changed(ctx, e.ID, applog.OpCreate, applog.NewFields().
		With(applog.FieldAmount, e.Amount.String()).
		With(applog.FieldCategory, e.Category).
		With(applog.FieldRemaining, s.pool.Remaining()))
	return e, nil
}

// All returns every expense in creation order
func (s *ExpenseService) All(ctx context.Context) []core.Expense {
	all := s.store.All()
	s.events.queried(ctx, applog.OpRead, len(all), nil)
	return all
}

func (s *ExpenseService) Get(_ context.Context, id string) (core.Expense, error) {
	return s.store.Get(strings.TrimSpace(id))
}

// Update overwrites the supplied fields of patch. An unknown category is
// rejected and leaves the expense unchanged.
func (s *ExpenseService) Update(ctx context.Context, id string, patch core.ExpensePatch) (core.Expense, error) {
	id = strings.TrimSpace(id)
	if strings.TrimSpace(patch.Category) != "" {
		category, err := s.resolveCategory(patch.Category)
		if err != nil {
			s.events.failed(ctx, "Expense not updated", err, applog.ErrorTypeValidation, applog.OpUpdate,
				applog.NewFields().With(applog.FieldRecordID, id).With(applog.FieldCategory, patch.Category))
			return core.Expense{}, fmt.Errorf("update expense: %w", err)
		}
		patch.Category = category
	}

	e, err := s.store.Update(id, func(e *core.Expense) error {
		e.Apply(patch)
		return nil
	})
	if err != nil {
		s.events.failed(ctx, "Expense not updated", err, errorType(err), applog.OpUpdate,
			applog.NewFields().With(applog.FieldRecordID, id))
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.events.changed(ctx, e.ID, applog.OpUpdate, nil)
	return e, nil
}

// Delete removes the expense and returns it. Its sequence number is not
// handed out again.
func (s *ExpenseService) Delete(ctx context.Context, id string) (core.Expense, error) {
	id = strings.TrimSpace(id)
	e, err := s.store.Delete(id)
	if err != nil {
		s.events.failed(ctx, "Expense not deleted", err, errorType(err), applog.OpDelete,
			applog.NewFields().With(applog.FieldRecordID, id))
		return core.Expense{}, fmt.Errorf("delete expense: %w", err)
	}
	s.events.changed(ctx, e.ID, applog.OpDelete, nil)
	return e, nil
}

// Search matches keyword against description and category, ignoring case
func (s *ExpenseService) Search(ctx context.Context, keyword string) []core.Expense {
	out := query.Search(s.store.All(), keyword)
	s.events.queried(ctx, applog.OpSearch, len(out), applog.NewFields().With(applog.FieldKeyword, keyword))
	return out
}

// FilterByCategory returns the expenses filed under category. A category
// outside the taxonomy is ErrInvalidCategory.
func (s *ExpenseService) FilterByCategory(ctx context.Context, category string) ([]core.Expense, error) {
	want, ok := s.taxonomy.Lookup(category)
	if !ok {
		s.events.failed(ctx, "Invalid category filter", core.ErrInvalidCategory, applog.ErrorTypeValidation, applog.OpFilter,
			applog.NewFields().With(applog.FieldCategory, category))
		return nil, fmt.Errorf("filter expenses by %q: %w", category, core.ErrInvalidCategory)
	}
	out := query.Filter(s.store.All(), func(e core.Expense) bool { return e.Category == want })
	s.events.queried(ctx, applog.OpFilter, len(out), applog.NewFields().With(applog.FieldCategory, want))
	return out, nil
}

// Summary totals every stored expense
func (s *ExpenseService) Summary(ctx context.Context) core.ExpenseSummary {
	sum := core.Summarize(s.store.All())
	s.events.queried(ctx, applog.OpSummary, sum.Count, applog.NewFields().With(applog.FieldAmount, sum.Total.String()))
	return sum
}

// Categories lists the allowed categories
func (s *ExpenseService) Categories(_ context.Context) []string {
	return s.taxonomy.List()
}

// RemainingIDs reports how many expenses can still be created
func (s *ExpenseService) RemainingIDs() int {
	return s.pool.Remaining()
}

func (s *ExpenseService) Len() int {
	return s.store.Len()
}

func (s *ExpenseService) resolveCategory(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", nil
	}
	c, ok := s.taxonomy.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%q: %w", name, core.ErrInvalidCategory)
	}
	return c, nil
}

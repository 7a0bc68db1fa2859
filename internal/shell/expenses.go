package shell

import (
	"context"
	"errors"
	"io"
	"strings"

	"tracker/internal/core"
	"tracker/internal/ident"
	applog "tracker/internal/log"
)

// ExpenseStore is the part of the expense service the shell drives.
type ExpenseStore interface {
	Create(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
	All(ctx context.Context) []core.Expense
	Get(ctx context.Context, id string) (core.Expense, error)
	Update(ctx context.Context, id string, patch core.ExpensePatch) (core.Expense, error)
	Delete(ctx context.Context, id string) (core.Expense, error)
	Search(ctx context.Context, keyword string) []core.Expense
	FilterByCategory(ctx context.Context, category string) ([]core.Expense, error)
	Summary(ctx context.Context) core.ExpenseSummary
	Categories(ctx context.Context) []string
	RemainingIDs() int
	Len() int
}

// ExpenseShell is the expense tracker menu.
type ExpenseShell struct {
	expenses ExpenseStore
	locale   string
	p        *Prompter
	logger   *applog.Logger
}

// NewExpenseShell renders amounts for locale, a BCP 47 tag such as "en" or "it".
func NewExpenseShell(expenses ExpenseStore, locale string, in io.Reader, out io.Writer, logger *applog.Logger) *ExpenseShell {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ExpenseShell{
		expenses: expenses,
		locale:   locale,
		p:        NewPrompter(in, out),
		logger:   logger.WithComponent(applog.ComponentShell),
	}
}

const expenseMenu = `
Expense Tracker CLI
1. Add Expense
2. View All Expenses
3. Update Expense
4. Delete Expense
5. Summary Expense
6. Search Expenses
7. Filter Expenses by category
8. Exit
`

// Run shows the menu until the user exits or input ends. It returns
// ctx.Err() when ctx is cancelled and nil otherwise.
func (s *ExpenseShell) Run(ctx context.Context) error {
	defer s.p.Close()
	s.p.Println("Expense Tracker")

	for {
		s.p.Printf("%s", expenseMenu)
		choice, err := s.p.Line(ctx, "Enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		switch strings.ToLower(choice) {
		case "1":
			err = s.add(ctx)
		case "2":
			s.viewAll(ctx)
		case "3":
			err = s.update(ctx)
		case "4":
			err = s.delete(ctx)
		case "5":
			renderSummary(s.p.out, s.locale, s.expenses.Summary(ctx))
		case "6":
			err = s.search(ctx)
		case "7":
			err = s.byCategory(ctx)
		case "8", "q", "quit", "exit":
			s.p.Println("Exiting Expense Tracker. Goodbye!")
			return nil
		default:
			s.p.Println("Invalid choice. Please try again.")
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

func (s *ExpenseShell) categoryPrompt(ctx context.Context, suffix string) string {
	return "Enter category (" + strings.Join(s.expenses.Categories(ctx), ", ") + "; " + suffix + "): "
}

func (s *ExpenseShell) add(ctx context.Context) error {
	if s.expenses.RemainingIDs() == 0 {
		s.p.Println(describe(ident.ErrPoolExhausted))
		return nil
	}

	var in core.ExpenseInput
	var err error

	if in.Description, err = s.p.Line(ctx, "Enter the description of expense: "); err != nil {
		return err
	}
	amount, err := s.p.Amount(ctx, "Enter the amount spent: ", false)
	if err != nil {
		return err
	}
	in.Amount = *amount

	today, err := s.p.YesNo(ctx, "Is the expense today? (Y/N): ")
	if err != nil {
		return err
	}
	if !today {
		if in.DateSpent, err = s.p.Date(ctx, "Enter the date in YYYY-MM-DD format: ", false); err != nil {
			return err
		}
	}
	if in.Category, err = s.p.Line(ctx, s.categoryPrompt(ctx, "leave blank for none")); err != nil {
		return err
	}

	e, err := s.expenses.Create(ctx, in)
	if err != nil {
		s.report(ctx, err)
		return nil
	}
	s.p.Printf("Expense %s added.\n", e.ID)
	return nil
}

func (s *ExpenseShell) viewAll(ctx context.Context) {
	expenses := s.expenses.All(ctx)
	if len(expenses) == 0 {
		s.p.Println("No expenses yet. Add your expenses")
		return
	}
	renderExpenses(s.p.out, s.locale, expenses)
}

func (s *ExpenseShell) update(ctx context.Context) error {
	if s.expenses.Len() == 0 {
		s.p.Println("No expenses to update. Please add expenses first.")
		return nil
	}
	id, err := s.p.Line(ctx, "Enter expense ID to update: ")
	if err != nil {
		return err
	}
	if _, err := s.expenses.Get(ctx, id); err != nil {
		s.reportExpense(ctx, id, err)
		return nil
	}

	var patch core.ExpensePatch
	if patch.Description, err = s.p.Line(ctx, "Enter new description (leave blank to keep current): "); err != nil {
		return err
	}
	if patch.Amount, err = s.p.Amount(ctx, "Enter new amount (leave blank to keep current): ", true); err != nil {
		return err
	}
	if patch.DateSpent, err = s.p.Date(ctx, "Enter new date (leave blank to keep current): ", true); err != nil {
		return err
	}
	if patch.Category, err = s.p.Line(ctx, s.categoryPrompt(ctx, "leave blank to keep current")); err != nil {
		return err
	}

	if _, err := s.expenses.Update(ctx, id, patch); err != nil {
		s.reportExpense(ctx, id, err)
		return nil
	}
	s.p.Printf("Expense with ID %s updated successfully.\n", id)
	return nil
}

func (s *ExpenseShell) delete(ctx context.Context) error {
	id, err := s.p.Line(ctx, "Enter expense ID to delete: ")
	if err != nil {
		return err
	}
	if _, err := s.expenses.Delete(ctx, id); err != nil {
		s.reportExpense(ctx, id, err)
		return nil
	}
	s.p.Printf("Expense with ID %s deleted successfully.\n", id)
	return nil
}

func (s *ExpenseShell) search(ctx context.Context) error {
	keyword, err := s.p.Line(ctx, "Enter keyword to search: ")
	if err != nil {
		return err
	}
	results := s.expenses.Search(ctx, keyword)
	if len(results) == 0 {
		s.p.Println("No matching expenses found.")
		return nil
	}
	renderExpenses(s.p.out, s.locale, results)
	return nil
}

func (s *ExpenseShell) byCategory(ctx context.Context) error {
	category, err := s.p.Line(ctx, s.categoryPrompt(ctx, "required"))
	if err != nil {
		return err
	}
	results, err := s.expenses.FilterByCategory(ctx, category)
	if err != nil {
		s.report(ctx, err)
		return nil
	}
	if len(results) == 0 {
		s.p.Printf("No expenses in category '%s'.\n", category)
		return nil
	}
	renderExpenses(s.p.out, s.locale, results)
	return nil
}

func (s *ExpenseShell) reportExpense(ctx context.Context, id string, err error) {
	if errors.Is(err, core.ErrNotFound) {
		s.p.Printf("Expense with ID %s not found.\n", strings.TrimSpace(id))
		return
	}
	s.report(ctx, err)
}

func (s *ExpenseShell) report(ctx context.Context, err error) {
	if errors.Is(err, core.ErrInvalidCategory) {
		s.p.Printf("Invalid category. Choose one of: %s.\n", strings.Join(s.expenses.Categories(ctx), ", "))
		return
	}
	s.p.Println(describe(err))
	if !isUserError(err) {
		s.logger.ErrorContext(ctx, "Expense operation failed", "error", err)
	}
}

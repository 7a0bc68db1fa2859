package shell

import (
	"fmt"
	"io"
	"strings"

	"tracker/internal/core"
)

const separator = "==========================================="

func renderTasks(w io.Writer, tasks []core.Task) {
	for _, t := range tasks {
		fmt.Fprintf(w, "ID: %d\n", t.ID)
		fmt.Fprintf(w, "Title: %s\n", t.Title)
		fmt.Fprintf(w, "Description: %s\n", t.Description)
		fmt.Fprintf(w, "Status: %s\n", t.Status)
		fmt.Fprintln(w, separator)
	}
}

const expenseRow = "%-16s %-24s %12s %-12s %s\n"

func renderExpenses(w io.Writer, locale string, expenses []core.Expense) {
	fmt.Fprintf(w, expenseRow, "ID", "Description", "Amount", "Date Spent", "Category")
	for _, e := range expenses {
		fmt.Fprintf(w, expenseRow,
			e.ID,
			truncate(e.Description, 24),
			core.FormatAmount(locale, e.Amount),
			e.DateSpent.String(),
			e.Category)
	}
}

func renderSummary(w io.Writer, locale string, sum core.ExpenseSummary) {
	fmt.Fprintf(w, "Expenses: %d\n", sum.Count)
	fmt.Fprintf(w, "Total expenses summary: %s\n", core.FormatAmount(locale, sum.Total))
	for _, c := range sum.ByCategory {
		name := c.Name
		if name == "" {
			name = "(uncategorised)"
		}
		fmt.Fprintf(w, "  %-20s %12s\n", name, core.FormatAmount(locale, c.Amount))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}

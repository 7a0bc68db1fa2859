package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// ExpenseSummary is the running total over every stored expense.
type ExpenseSummary struct {
	Count      int
	Total      decimal.Decimal
	ByCategory []CategoryAmount // first-seen order, uncategorised under ""
}

// Summarize totals the expenses overall and per category.
func Summarize(expenses []Expense) ExpenseSummary {
	sum := ExpenseSummary{Count: len(expenses), Total: decimal.Zero}
	index := map[string]int{}
	for _, e := range expenses {
		sum.Total = sum.Total.Add(e.Amount)
		i, ok := index[e.Category]
		if !ok {
			i = len(sum.ByCategory)
			index[e.Category] = i
			sum.ByCategory = append(sum.ByCategory, CategoryAmount{Name: e.Category, Amount: decimal.Zero})
		}
		sum.ByCategory[i].Amount = sum.ByCategory[i].Amount.Add(e.Amount)
	}
	return sum
}

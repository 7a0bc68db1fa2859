package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in progress"
	StatusDone       Status = "done"
)

// DateLayout is the ISO calendar date format used for expense dates and ids.
const DateLayout = "2006-01-02"

type (
	// Status is the closed set of task states.
	Status string

	Date struct {
		time.Time
	}

	Task struct {
		ID          int
		Title       string
		Description string
		Status      Status
	}

	Expense struct {
		ID          string // <creation date>_<sequence>
		Description string
		Amount      decimal.Decimal
		DateSpent   Date
		Category    string // optional, empty means uncategorised
	}

	// TaskPatch carries update values; blank fields keep the stored value.
	TaskPatch struct {
		Title       string
		Description string
		Status      string
	}

	// ExpenseInput holds the values for a new expense. A zero DateSpent
	// means the expense happened on the creation day.
	ExpenseInput struct {
		Description string
		Amount      decimal.Decimal
		DateSpent   Date
		Category    string
	}

	// ExpensePatch carries update values; blank strings, a nil Amount and
	// a zero DateSpent keep the stored value.
	ExpensePatch struct {
		Description string
		Amount      *decimal.Decimal
		DateSpent   Date
		Category    string
	}
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
)

// Statuses returns every valid status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone}
}

// ParseStatus maps free text onto a Status. Matching ignores case and
// surrounding spaces; anything outside the closed set is ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	v := Status(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", ErrInvalidStatus
	}
	return v, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// Key implements store.Keyed.
func (t Task) Key() int {
	return t.ID
}

// SearchText returns the fields keyword search looks at.
func (t Task) SearchText() []string {
	return []string{t.Title, t.Description}
}

// Apply copies the non-blank fields of p onto t. The status is validated
// before anything is written so a bad patch leaves t untouched.
func (t *Task) Apply(p TaskPatch) error {
	var status Status
	if strings.TrimSpace(p.Status) != "" {
		parsed, err := ParseStatus(p.Status)
		if err != nil {
			return err
		}
		status = parsed
	}
	if strings.TrimSpace(p.Title) != "" {
		t.Title = p.Title
	}
	if strings.TrimSpace(p.Description) != "" {
		t.Description = p.Description
	}
	if status != "" {
		t.Status = status
	}
	return nil
}

// Key implements store.Keyed.
func (e Expense) Key() string {
	return e.ID
}

func (e Expense) SearchText() []string {
	return []string{e.Description, e.Category}
}

// Apply copies the supplied fields of p onto e. Category membership is
// checked by the caller before Apply runs.
func (e *Expense) Apply(p ExpensePatch) {
	if strings.TrimSpace(p.Description) != "" {
		e.Description = p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if !p.DateSpent.IsZero() {
		e.DateSpent = p.DateSpent
	}
	if strings.TrimSpace(p.Category) != "" {
		e.Category = p.Category
	}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Package shell implements the interactive menus for tasks and expenses.
//
// A shell reads one line per prompt from an io.Reader and writes to an
// io.Writer. Input that cannot be parsed is asked for again; domain errors
// are printed and the menu loop carries on.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"tracker/internal/core"
)

// Prompter reads answers line by line. Reading happens on its own
// goroutine so a cancelled context unblocks a pending prompt.
type Prompter struct {
	out   io.Writer
	lines chan string
	stop  chan struct{}
}

// NewPrompter starts reading lines from in. Call Close when done.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{
		out:   out,
		lines: make(chan string),
		stop:  make(chan struct{}),
	}
	go p.read(in)
	return p
}

func (p *Prompter) read(in io.Reader) {
	defer close(p.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		select {
		case p.lines <- scanner.Text():
		case <-p.stop:
			return
		}
	}
}

// Close releases the reader goroutine once it returns from its current read.
func (p *Prompter) Close() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}

// Printf writes to the shell output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the shell output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the trimmed answer. It returns io.EOF when
// input is exhausted and ctx.Err() when ctx is done.
func (p *Prompter) Line(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// Int asks until the answer is a whole number.
func (p *Prompter) Int(ctx context.Context, prompt string) (int, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		p.Println("Please enter a valid number.")
	}
}

// Amount asks until the answer is a non-negative amount. With optional set
// a blank answer returns nil.
func (p *Prompter) Amount(ctx context.Context, prompt string, optional bool) (*decimal.Decimal, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if line == "" && optional {
			return nil, nil
		}
		amount, err := core.ParseAmount(line)
		if err == nil {
			return &amount, nil
		}
		p.Println("Invalid amount. Please enter a number such as 12.50.")
	}
}

// Date asks until the answer is a YYYY-MM-DD date. With optional set a
// blank answer returns the zero date.
func (p *Prompter) Date(ctx context.Context, prompt string, optional bool) (core.Date, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return core.Date{}, err
		}
		if line == "" && optional {
			return core.Date{}, nil
		}
		d, err := core.ParseDate(line)
		if err == nil {
			return d, nil
		}
		p.Println("Invalid date format. Please enter the date in YYYY-MM-DD format.")
	}
}

// YesNo asks until the answer is y or n, case-insensitive.
func (p *Prompter) YesNo(ctx context.Context, prompt string) (bool, error) {
	for {
		line, err := p.Line(ctx, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.Println("Please answer Y or N.")
	}
}

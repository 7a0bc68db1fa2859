package shell

import (
	"errors"
	"io"

	"tracker/internal/core"
	"tracker/internal/ident"
)

// endOfInput turns exhausted input into a clean exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func isUserError(err error) bool {
	return errors.Is(err, core.ErrNotFound) ||
		errors.Is(err, core.ErrInvalidStatus) ||
		errors.Is(err, core.ErrInvalidCategory) ||
		errors.Is(err, ident.ErrPoolExhausted)
}

func describe(err error) string {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return "Record not found."
	case errors.Is(err, core.ErrInvalidStatus):
		return "Invalid status. Please use " + statusChoices() + "."
	case errors.Is(err, core.ErrInvalidCategory):
		return "Invalid category."
	case errors.Is(err, ident.ErrPoolExhausted):
		return "No expense IDs left. No more expenses can be added in this session."
	default:
		return "Error: " + err.Error()
	}
}

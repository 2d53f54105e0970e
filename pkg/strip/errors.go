package strip

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyGroup is returned when popping from an exhausted pool group
	// without using the fallback path.
	ErrEmptyGroup = errors.New("number group is empty")

	// ErrPoolExhausted is returned when no pool group has numbers left while
	// tickets are still incomplete.
	ErrPoolExhausted = errors.New("number pool is exhausted")

	// ErrNoEligibleTicket is returned when no ticket can accept a number for
	// the required column.
	ErrNoEligibleTicket = errors.New("no ticket can accept a number for column")

	// ErrColumnFull is returned when inserting into a column that already
	// holds MaxPerColumn numbers.
	ErrColumnFull = errors.New("ticket column is full")

	// ErrTicketFull is returned when inserting into a ticket that already
	// holds NumbersPerTicket numbers.
	ErrTicketFull = errors.New("ticket is full")

	// ErrIncompleteLayout is returned when rows are requested before every
	// column holds exactly Rows slots.
	ErrIncompleteLayout = errors.New("ticket layout is incomplete")

	// ErrInvalidColumn is returned for a column index outside 0-8.
	ErrInvalidColumn = errors.New("column index out of range")

	// ErrInvalidNumber is returned for a number outside its column's range.
	ErrInvalidNumber = errors.New("number does not belong to column")
)

var invariantKinds = []error{
	ErrEmptyGroup,
	ErrPoolExhausted,
	ErrNoEligibleTicket,
	ErrColumnFull,
	ErrTicketFull,
	ErrIncompleteLayout,
	ErrInvalidColumn,
	ErrInvalidNumber,
}

// InvariantError reports a broken generation invariant. Ticket is the 1-based
// ticket number, or zero when the failure is not tied to a ticket. Column is
// -1 when the failure is not tied to a column.
type InvariantError struct {
	Op     string
	Ticket int
	Column int
	Err    error
}

func (e *InvariantError) Error() string {
	var b strings.Builder
	b.WriteString("strip: ")
	b.WriteString(e.Op)
	if e.Ticket > 0 {
		fmt.Fprintf(&b, ": ticket %d", e.Ticket)
	}
	if e.Column >= 0 {
		fmt.Fprintf(&b, ": column %d", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsInvariantViolation reports whether err was caused by a broken generation
// invariant. Such errors are fatal for the strip being generated.
func IsInvariantViolation(err error) bool {
	var ie *InvariantError
	if errors.As(err, &ie) {
		return true
	}
	for _, kind := range invariantKinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func invariant(op string, ticket, column int, err error) *InvariantError {
	return &InvariantError{Op: op, Ticket: ticket, Column: column, Err: err}
}

// ValidationError lists every property a finished strip violates.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid strip: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid strip: %d problems: %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

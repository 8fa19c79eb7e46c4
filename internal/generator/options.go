package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dbsmedya/godatagen/internal/entity"
)

// Counts is the requested number of records per entity kind.
type Counts struct {
	Customers    int
	Addresses    int
	Jobs         int
	Transactions int
}

// Options tunes person generation.
type Options struct {
	Locale    string
	MaleRatio float64
	Unique    bool // ask the provider for distinct names
	MinAge    int
	MaxAge    int
}

// DefaultOptions returns en_US, an even gender split, non-unique names and
// ages between 15 and 100.
func DefaultOptions() Options {
	return Options{
		Locale:    "en_US",
		MaleRatio: 0.5,
		Unique:    false,
		MinAge:    15,
		MaxAge:    100,
	}
}

// ErrPrecondition matches every PreconditionError and PreconditionErrors via errors.Is.
var ErrPrecondition = errors.New("precondition violated")

// PreconditionError reports an invalid generation input.
type PreconditionError struct {
	Field   string
	Message string
}

func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e PreconditionError) Is(target error) bool {
	return target == ErrPrecondition
}

// PreconditionErrors collects every violation found in one check.
type PreconditionErrors []PreconditionError

func (e PreconditionErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("precondition violated:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e PreconditionErrors) Is(target error) bool {
	return target == ErrPrecondition
}

// Validate checks that every count is positive.
func (c Counts) Validate() PreconditionErrors {
	var errs PreconditionErrors
	check := func(field string, n int) {
		if n <= 0 {
			errs = append(errs, PreconditionError{
				Field:   field,
				Message: fmt.Sprintf("must be positive, got %d", n),
			})
		}
	}
	check("count_of_customers", c.Customers)
	check("count_of_addresses", c.Addresses)
	check("count_of_jobs", c.Jobs)
	check("count_of_transactions", c.Transactions)
	return errs
}

// Validate checks ratio and age bounds. Ages must fit the people.age column.
func (o Options) Validate() PreconditionErrors {
	var errs PreconditionErrors

	if o.Locale == "" {
		errs = append(errs, PreconditionError{Field: "locale", Message: "locale is required"})
	}
	if o.MaleRatio < 0 || o.MaleRatio > 1 {
		errs = append(errs, PreconditionError{
			Field:   "male_ratio",
			Message: fmt.Sprintf("must be between 0 and 1, got %g", o.MaleRatio),
		})
	}
	if o.MinAge < 0 {
		errs = append(errs, PreconditionError{
			Field:   "min_age",
			Message: fmt.Sprintf("cannot be negative, got %d", o.MinAge),
		})
	}
	if o.MaxAge > entity.MaxPersonAge {
		errs = append(errs, PreconditionError{
			Field:   "max_age",
			Message: fmt.Sprintf("cannot exceed %d, got %d", entity.MaxPersonAge, o.MaxAge),
		})
	}
	if o.MinAge > o.MaxAge {
		errs = append(errs, PreconditionError{
			Field:   "max_age",
			Message: fmt.Sprintf("must be at least min_age (%d), got %d", o.MinAge, o.MaxAge),
		})
	}
	return errs
}

func requirePositive(field string, n int) error {
	if n <= 0 {
		return PreconditionError{Field: field, Message: fmt.Sprintf("must be positive, got %d", n)}
	}
	return nil
}

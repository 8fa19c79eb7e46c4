// Package provider supplies plausible fake values (names, addresses, job
// titles) to the dataset generator.
package provider

import "errors"

// ErrExhausted is returned when a provider cannot produce another value,
// typically because every distinct value has already been handed out.
var ErrExhausted = errors.New("provider exhausted")

// ErrUnsupportedLocale is returned for a locale the provider has no data for.
var ErrUnsupportedLocale = errors.New("unsupported locale")

// Gender selects the name pool.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

// Provider produces fake values by category. Any method may return an error
// wrapping ErrExhausted.
type Provider interface {
	Name(gender Gender, locale string, unique bool) (string, error)
	Postcode() (string, error)
	Country() (string, error)
	City() (string, error)
	StreetName() (string, error)
	JobTitle() (string, error)
}

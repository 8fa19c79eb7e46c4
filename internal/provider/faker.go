package provider

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

// DefaultMaxAttempts is the number of consecutive duplicate draws after which
// a unique category reports ErrExhausted.
const DefaultMaxAttempts = 100

// Faker is a Provider backed by gofakeit. Postcodes and job titles are
// identity values and are never repeated; names are repeated unless unique is
// requested. Create one Faker per generation run: it remembers every unique
// value it has issued.
type Faker struct {
	fake        *gofakeit.Faker
	maxAttempts int
	issued      map[string]map[string]bool
}

var _ Provider = (*Faker)(nil)

// Option configures a Faker.
type Option func(*Faker)

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(f *Faker) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// NewFaker creates a Faker. The same seed yields the same sequence of values.
func NewFaker(seed int64, opts ...Option) *Faker {
	f := &Faker{
		fake:        gofakeit.New(seed),
		maxAttempts: DefaultMaxAttempts,
		issued:      make(map[string]map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns a full name for the gender, drawn from the locale's pools.
func (f *Faker) Name(gender Gender, locale string, unique bool) (string, error) {
	pool, ok := namePools[locale]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}

	first := pool.female
	if gender == Male {
		first = pool.male
	}

	next := func() string {
		last := f.fake.LastName()
		if len(pool.last) > 0 {
			last = f.fake.RandomString(pool.last)
		}
		return f.fake.RandomString(first) + " " + last
	}

	if !unique {
		return next(), nil
	}
	return f.unique("name:"+locale, next)
}

func (f *Faker) Postcode() (string, error) {
	return f.unique("postcode", f.fake.Zip)
}

func (f *Faker) Country() (string, error) {
	return f.fake.Country(), nil
}

func (f *Faker) City() (string, error) {
	return f.fake.City(), nil
}

func (f *Faker) StreetName() (string, error) {
	return f.fake.StreetName(), nil
}

func (f *Faker) JobTitle() (string, error) {
	return f.unique("job", f.fake.JobTitle)
}

// Issued returns how many unique values of the category have been handed out.
func (f *Faker) Issued(category string) int {
	return len(f.issued[category])
}

func (f *Faker) unique(category string, next func() string) (string, error) {
	seen := f.issued[category]
	if seen == nil {
		seen = make(map[string]bool)
		f.issued[category] = seen
	}

	for i := 0; i < f.maxAttempts; i++ {
		v := next()
		if !seen[v] {
			seen[v] = true
			return v, nil
		}
	}
	return "", fmt.Errorf("%s: %w after %d distinct values", category, ErrExhausted, len(seen))
}

// Package generator produces a cross-referenced RentalDataset from a
// fake-value provider.
//
// Addresses and jobs are generated best-effort: when the provider reports
// provider.ErrExhausted the collection is cut short and generation goes on.
// Callers must not assume those two counts match the request; Report shows
// requested against produced counts.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
	"github.com/dbsmedya/godatagen/internal/logger"
	"github.com/dbsmedya/godatagen/internal/provider"
)

// Length bounds of a generated transaction.
const (
	MinTransactionLength = 100
	MaxTransactionLength = 1000
)

// Context carries the state of one generation run: the provider, the random
// source and the logger. Build a new Context for every run.
type Context struct {
	provider provider.Provider
	rng      *rand.Rand
	log      *logger.Logger
}

// NewContext creates a generation context. A zero seed picks a time-based
// seed; a nil logger discards output.
func NewContext(p provider.Provider, seed int64, log *logger.Logger) *Context {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Context{
		provider: p,
		rng:      rand.New(rand.NewSource(seed)),
		log:      log,
	}
}

// Generate validates every input, then builds people, addresses, jobs and
// transactions in that order. On error no dataset is returned.
func Generate(gctx *Context, counts Counts, opts Options) (*dataset.RentalDataset, error) {
	if gctx == nil || gctx.provider == nil {
		return nil, fmt.Errorf("generation context has no provider")
	}

	errs := counts.Validate()
	errs = append(errs, opts.Validate()...)
	if len(errs) > 0 {
		return nil, errs
	}

	start := time.Now()
	gctx.log.Infof("Generating dataset: %d customers, %d addresses, %d jobs, %d transactions",
		counts.Customers, counts.Addresses, counts.Jobs, counts.Transactions)

	people, err := GeneratePeople(gctx, counts.Customers, opts)
	if err != nil {
		return nil, err
	}

	addresses, err := GenerateAddresses(gctx, counts.Addresses)
	if err != nil {
		return nil, err
	}

	jobs, err := GenerateJobs(gctx, counts.Jobs)
	if err != nil {
		return nil, err
	}

	transactions, err := GenerateTransactions(gctx, counts.Transactions, people, addresses, jobs)
	if err != nil {
		return nil, err
	}

	ds := dataset.New(people, addresses, jobs, transactions)
	gctx.log.Infof("Dataset generated in %s", time.Since(start))
	return ds, nil
}

// GeneratePeople creates n people with ids P-000000 onwards.
func GeneratePeople(gctx *Context, n int, opts Options) ([]entity.Person, error) {
	if err := requirePositive("count_of_customers", n); err != nil {
		return nil, err
	}
	if errs := opts.Validate(); len(errs) > 0 {
		return nil, errs
	}

	log := gctx.log.WithCollection(entity.Person{}.CollectionName())
	people := make([]entity.Person, 0, n)

	for i := 0; i < n; i++ {
		male := gctx.rng.Float64() < opts.MaleRatio
		gender := provider.Female
		if male {
			gender = provider.Male
		}

		name, err := gctx.provider.Name(gender, opts.Locale, opts.Unique)
		if err != nil {
			return nil, fmt.Errorf("failed to generate name for person %d: %w", i, err)
		}

		people = append(people, entity.Person{
			ID:   sequenceID("P", i),
			Name: name,
			Age:  opts.MinAge + gctx.rng.Intn(opts.MaxAge-opts.MinAge+1),
			Male: male,
		})
	}

	log.Debugf("Generated %d people", len(people))
	return people, nil
}

// GenerateAddresses creates up to n addresses, stopping early if the
// provider is exhausted.
func GenerateAddresses(gctx *Context, n int) ([]entity.Address, error) {
	if err := requirePositive("count_of_addresses", n); err != nil {
		return nil, err
	}

	log := gctx.log.WithCollection(entity.Address{}.CollectionName())
	addresses := make([]entity.Address, 0, n)

	for i := 0; i < n; i++ {
		address, err := nextAddress(gctx.provider)
		if errors.Is(err, provider.ErrExhausted) {
			log.Warnw("Provider exhausted, stopping early", "requested", n, "generated", len(addresses), "reason", err)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to generate address %d: %w", i, err)
		}
		addresses = append(addresses, address)
	}

	log.Debugf("Generated %d addresses", len(addresses))
	return addresses, nil
}

func nextAddress(p provider.Provider) (entity.Address, error) {
	var a entity.Address
	var err error

	if a.Postcode, err = p.Postcode(); err != nil {
		return a, err
	}
	if a.Country, err = p.Country(); err != nil {
		return a, err
	}
	if a.City, err = p.City(); err != nil {
		return a, err
	}
	if a.StreetName, err = p.StreetName(); err != nil {
		return a, err
	}
	return a, nil
}

// GenerateJobs creates up to n jobs, stopping early if the provider is
// exhausted.
func GenerateJobs(gctx *Context, n int) ([]entity.Job, error) {
	if err := requirePositive("count_of_jobs", n); err != nil {
		return nil, err
	}

	log := gctx.log.WithCollection(entity.Job{}.CollectionName())
	jobs := make([]entity.Job, 0, n)

	for i := 0; i < n; i++ {
		title, err := gctx.provider.JobTitle()
		if errors.Is(err, provider.ErrExhausted) {
			log.Warnw("Provider exhausted, stopping early", "requested", n, "generated", len(jobs), "reason", err)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to generate job %d: %w", i, err)
		}
		jobs = append(jobs, entity.Job{Title: title})
	}

	log.Debugf("Generated %d jobs", len(jobs))
	return jobs, nil
}

// GenerateTransactions creates n transactions, each referencing a person, an
// address and a job sampled uniformly with replacement.
func GenerateTransactions(gctx *Context, n int, people []entity.Person, addresses []entity.Address, jobs []entity.Job) ([]entity.Transaction, error) {
	var errs PreconditionErrors
	if err := requirePositive("count_of_transactions", n); err != nil {
		errs = append(errs, err.(PreconditionError))
	}
	if len(people) == 0 {
		errs = append(errs, PreconditionError{Field: "people", Message: "no people to reference"})
	}
	if len(addresses) == 0 {
		errs = append(errs, PreconditionError{Field: "addresses", Message: "no addresses to reference"})
	}
	if len(jobs) == 0 {
		errs = append(errs, PreconditionError{Field: "jobs", Message: "no jobs to reference"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	log := gctx.log.WithCollection(entity.Transaction{}.CollectionName())
	transactions := make([]entity.Transaction, 0, n)

	for i := 0; i < n; i++ {
		person := people[gctx.rng.Intn(len(people))]
		address := addresses[gctx.rng.Intn(len(addresses))]
		job := jobs[gctx.rng.Intn(len(jobs))]

		transactions = append(transactions, entity.Transaction{
			ID:      sequenceID("T", i),
			Person:  person.ID,
			Address: address.Postcode,
			Job:     job.Title,
			Length:  MinTransactionLength + gctx.rng.Intn(MaxTransactionLength-MinTransactionLength+1),
		})
	}

	log.Debugf("Generated %d transactions", len(transactions))
	return transactions, nil
}

func sequenceID(prefix string, i int) string {
	return fmt.Sprintf("%s-%06d", prefix, i)
}

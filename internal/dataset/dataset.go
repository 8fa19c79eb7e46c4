// Package dataset groups entity collections into an immutable dataset.
package dataset

import (
	"fmt"
	"slices"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/godatagen/internal/entity"
)

// Dataset is a named collection of entity collections.
type Dataset interface {
	// EntityTypes returns the kinds the dataset holds, in a fixed order.
	EntityTypes() []entity.Kind
	// Entities maps every kind from EntityTypes to its collection, in the
	// same order.
	Entities() *orderedmap.OrderedMap[entity.Kind, []entity.Entity]
}

// RentalDataset holds people, addresses, jobs and the transactions linking them.
// It is not modified after construction; accessors return copies.
type RentalDataset struct {
	people       []entity.Person
	addresses    []entity.Address
	jobs         []entity.Job
	transactions []entity.Transaction
}

var _ Dataset = (*RentalDataset)(nil)

// New builds a RentalDataset from typed collections.
func New(people []entity.Person, addresses []entity.Address, jobs []entity.Job, transactions []entity.Transaction) *RentalDataset {
	return &RentalDataset{
		people:       slices.Clone(people),
		addresses:    slices.Clone(addresses),
		jobs:         slices.Clone(jobs),
		transactions: slices.Clone(transactions),
	}
}

// EntityTypes returns Person, Address, Job, Transaction.
func (*RentalDataset) EntityTypes() []entity.Kind {
	return []entity.Kind{entity.KindPerson, entity.KindAddress, entity.KindJob, entity.KindTransaction}
}

// FromSequence assembles a RentalDataset from one list per entity kind, in
// EntityTypes order.
func FromSequence(entities [][]entity.Entity) (*RentalDataset, error) {
	kinds := (*RentalDataset)(nil).EntityTypes()
	if len(entities) != len(kinds) {
		return nil, fmt.Errorf("expected %d entity collections, got %d", len(kinds), len(entities))
	}

	people, err := convert[entity.Person](entities[0], entity.KindPerson)
	if err != nil {
		return nil, err
	}
	addresses, err := convert[entity.Address](entities[1], entity.KindAddress)
	if err != nil {
		return nil, err
	}
	jobs, err := convert[entity.Job](entities[2], entity.KindJob)
	if err != nil {
		return nil, err
	}
	transactions, err := convert[entity.Transaction](entities[3], entity.KindTransaction)
	if err != nil {
		return nil, err
	}

	return &RentalDataset{
		people:       people,
		addresses:    addresses,
		jobs:         jobs,
		transactions: transactions,
	}, nil
}

func convert[T entity.Entity](in []entity.Entity, kind entity.Kind) ([]T, error) {
	out := make([]T, 0, len(in))
	for i, e := range in {
		v, ok := e.(T)
		if !ok {
			return nil, fmt.Errorf("%s collection: element %d is %T, not a %s", kind, i, e, kind)
		}
		out = append(out, v)
	}
	return out, nil
}

func widen[T entity.Entity](in []T) []entity.Entity {
	out := make([]entity.Entity, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// Entities returns a fresh kind -> collection map.
func (d *RentalDataset) Entities() *orderedmap.OrderedMap[entity.Kind, []entity.Entity] {
	m := orderedmap.NewOrderedMap[entity.Kind, []entity.Entity]()
	for _, k := range d.EntityTypes() {
		m.Set(k, d.Collection(k))
	}
	return m
}

// Collection returns the collection for kind, or nil for a kind the dataset
// does not hold.
func (d *RentalDataset) Collection(kind entity.Kind) []entity.Entity {
	switch kind {
	case entity.KindPerson:
		return widen(d.people)
	case entity.KindAddress:
		return widen(d.addresses)
	case entity.KindJob:
		return widen(d.jobs)
	case entity.KindTransaction:
		return widen(d.transactions)
	default:
		return nil
	}
}

// Len returns the number of records of the given kind.
func (d *RentalDataset) Len(kind entity.Kind) int {
	switch kind {
	case entity.KindPerson:
		return len(d.people)
	case entity.KindAddress:
		return len(d.addresses)
	case entity.KindJob:
		return len(d.jobs)
	case entity.KindTransaction:
		return len(d.transactions)
	default:
		return 0
	}
}

func (d *RentalDataset) People() []entity.Person { return slices.Clone(d.people) }

func (d *RentalDataset) Addresses() []entity.Address { return slices.Clone(d.addresses) }

func (d *RentalDataset) Jobs() []entity.Job { return slices.Clone(d.jobs) }

func (d *RentalDataset) Transactions() []entity.Transaction { return slices.Clone(d.transactions) }

// CheckReferences verifies that every transaction references a person, an
// address and a job present in the dataset.
func (d *RentalDataset) CheckReferences() error {
	people := keys(d.people)
	addresses := keys(d.addresses)
	jobs := keys(d.jobs)

	for _, t := range d.transactions {
		if !people[t.Person] {
			return fmt.Errorf("transaction %s references unknown person %q", t.ID, t.Person)
		}
		if !addresses[t.Address] {
			return fmt.Errorf("transaction %s references unknown address %q", t.ID, t.Address)
		}
		if !jobs[t.Job] {
			return fmt.Errorf("transaction %s references unknown job %q", t.ID, t.Job)
		}
	}
	return nil
}

func keys[T entity.Entity](in []T) map[string]bool {
	m := make(map[string]bool, len(in))
	for _, e := range in {
		m[e.Key()] = true
	}
	return m
}

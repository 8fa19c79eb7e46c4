package generator

import (
	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
)

// CollectionReport compares the requested and produced size of one collection.
type CollectionReport struct {
	Kind       entity.Kind
	Collection string
	Requested  int
	Produced   int
}

// Short reports whether the provider ran out before the requested count.
func (r CollectionReport) Short() bool {
	return r.Produced < r.Requested
}

// Report lists one CollectionReport per entity kind, in dataset order.
type Report []CollectionReport

// NewReport builds a Report for a generated dataset.
func NewReport(counts Counts, ds *dataset.RentalDataset) Report {
	requested := map[entity.Kind]int{
		entity.KindPerson:      counts.Customers,
		entity.KindAddress:     counts.Addresses,
		entity.KindJob:         counts.Jobs,
		entity.KindTransaction: counts.Transactions,
	}

	var report Report
	for _, k := range ds.EntityTypes() {
		report = append(report, CollectionReport{
			Kind:       k,
			Collection: entity.Prototype(k).CollectionName(),
			Requested:  requested[k],
			Produced:   ds.Len(k),
		})
	}
	return report
}

// Total returns the number of produced records.
func (r Report) Total() int {
	total := 0
	for _, c := range r {
		total += c.Produced
	}
	return total
}

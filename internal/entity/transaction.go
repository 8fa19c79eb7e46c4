package entity

import "strconv"

// Transaction links a person, an address and a job. Person, Address and Job
// hold the identity values of the referenced records.
type Transaction struct {
	ID      string
	Person  string
	Address string
	Job     string
	Length  int
}

func (Transaction) Kind() Kind { return KindTransaction }

func (t Transaction) Key() string { return t.ID }

func (Transaction) FromSequence(fields []string) (Entity, error) {
	if err := checkFieldCount(KindTransaction, fields, 5); err != nil {
		return nil, err
	}
	length, err := parseInt(KindTransaction, "length", fields[4])
	if err != nil {
		return nil, err
	}
	return Transaction{
		ID:      fields[0],
		Person:  fields[1],
		Address: fields[2],
		Job:     fields[3],
		Length:  length,
	}, nil
}

func (t Transaction) ToSequence() []string {
	return []string{t.ID, t.Person, t.Address, t.Job, strconv.Itoa(t.Length)}
}

func (Transaction) FieldNames() []string {
	return []string{"id", "person", "address", "job", "length"}
}

func (Transaction) CollectionName() string { return "transactions" }

func (t Transaction) CreateTable() string { return t.Table().CreateTable() }

// Table declares the foreign keys against the identity columns of the
// referenced collections. Column types match the referenced columns.
func (t Transaction) Table() Table {
	people := Person{}.Table()
	addresses := Address{}.Table()
	jobs := Job{}.Table()

	return Table{
		Name: t.CollectionName(),
		Columns: []Column{
			{Name: "id", Type: "VARCHAR(16)"},
			{Name: "person", Type: "VARCHAR(16)"},
			{Name: "address", Type: "VARCHAR(30)"},
			{Name: "job", Type: "VARCHAR(100)"},
			{Name: "length", Type: "SMALLINT", Nullable: true},
		},
		PrimaryKey: "id",
		ForeignKeys: []ForeignKey{
			{Column: "person", RefTable: people.Name, RefColumn: people.PrimaryKey},
			{Column: "address", RefTable: addresses.Name, RefColumn: addresses.PrimaryKey},
			{Column: "job", RefTable: jobs.Name, RefColumn: jobs.PrimaryKey},
		},
	}
}

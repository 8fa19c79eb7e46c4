package entity

import "strconv"

// MaxPersonAge is the largest age the signed TINYINT age column can hold.
const MaxPersonAge = 127

// Person is a customer. Identity is ID.
type Person struct {
	ID   string
	Name string
	Age  int
	Male bool
}

func (Person) Kind() Kind { return KindPerson }

func (p Person) Key() string { return p.ID }

func (Person) FromSequence(fields []string) (Entity, error) {
	if err := checkFieldCount(KindPerson, fields, 4); err != nil {
		return nil, err
	}
	age, err := parseInt(KindPerson, "age", fields[2])
	if err != nil {
		return nil, err
	}
	male, err := parseBool(KindPerson, "male", fields[3])
	if err != nil {
		return nil, err
	}
	return Person{ID: fields[0], Name: fields[1], Age: age, Male: male}, nil
}

func (p Person) ToSequence() []string {
	return []string{p.ID, p.Name, strconv.Itoa(p.Age), formatBool(p.Male)}
}

func (Person) FieldNames() []string {
	return []string{"id", "name", "age", "male"}
}

func (Person) CollectionName() string { return "people" }

func (p Person) CreateTable() string { return p.Table().CreateTable() }

func (p Person) Table() Table {
	return Table{
		Name: p.CollectionName(),
		Columns: []Column{
			{Name: "id", Type: "VARCHAR(16)"},
			{Name: "name", Type: "VARCHAR(100)", Nullable: true},
			{Name: "age", Type: "TINYINT", Nullable: true},
			{Name: "male", Type: "BOOLEAN", Nullable: true},
		},
		PrimaryKey: "id",
	}
}

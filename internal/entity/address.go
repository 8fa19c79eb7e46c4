package entity

// Address is identified by its postcode.
type Address struct {
	Postcode   string
	Country    string
	City       string
	StreetName string
}

func (Address) Kind() Kind { return KindAddress }

func (a Address) Key() string { return a.Postcode }

func (Address) FromSequence(fields []string) (Entity, error) {
	if err := checkFieldCount(KindAddress, fields, 4); err != nil {
		return nil, err
	}
	return Address{Postcode: fields[0], Country: fields[1], City: fields[2], StreetName: fields[3]}, nil
}

func (a Address) ToSequence() []string {
	return []string{a.Postcode, a.Country, a.City, a.StreetName}
}

func (Address) FieldNames() []string {
	return []string{"postcode", "country", "city", "street_name"}
}

func (Address) CollectionName() string { return "addresses" }

func (a Address) CreateTable() string { return a.Table().CreateTable() }

func (a Address) Table() Table {
	return Table{
		Name: a.CollectionName(),
		Columns: []Column{
			{Name: "postcode", Type: "VARCHAR(30)"},
			{Name: "country", Type: "VARCHAR(100)", Nullable: true},
			{Name: "city", Type: "VARCHAR(50)", Nullable: true},
			{Name: "street_name", Type: "VARCHAR(50)", Nullable: true},
		},
		PrimaryKey: "postcode",
	}
}

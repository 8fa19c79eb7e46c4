package entity

// Job is a job title; the title is its own identity.
type Job struct {
	Title string
}

func (Job) Kind() Kind { return KindJob }

func (j Job) Key() string { return j.Title }

func (Job) FromSequence(fields []string) (Entity, error) {
	if err := checkFieldCount(KindJob, fields, 1); err != nil {
		return nil, err
	}
	return Job{Title: fields[0]}, nil
}

func (j Job) ToSequence() []string {
	return []string{j.Title}
}

func (Job) FieldNames() []string {
	return []string{"job"}
}

func (Job) CollectionName() string { return "jobs" }

func (j Job) CreateTable() string { return j.Table().CreateTable() }

func (j Job) Table() Table {
	return Table{
		Name: j.CollectionName(),
		Columns: []Column{
			{Name: "job", Type: "VARCHAR(100)"},
		},
		PrimaryKey: "job",
	}
}

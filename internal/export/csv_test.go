package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/godatagen/internal/dataset"
	"github.com/dbsmedya/godatagen/internal/entity"
)

func sampleDataset() *dataset.RentalDataset {
	return dataset.New(
		[]entity.Person{
			{ID: "P-000001", Name: "Ann Smith", Age: 30},
			{ID: "P-000002", Name: "O'Brien, Pat", Age: 61, Male: true},
		},
		[]entity.Address{
			{Postcode: "SW1A 1AA", Country: "United Kingdom", City: "London", StreetName: "Downing Street"},
		},
		[]entity.Job{{Title: "Engineer, \"civil\""}},
		[]entity.Transaction{
			{ID: "T-000001", Person: "P-000002", Address: "SW1A 1AA", Job: "Engineer, \"civil\"", Length: 300},
		},
	)
}

func TestWriteCollection(t *testing.T) {
	var buf bytes.Buffer
	people := []entity.Entity{
		entity.Person{ID: "P-000001", Name: "Ann Smith", Age: 30},
		entity.Person{ID: "P-000002", Name: "O'Brien, Pat", Age: 61, Male: true},
	}

	require.NoError(t, WriteCollection(&buf, entity.KindPerson, people))

	expected := "id,name,age,male\n" +
		"P-000001,Ann Smith,30,0\n" +
		"P-000002,\"O'Brien, Pat\",61,1\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCollection_WrongKind(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCollection(&buf, entity.KindJob, []entity.Entity{entity.Person{ID: "P-000001"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0 is a person")
}

func TestWriteDataset_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	ds := sampleDataset()

	paths, err := WriteDataset(dir, ds)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "people.csv"),
		filepath.Join(dir, "addresses.csv"),
		filepath.Join(dir, "jobs.csv"),
		filepath.Join(dir, "transactions.csv"),
	}, paths)

	got, err := ReadDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, ds.People(), got.People())
	assert.Equal(t, ds.Addresses(), got.Addresses())
	assert.Equal(t, ds.Jobs(), got.Jobs())
	assert.Equal(t, ds.Transactions(), got.Transactions())
}

func TestWriteDataset_EmptyCollectionHasHeader(t *testing.T) {
	dir := t.TempDir()
	ds := dataset.New(nil, nil, []entity.Job{{Title: "Pilot"}}, nil)

	_, err := WriteDataset(dir, ds)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "transactions.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,person,address,job,length\n", string(data))

	records, err := ReadCollection(dir, entity.KindTransaction)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteDataset_Nil(t *testing.T) {
	_, err := WriteDataset(t.TempDir(), nil)
	assert.EqualError(t, err, "dataset is nil")
}

func TestReadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kind    entity.Kind
		input   string
		wantErr string
	}{
		{
			name:    "empty input",
			kind:    entity.KindJob,
			input:   "",
			wantErr: "missing header",
		},
		{
			name:    "header mismatch",
			kind:    entity.KindAddress,
			input:   "postcode,country,town,street_name\n",
			wantErr: "does not match",
		},
		{
			name:    "wrong field count",
			kind:    entity.KindPerson,
			input:   "id,name,age,male\nP-000001,Ann,30\n",
			wantErr: "wrong number of fields",
		},
		{
			name:    "bad value",
			kind:    entity.KindPerson,
			input:   "id,name,age,male\nP-000001,Ann,thirty,0\n",
			wantErr: "person line 2",
		},
		{
			name:    "unknown kind",
			kind:    entity.Kind(42),
			input:   "x\n",
			wantErr: "unknown entity kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrom(strings.NewReader(tt.input), tt.kind)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadCollection_MissingFile(t *testing.T) {
	_, err := ReadCollection(t.TempDir(), entity.KindPerson)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "people.csv")
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "people.csv", FileName(entity.KindPerson))
	assert.Equal(t, "addresses.csv", FileName(entity.KindAddress))
	assert.Equal(t, "jobs.csv", FileName(entity.KindJob))
	assert.Equal(t, "transactions.csv", FileName(entity.KindTransaction))
}

// Package entity defines the record types of a generated dataset and the
// contract they share: flat-row round-trip, field naming, collection identity
// and table schema.
package entity

import (
	"fmt"
	"strconv"
)

// Kind identifies one of the record types a dataset can hold.
type Kind int

const (
	KindPerson Kind = iota
	KindAddress
	KindJob
	KindTransaction
)

// Kinds returns every entity kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindPerson, KindAddress, KindJob, KindTransaction}
}

func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindAddress:
		return "address"
	case KindJob:
		return "job"
	case KindTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts either the kind name ("person") or its collection name ("people").
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if s == k.String() || s == Prototype(k).CollectionName() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", s)
}

// Entity is implemented by every record type. FromSequence, FieldNames,
// CollectionName, CreateTable and Table do not depend on the receiver's
// field values, so they can be called on a zero value.
type Entity interface {
	Kind() Kind
	// Key returns the identity value. Descriptive fields never take part in
	// equality.
	Key() string
	FromSequence(fields []string) (Entity, error)
	ToSequence() []string
	FieldNames() []string
	CollectionName() string
	CreateTable() string
	Table() Table
}

// Equal reports whether a and b are the same record: same kind, same identity.
func Equal(a, b Entity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind() == b.Kind() && a.Key() == b.Key()
}

// Prototype returns the zero value of the record type for kind.
func Prototype(kind Kind) Entity {
	switch kind {
	case KindPerson:
		return Person{}
	case KindAddress:
		return Address{}
	case KindJob:
		return Job{}
	case KindTransaction:
		return Transaction{}
	default:
		return nil
	}
}

// FromSequence builds an entity of the given kind from positional fields.
func FromSequence(kind Kind, fields []string) (Entity, error) {
	proto := Prototype(kind)
	if proto == nil {
		return nil, fmt.Errorf("unknown entity kind %d", int(kind))
	}
	return proto.FromSequence(fields)
}

// FieldError is returned when a flat row cannot be turned into an entity.
type FieldError struct {
	Kind  Kind
	Field string // empty when the field count is wrong
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s.%s: cannot parse %q: %v", e.Kind, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func checkFieldCount(kind Kind, fields []string, want int) error {
	if len(fields) != want {
		return &FieldError{
			Kind: kind,
			Err:  fmt.Errorf("expected %d fields, got %d", want, len(fields)),
		}
	}
	return nil
}

func parseInt(kind Kind, field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &FieldError{Kind: kind, Field: field, Value: value, Err: err}
	}
	return n, nil
}

func parseBool(kind Kind, field, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, &FieldError{Kind: kind, Field: field, Value: value, Err: err}
	}
	return b, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

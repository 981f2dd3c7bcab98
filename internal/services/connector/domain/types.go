// Package domain holds the data shapes and ports of the csv connector pipeline
package domain

import (
	"strings"
	"time"
)

// IngestedAtField is the synthetic field appended to every record
const IngestedAtField = "ingested_at"

// RawSuffix is appended to the connector name to form the destination collection
const RawSuffix = "_raw"

// CollectionFor returns the destination collection for a connector name
func CollectionFor(connector string) string { return connector + RawSuffix }

// Payload is the raw response of one fetch
type Payload struct {
	URL         string
	Status      int
	ContentType string
	Body        string
	Bytes       int
}

// Empty reports whether there is nothing to parse
func (p Payload) Empty() bool { return strings.TrimSpace(p.Body) == "" }

// Kind is the inferred scalar type of a column
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDatetime:
		return "datetime"
	default:
		return "string"
	}
}

// Field is one named value of a record.
// Value is int64, float64, bool, time.Time, string or nil
type Field struct {
	Key   string
	Value any
}

// Record is one data row in header order, ingested_at last
type Record []Field

// Get returns the value stored under key
func (r Record) Get(key string) (any, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in order
func (r Record) Keys() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Key
	}
	return out
}

// Batch is the output of one successful parse
type Batch struct {
	Columns    []string
	Kinds      []Kind
	Records    []Record
	IngestedAt time.Time
}

// Len returns the number of records
func (b Batch) Len() int { return len(b.Records) }

// Empty reports whether there is nothing to load
func (b Batch) Empty() bool { return len(b.Records) == 0 }

// Target names where a batch is written
type Target struct {
	URI        string
	Database   string
	Collection string
}

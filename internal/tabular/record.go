// Package tabular holds the flat tabular model the exporter produces:
// ordered key-value records, the table assembled from them, and writers
// for CSV, XLSX and SQLite output.
package tabular

import "time"

// ColumnKey addresses one physical column. Plain columns carry only a
// Name; date columns split under the multiindex policy carry a Sub of
// "start" or "end". A table containing any keyed Sub is rendered with
// hierarchical (two-level) headers, plain columns padded with "".
type ColumnKey struct {
	Name string
	Sub  string
}

// Key returns a plain column key.
func Key(name string) ColumnKey { return ColumnKey{Name: name} }

// SubKey returns a hierarchical (name, sub) column key.
func SubKey(name, sub string) ColumnKey { return ColumnKey{Name: name, Sub: sub} }

// DateSpan is the normalized value of a Notion date property: a start
// timestamp and an optional end timestamp.
type DateSpan struct {
	Start *time.Time
	End   *time.Time
}

// Missing marks a cell whose column is absent from the source record.
// It is distinct from nil, which means the property was present but had
// no value.
var Missing = missing{}

type missing struct{}

func (missing) String() string { return "" }

// Record is one flattened row: an insertion-ordered mapping from
// ColumnKey to normalized value.
type Record struct {
	keys   []ColumnKey
	values map[ColumnKey]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[ColumnKey]any)}
}

// Set stores v under k, keeping first-insertion order. Setting an
// existing key overwrites its value in place (last write wins).
func (r *Record) Set(k ColumnKey, v any) {
	if _, ok := r.values[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []ColumnKey { return r.keys }

// Value returns the value stored under k and whether the key exists.
func (r *Record) Value(k ColumnKey) (any, bool) {
	v, ok := r.values[k]
	return v, ok
}

// Len returns the number of keys in the record.
func (r *Record) Len() int { return len(r.keys) }

package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedRecord is returned (wrapped) when persisted record bytes cannot
// be decoded. It is fatal to the read that hit it, not to the process.
var ErrMalformedRecord = errors.New("schema: malformed stored record")

// IsMalformedRecord checks if the error is a record decode failure.
func IsMalformedRecord(err error) bool {
	return errors.Is(err, ErrMalformedRecord)
}

// Prop is one (key, value) property pair of a persisted record. Pairs are
// stored in order; duplicate keys collapse last-write-wins on decode.
type Prop struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is the stable wire representation of one schema revision as written
// to the append-only log. The field layout must remain parsable across
// versions of the registry.
type Record struct {
	Type      string `json:"type"`
	Schema    []byte `json:"schema"`
	SchemaID  string `json:"schema_id"`
	User      string `json:"user"`
	Deleted   bool   `json:"deleted"`
	Timestamp int64  `json:"timestamp"`
	Props     []Prop `json:"props,omitempty"`
}

// NewRecord builds the persisted form of a revision. Properties are written
// in ascending key order so that byte output is deterministic for one input.
func NewRecord(schemaID string, d Data, timestampMillis int64) Record {
	props := make([]Prop, 0, len(d.Props))
	for k, v := range d.Props {
		props = append(props, Prop{Key: k, Value: v})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Key < props[j].Key })

	return Record{
		Type:      d.Type.String(),
		Schema:    d.Payload,
		SchemaID:  schemaID,
		User:      d.User,
		Deleted:   d.Deleted,
		Timestamp: timestampMillis,
		Props:     props,
	}
}

// Tombstone builds the record appended by a delete: type NONE, empty payload,
// deleted flag set.
func Tombstone(schemaID, user string, timestampMillis int64) Record {
	return Record{
		Type:      TypeNone.String(),
		SchemaID:  schemaID,
		User:      user,
		Deleted:   true,
		Timestamp: timestampMillis,
	}
}

// Encode serializes the record into its persisted byte form.
func (r Record) Encode() ([]byte, error) {
	out, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("schema: failed to encode record for %q: %w", r.SchemaID, err)
	}
	return out, nil
}

// DecodeRecord parses persisted record bytes. A decode failure wraps
// ErrMalformedRecord.
func DecodeRecord(raw []byte) (Record, error) {
	if len(raw) == 0 {
		return Record{}, fmt.Errorf("%w: empty record", ErrMalformedRecord)
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if _, err := ParseType(r.Type); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return r, nil
}

// SchemaData projects the record back into the in-memory Data form.
// Duplicate property keys collapse last-write-wins.
func (r Record) SchemaData() Data {
	t, _ := ParseType(r.Type)
	var props map[string]string
	if len(r.Props) > 0 {
		props = make(map[string]string, len(r.Props))
		for _, p := range r.Props {
			props[p.Key] = p.Value
		}
	}
	return Data{
		Type:    t,
		Payload: r.Schema,
		User:    r.User,
		Deleted: r.Deleted,
		Props:   props,
	}
}

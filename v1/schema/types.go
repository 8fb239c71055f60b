package schema

import "fmt"

// Type identifies the declared kind of a schema payload.
//
// Primitive types describe payload-less or fixed-layout data; a lineage whose
// current revision has a primitive type only ever admits candidates of the
// exact same type. Structured types (Avro, JSON, Protobuf, KeyValue) are the
// ones dispatched to pluggable compatibility checkers.
type Type int8

const (
	// TypeNone is the sentinel type carried by tombstone revisions.
	TypeNone Type = iota
	TypeString
	TypeBoolean
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeBytes
	TypeDate
	TypeTime
	TypeTimestamp
	TypeAvro
	TypeJSON
	TypeProtobuf
	TypeKeyValue
)

var typeNames = map[Type]string{
	TypeNone:      "NONE",
	TypeString:    "STRING",
	TypeBoolean:   "BOOLEAN",
	TypeInt8:      "INT8",
	TypeInt16:     "INT16",
	TypeInt32:     "INT32",
	TypeInt64:     "INT64",
	TypeFloat:     "FLOAT",
	TypeDouble:    "DOUBLE",
	TypeBytes:     "BYTES",
	TypeDate:      "DATE",
	TypeTime:      "TIME",
	TypeTimestamp: "TIMESTAMP",
	TypeAvro:      "AVRO",
	TypeJSON:      "JSON",
	TypeProtobuf:  "PROTOBUF",
	TypeKeyValue:  "KEY_VALUE",
}

// String returns the canonical upper-case name of the type, as used in the
// persisted record format and in administrative APIs.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE(%d)", int8(t))
}

// IsPrimitive reports whether the type is a primitive (non-structured) type.
// TypeNone counts as primitive.
func (t Type) IsPrimitive() bool {
	switch t {
	case TypeAvro, TypeJSON, TypeProtobuf, TypeKeyValue:
		return false
	default:
		return true
	}
}

// ParseType returns the Type named by s, matching the canonical names
// produced by Type.String.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return TypeNone, fmt.Errorf("schema: unknown schema type %q", s)
}

// Data is one schema revision as submitted by a client or resolved from
// storage: the declared type, the opaque payload, the submitting user, the
// deleted flag and the revision properties.
//
// Data is a value type; the registry never mutates a Data after it has been
// appended to a lineage.
type Data struct {
	// Type is the declared schema kind. TypeNone for tombstones.
	Type Type

	// Payload is the opaque schema definition. Empty for tombstones.
	Payload []byte

	// User is the principal that submitted the revision.
	User string

	// Deleted marks the revision as a tombstone.
	Deleted bool

	// Props carries optional revision metadata. Keys are unique.
	Props map[string]string
}

// Version is the storage-native opaque encoding of a revision number.
// Only the storage layer knows how to decode it back into an ordinal; the
// registry treats it as an opaque, storage-comparable token.
type Version []byte

// Bytes returns the raw encoded form of the version.
func (v Version) Bytes() []byte { return []byte(v) }

// SchemaAndMetadata pairs a resolved schema revision with the identity it
// belongs to and its storage-assigned version. It is a read-time projection
// and is never persisted directly.
type SchemaAndMetadata struct {
	ID      string
	Schema  Data
	Version Version
}

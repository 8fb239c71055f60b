package schema

import "testing"

func TestHashOf_IgnoresUserAndProps(t *testing.T) {
	a := Data{
		Type:    TypeAvro,
		Payload: []byte(`{"type":"record"}`),
		User:    "alice",
		Props:   map[string]string{"env": "prod"},
	}
	b := Data{
		Type:    TypeAvro,
		Payload: []byte(`{"type":"record"}`),
		User:    "bob",
	}

	if !HashOf(a).Equal(HashOf(b)) {
		t.Error("expected equal hashes for identical (type, payload)")
	}
}

func TestHashOf_TypeContributes(t *testing.T) {
	payload := []byte(`{}`)
	a := Data{Type: TypeAvro, Payload: payload}
	b := Data{Type: TypeJSON, Payload: payload}

	if HashOf(a).Equal(HashOf(b)) {
		t.Error("expected different hashes for different types")
	}
}

func TestHashOf_PayloadContributes(t *testing.T) {
	a := Data{Type: TypeAvro, Payload: []byte("a")}
	b := Data{Type: TypeAvro, Payload: []byte("b")}

	if HashOf(a).Equal(HashOf(b)) {
		t.Error("expected different hashes for different payloads")
	}
}

func TestHash_BytesRoundTrip(t *testing.T) {
	h := HashOf(Data{Type: TypeJSON, Payload: []byte("x")})
	if len(h.Bytes()) != 32 {
		t.Errorf("expected 32-byte digest, got %d", len(h.Bytes()))
	}
}

func TestType_IsPrimitive(t *testing.T) {
	primitives := []Type{TypeNone, TypeString, TypeBoolean, TypeInt64, TypeBytes, TypeTimestamp}
	for _, p := range primitives {
		if !p.IsPrimitive() {
			t.Errorf("expected %s to be primitive", p)
		}
	}
	structured := []Type{TypeAvro, TypeJSON, TypeProtobuf, TypeKeyValue}
	for _, s := range structured {
		if s.IsPrimitive() {
			t.Errorf("expected %s to be structured", s)
		}
	}
}

func TestParseType_RoundTrip(t *testing.T) {
	for typ := range typeNames {
		parsed, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", typ, err)
		}
		if parsed != typ {
			t.Errorf("expected %s, got %s", typ, parsed)
		}
	}

	if _, err := ParseType("BOGUS"); err == nil {
		t.Error("expected error for unknown type name")
	}
}

package compatibility

import (
	"testing"

	"github.com/Aleph-Alpha/schema-registry/v1/schema"
)

// recordingCheck is a test double capturing what it was dispatched with.
type recordingCheck struct {
	calls     int
	lastCount int
	fail      bool
}

func (r *recordingCheck) CheckCompatible(existing []schema.Data, candidate schema.Data, strategy Strategy) error {
	r.calls++
	r.lastCount = len(existing)
	if r.fail {
		return Incompatible("forced failure")
	}
	return nil
}

func TestStrategy_IsTransitive(t *testing.T) {
	transitive := []Strategy{BackwardTransitive, ForwardTransitive, FullTransitive}
	for _, s := range transitive {
		if !s.IsTransitive() {
			t.Errorf("expected %s to be transitive", s)
		}
	}
	nonTransitive := []Strategy{AutoUpdateDisabled, AlwaysCompatible, Backward, Forward, Full}
	for _, s := range nonTransitive {
		if s.IsTransitive() {
			t.Errorf("expected %s to be non-transitive", s)
		}
	}
}

func TestParseStrategy_RoundTrip(t *testing.T) {
	for strat := range strategyNames {
		parsed, err := ParseStrategy(strat.String())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", strat, err)
		}
		if parsed != strat {
			t.Errorf("expected %s, got %s", strat, parsed)
		}
	}

	if _, err := ParseStrategy("BOGUS"); err == nil {
		t.Error("expected error for unknown strategy name")
	}
}

func TestRegistry_DispatchesToRegisteredCheck(t *testing.T) {
	reg := NewRegistry()
	check := &recordingCheck{}
	reg.Register(schema.TypeAvro, check)

	err := reg.ForType(schema.TypeAvro).CheckCompatible(
		[]schema.Data{{Type: schema.TypeAvro}}, schema.Data{Type: schema.TypeAvro}, Backward)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if check.calls != 1 {
		t.Errorf("expected 1 call, got %d", check.calls)
	}
	if check.lastCount != 1 {
		t.Errorf("expected 1 existing revision, got %d", check.lastCount)
	}
}

func TestRegistry_FallsBackToDefault(t *testing.T) {
	reg := NewRegistry()

	// No checker registered: only AlwaysCompatible passes.
	err := reg.ForType(schema.TypeJSON).CheckCompatible(nil, schema.Data{Type: schema.TypeJSON}, AlwaysCompatible)
	if err != nil {
		t.Fatalf("unexpected error under AlwaysCompatible: %v", err)
	}

	err = reg.ForType(schema.TypeJSON).CheckCompatible(nil, schema.Data{Type: schema.TypeJSON}, Backward)
	if !IsIncompatible(err) {
		t.Fatalf("expected incompatibility from default check, got %v", err)
	}
}

func TestIsIncompatible(t *testing.T) {
	if !IsIncompatible(Incompatible("x")) {
		t.Error("expected Incompatible error to be detected")
	}
	if IsIncompatible(nil) {
		t.Error("nil is not an incompatibility")
	}
}

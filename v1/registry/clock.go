package registry

import "time"

// Clock is the injectable time source used for revision timestamps. It is
// used only for record metadata, never for ordering: ordering is by
// storage-assigned revision number.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock. It is the default when no clock is
// injected.
func SystemClock() Clock { return systemClock{} }

// FixedClock returns a clock frozen at the given instant, for deterministic
// timestamps in tests.
func FixedClock(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

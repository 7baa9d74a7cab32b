package testutil

import "testing"

// Given, When, Then and And run fn as a named subtest so scenario tests read
// as a sequence of steps in `go test -v` output.
func Given(t *testing.T, desc string, fn func(t *testing.T)) { step(t, "Given", desc, fn) }
func When(t *testing.T, desc string, fn func(t *testing.T))  { step(t, "When", desc, fn) }
func Then(t *testing.T, desc string, fn func(t *testing.T))  { step(t, "Then", desc, fn) }
func And(t *testing.T, desc string, fn func(t *testing.T))   { step(t, "And", desc, fn) }

// step stops the scenario at the first failing step; later steps depend on
// state the failed one should have produced.
func step(t *testing.T, keyword, desc string, fn func(t *testing.T)) {
	t.Helper()
	if !t.Run(keyword+" "+desc, fn) {
		t.FailNow()
	}
}

package eval

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeSeedScript creates a fake seed generator that prints a fixed value.
func writeSeedScript(t *testing.T, output string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mt")
	script := "#!/bin/sh\necho " + output + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOracleSeedSource_ParsesOutput(t *testing.T) {
	src := NewOracleSeedSource(writeSeedScript(t, "1234567890"))
	src.Sleep = func(time.Duration) {}

	seed, err := src.Next()
	if err != nil {
		t.Fatal(err)
	}
	if seed != 1234567890 {
		t.Errorf("seed = %d, want 1234567890", seed)
	}
}

func TestOracleSeedSource_PausesBeforeEveryInvocation(t *testing.T) {
	// Calling the generator twice within the same wall-clock second yields a
	// repeated seed, so Next must pause one second before every call.
	src := NewOracleSeedSource(writeSeedScript(t, "42"))
	var pauses []time.Duration
	src.Sleep = func(d time.Duration) { pauses = append(pauses, d) }

	for i := 0; i < 3; i++ {
		if _, err := src.Next(); err != nil {
			t.Fatal(err)
		}
	}
	if len(pauses) != 3 {
		t.Fatalf("paused %d times, want 3", len(pauses))
	}
	for i, d := range pauses {
		if d != time.Second {
			t.Errorf("pause %d = %v, want 1s", i, d)
		}
	}
}

func TestOracleSeedSource_MissingBinary(t *testing.T) {
	src := NewOracleSeedSource(filepath.Join(t.TempDir(), "missing"))
	src.Sleep = func(time.Duration) {}
	if _, err := src.Next(); err == nil {
		t.Error("expected error for missing generator binary")
	}
}

func TestOracleSeedSource_NonIntegerOutput(t *testing.T) {
	src := NewOracleSeedSource(writeSeedScript(t, "not-a-number"))
	src.Sleep = func(time.Duration) {}
	if _, err := src.Next(); err == nil {
		t.Error("expected error for non-integer generator output")
	}
}

package version

import "testing"

func TestString(t *testing.T) {
	old := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = old[0], old[1], old[2] })

	Version, Commit, Date = "v0.3.1", "abc123", "2026-10-17"
	if got, want := String(), "v0.3.1 (commit abc123, built 2026-10-17)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

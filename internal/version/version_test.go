package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate may legitimately be empty
	_ = GitCommit
	_ = BuildDate
}

func TestColored_Disabled(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("Colored(false) = %q", got)
	}
}

func TestColored_KeepsParts(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-dev"
	got := Colored(true)
	for _, part := range []string{"1", "2", "3", "-dev"} {
		if !strings.Contains(got, part) {
			t.Errorf("Colored(true) = %q, missing %q", got, part)
		}
	}
}

func TestColored_NonSemverUnchanged(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	for _, v := range []string{"dev", "1.2", "2024.01.15.1"} {
		Version = v
		if got := Colored(true); got != v {
			t.Errorf("Colored(true) with %q = %q", v, got)
		}
	}
}

// BenchmarkColored benchmarks rendering the version string
func BenchmarkColored(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Colored(true)
	}
}

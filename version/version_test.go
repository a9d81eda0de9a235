package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate }()

	Version, GitCommit, BuildDate = "dev", "abc123", "unknown"
	if got := GetFullVersion(); got != "dev (abc123)" {
		t.Errorf("GetFullVersion() = %q", got)
	}

	Version, BuildDate = "1.2.0", "2025-01-02"
	if got := GetFullVersion(); got != "1.2.0 (abc123, built 2025-01-02)" {
		t.Errorf("GetFullVersion() = %q", got)
	}
	if got := GetVersion(); got != "1.2.0" {
		t.Errorf("GetVersion() = %q", got)
	}
}

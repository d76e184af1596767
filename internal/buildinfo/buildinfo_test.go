package buildinfo

import "testing"

func TestSummary(t *testing.T) {
	origVersion, origCommit := Version, CommitHash
	t.Cleanup(func() { Version, CommitHash = origVersion, origCommit })

	tests := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"1.2.0", "", "1.2.0"},
		{"1.2.0", "0123456789abcdef", "1.2.0 (0123456)"},
		{"1.2.0", "abc", "1.2.0 (abc)"},
	}
	for _, tt := range tests {
		Version, CommitHash = tt.version, tt.commit
		if got := Summary(); got != tt.want {
			t.Errorf("Summary() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

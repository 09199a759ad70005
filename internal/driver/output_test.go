package driver

import "testing"

func TestOutputPathFor(t *testing.T) {
	tests := []struct {
		input  string
		suffix string
		want   string
	}{
		{"dump.netlog", "", "dump.json"},
		{"dump.netlog", ".json", "dump.json"},
		{"dir/dump.netlog", ".json", "dir/dump.json"},
		{"dump", ".json", "dump.json"},
		{"dump.netlog", ".fixed.json", "dump.fixed.json"},
		{"archive.tar.netlog", ".json", "archive.tar.json"},
	}
	for _, tt := range tests {
		if got := OutputPathFor(tt.input, tt.suffix); got != tt.want {
			t.Fatalf("OutputPathFor(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

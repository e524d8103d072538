package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~", home},
		{"~/.config/moodatlas/moodatlas.db", filepath.Join(home, ".config/moodatlas/moodatlas.db")},
		{"/var/lib/moodatlas.db", "/var/lib/moodatlas.db"},
		{"relative/path.db", "relative/path.db"},
		{"~other/file", "~other/file"},
		{"postgres://localhost/moodatlas", "postgres://localhost/moodatlas"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

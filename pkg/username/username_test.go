// Package username provides unit tests for username normalization.
package username

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handy-recon/internal/domain"
)

func TestNormalizer_Normalize(t *testing.T) {
	n := New(32)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "john_doe", want: "john_doe"},
		{name: "trimmed", input: "  admin123\n", want: "admin123"},
		{name: "dot allowed", input: "jane.doe", want: "jane.doe"},
		{name: "empty", input: "", wantErr: domain.ErrEmptyUsername},
		{name: "whitespace only", input: " \t\n", wantErr: domain.ErrEmptyUsername},
		{name: "inner space", input: "john doe", wantErr: domain.ErrInvalidUsername},
		{name: "slash", input: "john/doe", wantErr: domain.ErrInvalidUsername},
		{name: "query", input: "john?x=1", wantErr: domain.ErrInvalidUsername},
		{name: "dot segment", input: "..", wantErr: domain.ErrInvalidUsername},
		{name: "percent escape", input: "john%2Fdoe", wantErr: domain.ErrInvalidUsername},
		{name: "too long", input: strings.Repeat("a", 33), wantErr: domain.ErrInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Normalize(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizer_IsTooLong(t *testing.T) {
	n := New(5)

	if !n.IsTooLong("abcdef") {
		t.Error("expected true for name > maxLength")
	}

	if n.IsTooLong("abcde") {
		t.Error("expected false for name == maxLength")
	}

	// Length is counted in characters, not bytes.
	if n.IsTooLong("ééééé") {
		t.Error("expected false for 5 multi-byte characters")
	}
}

func TestNormalizer_DefaultMaxLength(t *testing.T) {
	n := New(0)
	if _, err := n.Normalize(strings.Repeat("a", DefaultMaxLength)); err != nil {
		t.Errorf("unexpected error at default max length: %v", err)
	}
}

func TestNormalizer_IsEmpty(t *testing.T) {
	n := New(10)

	if !n.IsEmpty("\n\t  ") {
		t.Error("expected true for whitespace with newlines/tabs")
	}

	if n.IsEmpty("x") {
		t.Error("expected false for non-empty string")
	}
}

func TestReadList(t *testing.T) {
	input := "test_user\n\n# comment\n  admin123  \njohn_doe\n"

	names, err := ReadList(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadList() error = %v", err)
	}

	want := []string{"test_user", "admin123", "john_doe"}
	if len(names) != len(want) {
		t.Fatalf("ReadList() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.txt")
	if err := os.WriteFile(path, []byte("alice\nbob\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	names, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("ReadFile() returned %d names, want 2", len(names))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

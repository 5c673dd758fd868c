package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNonce(t *testing.T) {
	for _, digits := range []int{0, 1, 8, 32} {
		nonce := Nonce(digits)
		if len(nonce) != digits {
			t.Errorf("Nonce(%d) length = %d", digits, len(nonce))
		}
		for _, c := range nonce {
			if !strings.ContainsRune(hexDigits, c) {
				t.Errorf("Nonce(%d) contains non-hex character %q", digits, c)
			}
		}
	}
}

func TestNonceVaries(t *testing.T) {
	seen := map[string]struct{}{}
	for range 10 {
		seen[Nonce(16)] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("Nonce(16) produced the same value 10 times")
	}
}

func TestLoadNaughtyStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blns.json")
	if err := os.WriteFile(path, []byte(`["", "DROP TABLE users", "\u0000"]`), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	naughty, err := LoadNaughtyStrings(path)
	if err != nil {
		t.Fatalf("LoadNaughtyStrings returned error: %v", err)
	}
	if len(naughty) != 3 {
		t.Fatalf("LoadNaughtyStrings returned %d strings, want 3", len(naughty))
	}
	if naughty[1] != "DROP TABLE users" {
		t.Errorf("naughty[1] = %q", naughty[1])
	}
}

func TestLoadNaughtyStringsMissingFile(t *testing.T) {
	if _, err := LoadNaughtyStrings(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadNaughtyStrings on missing file succeeded, want error")
	}
}

func TestLoadNaughtyStringsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blns.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := LoadNaughtyStrings(path); err == nil {
		t.Error("LoadNaughtyStrings on invalid JSON succeeded, want error")
	}
}

func TestLoadShippedFixture(t *testing.T) {
	naughty, err := LoadNaughtyStrings(filepath.Join("..", DefaultNaughtyStringsPath))
	if err != nil {
		t.Fatalf("LoadNaughtyStrings returned error: %v", err)
	}
	if len(naughty) == 0 {
		t.Error("shipped fixture is empty")
	}
}

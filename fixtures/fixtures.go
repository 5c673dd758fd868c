package fixtures

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
)

// DefaultNaughtyStringsPath is where the harness checkout keeps the fixture.
const DefaultNaughtyStringsPath = "data/blns.json"

const hexDigits = "0123456789abcdef"

// Nonce returns a random lowercase hex string of the given length, for
// naming throwaway test resources.
func Nonce(digits int) string {
	b := make([]byte, digits)
	for i := range b {
		b[i] = hexDigits[rand.IntN(len(hexDigits))]
	}
	return string(b)
}

// LoadNaughtyStrings reads the "big list of naughty strings" fixture, a JSON
// array of strings known to break naive input handling. Callers load it once
// at startup and pass the slice to consumers by reference.
func LoadNaughtyStrings(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read naughty strings fixture: %w", err)
	}

	var naughty []string
	if err := json.Unmarshal(data, &naughty); err != nil {
		return nil, fmt.Errorf("failed to parse naughty strings fixture %q: %w", path, err)
	}

	return naughty, nil
}

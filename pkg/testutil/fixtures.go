package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Client IDs shared by the reference-data fixtures.
const (
	ClientWithHistory  = "53535"
	ClientOriginated   = "777"
	ClientLatePayments = "4242"
)

// WriteCSV writes a CSV file with the given header and rows into dir and
// returns its path.
func WriteCSV(t *testing.T, dir, name string, header []string, rows ...[]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')
	for _, r := range rows {
		b.WriteString(strings.Join(r, ","))
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

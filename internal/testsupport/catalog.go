package testsupport

import (
	"testing"

	"engage/internal/catalog"
)

// MustLoadCatalog scans root and fails the test on error.
func MustLoadCatalog(t testing.TB, root string) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Load(root)
	if err != nil {
		t.Fatalf("load catalog %s: %v", root, err)
	}
	return cat
}

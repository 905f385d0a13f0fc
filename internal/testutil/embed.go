// Package testutil holds the conversion fixtures shared by the package
// tests. Each fixture has a sibling <name>.golden file with the expected
// output or error text.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// Dir is the fixture directory relative to this package.
const Dir = "internal/testutil/testdata"

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Fixtures returns the names of the fixtures with extension ext, such as
// ".xml", in lexical order.
func Fixtures(ext string) ([]string, error) {
	matches, err := fs.Glob(TestdataFS, "testdata/*"+ext)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = path.Base(m)
	}
	sort.Strings(names)
	return names, nil
}

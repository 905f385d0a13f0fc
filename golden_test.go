package xmljson_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-xmljson"
	"github.com/KimNorgaard/go-xmljson/internal/testutil"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

func TestGolden(t *testing.T) {
	xmlFiles, err := testutil.Fixtures(".xml")
	require.NoError(t, err)
	jsonFiles, err := testutil.Fixtures(".json")
	require.NoError(t, err)
	require.NotEmpty(t, xmlFiles)
	require.NotEmpty(t, jsonFiles)

	for _, file := range append(xmlFiles, jsonFiles...) {
		t.Run(file, func(t *testing.T) {
			src, err := testutil.ReadTestData(file)
			require.NoError(t, err)

			var actual []byte
			if strings.HasSuffix(file, ".xml") {
				actual, err = xmljson.FromXML(bytes.NewReader(src), xmljson.Indent(2))
			} else {
				actual, err = xmljson.ToXML(src, xmljson.Indent(2))
			}
			if err != nil {
				// Fixtures that are expected to fail keep the error text
				// in their golden file.
				actual = []byte(err.Error())
			}

			goldenFile := file + ".golden"
			if *update {
				err := os.WriteFile(filepath.Join(testutil.Dir, goldenFile), actual, 0o644)
				require.NoError(t, err)
			}

			expected, err := testutil.ReadTestData(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")

			require.Equal(t, string(expected), string(actual), "Conversion output does not match golden file.")
		})
	}
}

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KimNorgaard/go-xmljson"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	// colored text would not read back
	opts := append(cfg.convOpts(nil), xmljson.Colors(false))
	failed := 0
	for _, file := range args {
		ok, err := checkFile(cfg, cc, file, opts)
		if err != nil {
			return err
		}
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		theLog.Warn("round trip mismatch", "failed", failed, "total", len(args))
		return cli.ExitCodeErr(1)
	}
	return nil
}

func checkFile(cfg *CheckConfig, cc *cli.Context, file string, opts []xmljson.Option) (bool, error) {
	r, closer, err := openInput(cc.In, file)
	if err != nil {
		return false, err
	}
	defer closer()
	diff, err := roundTrip(r, opts)
	if err != nil {
		return false, fmt.Errorf("error processing %s: %w", file, err)
	}
	if diff == "" {
		theLog.Info("round trip ok", "file", file)
		return true, nil
	}
	if !cfg.Quiet {
		fmt.Fprintf(cc.Out, "--- %s\n%s\n", file, diff)
	}
	return false, nil
}

// roundTrip converts the XML read from r to a value tree, back to XML and
// to a value tree again. It returns a textual diff of the two value trees,
// or "" when they agree.
func roundTrip(r io.Reader, opts []xmljson.Option) (string, error) {
	first, err := xmljson.FromXML(r, opts...)
	if err != nil {
		return "", err
	}
	markup, err := xmljson.ToXML(first, opts...)
	if err != nil {
		return "", fmt.Errorf("converting back to XML: %w", err)
	}
	second, err := xmljson.FromXML(bytes.NewReader(markup), opts...)
	if err != nil {
		return "", fmt.Errorf("re-reading converted XML: %w", err)
	}
	if bytes.Equal(first, second) {
		return "", nil
	}
	return textDiff(string(first), string(second)), nil
}

func textDiff(from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	var buf bytes.Buffer
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		default:
			prefix = " "
		}
		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

func splitLines(s string) []string {
	lines := bytes.Split(bytes.TrimSuffix([]byte(s), []byte("\n")), []byte("\n"))
	res := make([]string, len(lines))
	for i, l := range lines {
		res[i] = string(l)
	}
	return res
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/KimNorgaard/go-xmljson"

	"github.com/scott-cotton/cli"
)

// convertFunc converts one input document to its output text.
type convertFunc func(in io.Reader) ([]byte, error)

func toJSON(cfg *ToJSONConfig, cc *cli.Context, args []string) error {
	args, err := cfg.ToJSON.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.opts(cc.Out)
	conv := func(in io.Reader) ([]byte, error) {
		return xmljson.FromXML(in, opts...)
	}
	return convertAll(cc, args, conv)
}

func toXML(cfg *ToXMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.ToXML.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.opts(cc.Out)
	conv := func(in io.Reader) ([]byte, error) {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		return xmljson.ToXML(data, opts...)
	}
	return convertAll(cc, args, conv)
}

func convertAll(cc *cli.Context, files []string, conv convertFunc) error {
	if len(files) == 0 {
		return convertReader(cc.Out, cc.In, conv)
	}
	return convertFiles(cc, files, conv)
}

func convertFiles(cc *cli.Context, files []string, conv convertFunc) error {
	for _, file := range files {
		if err := convertFile(cc, file, conv); err != nil {
			return err
		}
	}
	return nil
}

func convertFile(cc *cli.Context, file string, conv convertFunc) error {
	r, closer, err := openInput(cc.In, file)
	if err != nil {
		return err
	}
	defer closer()
	if err := convertReader(cc.Out, r, conv); err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return nil
}

func convertReader(w io.Writer, r io.Reader, conv convertFunc) error {
	out, err := conv(r)
	if err != nil {
		return err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

// openInput opens file for reading; "-" selects stdin.
func openInput(stdin io.Reader, file string) (io.Reader, func() error, error) {
	if file == "-" {
		return stdin, func() error { return nil }, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	return f, f.Close, nil
}

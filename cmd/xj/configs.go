package main

import (
	"io"
	"os"

	"github.com/KimNorgaard/go-xmljson"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='colorize JSON output'"`
	Y       bool `cli:"name=y aliases=yaml desc='read and write value trees as yaml'"`
	Compact bool `cli:"name=c aliases=compact desc='write compact output'"`
	Indent  int  `cli:"name=indent desc='spaces per nesting level'"`
	Depth   int  `cli:"name=depth desc='maximum nesting depth (0 is unlimited)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// convOpts returns the conversion options shared by all subcommands. w is
// the destination of the output and decides whether colors apply.
func (cfg *MainConfig) convOpts(w io.Writer) []xmljson.Option {
	var res []xmljson.Option
	if cfg.Y {
		res = append(res, xmljson.Format(xmljson.FormatYAML))
	}
	switch {
	case cfg.Compact:
		res = append(res, xmljson.Indent(0))
	case cfg.Indent > 0:
		res = append(res, xmljson.Indent(cfg.Indent))
	}
	if cfg.Depth > 0 {
		res = append(res, xmljson.MaxDepth(cfg.Depth))
	}
	if cfg.colors(w) {
		res = append(res, xmljson.Colors(true))
	}
	return res
}

func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			if opt.Value != nil {
				return false
			}
			break
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type ToJSONConfig struct {
	*MainConfig
	Whitespace bool `cli:"name=ws desc='keep whitespace-only text'"`

	ToJSON *cli.Command
}

func (cfg *ToJSONConfig) opts(w io.Writer) []xmljson.Option {
	return append(cfg.convOpts(w), xmljson.PreserveWhitespace(cfg.Whitespace))
}

type ToXMLConfig struct {
	*MainConfig
	Root   string `cli:"name=root desc='wrap top-level properties in this element'"`
	NoDecl bool   `cli:"name=nodecl desc='omit the XML declaration'"`

	ToXML *cli.Command
}

func (cfg *ToXMLConfig) opts(w io.Writer) []xmljson.Option {
	res := append(cfg.convOpts(w), xmljson.OmitDeclaration(cfg.NoDecl))
	if cfg.Root != "" {
		res = append(res, xmljson.RootElement(cfg.Root))
	}
	return res
}

type CheckConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only set the exit status'"`

	Check *cli.Command
}

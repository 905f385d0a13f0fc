package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "xj").
		WithSynopsis("xj [opts] command [opts] [files]").
		WithDescription("xj converts between XML and JSON value trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return xjMain(cfg, cc, args)
		}).
		WithSubs(
			ToJSONCommand(cfg),
			ToXMLCommand(cfg),
			CheckCommand(cfg))
}

func ToJSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ToJSONConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("tojson").
		WithAliases("j", "json").
		WithSynopsis("tojson [-ws] [files]").
		WithDescription("Convert XML documents to JSON (or YAML with -y).").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toJSON(cfg, cc, args)
		})
	cfg.ToJSON = cmd
	return cmd
}

func ToXMLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ToXMLConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("toxml").
		WithAliases("x", "xml").
		WithSynopsis("toxml [-root name] [-nodecl] [files]").
		WithDescription("Convert JSON (or YAML with -y) value trees to XML.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toXML(cfg, cc, args)
		})
	cfg.ToXML = cmd
	return cmd
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("check").
		WithAliases("c").
		WithSynopsis("check [-q] [files]").
		WithDescription("Convert XML documents to JSON and back, reporting any difference.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
	cfg.Check = cmd
	return cmd
}

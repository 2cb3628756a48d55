package main

import (
	"context"
	"flag"
	"os"
)

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root directory")
	format := fs.String("format", "text", "output format (json or text)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}

	e, err := openEngine(*root, false)
	if err != nil {
		return err
	}
	defer e.Close()

	result, err := e.Build(context.Background())
	if err != nil {
		return err
	}
	switch *format {
	case "json":
		return printBuildJSON(os.Stdout, result)
	default:
		return printBuildText(os.Stdout, result)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
)

func runRefs(args []string) error {
	fs := flag.NewFlagSet("refs", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root directory")
	format := fs.String("format", "text", "output format (json or text)")
	file := fs.String("file", "", "file to look up (root-relative)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	e, err := openEngine(*root, true)
	if err != nil {
		return err
	}
	defer e.Close()

	refs, err := e.Referencers(*file)
	if err != nil {
		return err
	}
	switch *format {
	case "json":
		return printRefsJSON(os.Stdout, refs)
	default:
		return printRefsText(os.Stdout, refs)
	}
}

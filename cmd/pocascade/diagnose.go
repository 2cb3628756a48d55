package main

import (
	"context"
	"flag"
	"os"

	"github.com/ryotapoi/pocascade/internal/core"
)

func runDiagnose(args []string) error {
	fs := flag.NewFlagSet("diagnose", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root directory")
	format := fs.String("format", "text", "output format (json or text)")
	fields := fs.String("fields", "", "comma-separated fields to output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := validateFormat(*format); err != nil {
		return err
	}

	fieldList := parseFields(*fields)
	if err := validateFields(fieldList, validDiagnoseFieldsCLI, "diagnose"); err != nil {
		return err
	}

	e, err := openEngine(*root, true)
	if err != nil {
		return err
	}
	defer e.Close()

	result, err := e.Diagnose(context.Background(), core.DiagnoseOptions{Fields: fieldList})
	if err != nil {
		return err
	}

	switch *format {
	case "json":
		return printDiagnoseJSON(os.Stdout, result, fieldList)
	default:
		return printDiagnoseText(os.Stdout, result, fieldList)
	}
}

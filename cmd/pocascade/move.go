package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ryotapoi/pocascade/internal/core"
)

func runMove(args []string) error {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root directory")
	format := fs.String("format", "text", "output format (json or text)")
	from := fs.String("from", "", "source file path (root-relative)")
	to := fs.String("to", "", "destination file path (root-relative)")
	name := fs.String("name", "", "new basename in the source directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := validateFormat(*format); err != nil {
		return err
	}
	if *from == "" {
		return fmt.Errorf("--from is required")
	}
	if *to == "" && *name == "" {
		return fmt.Errorf("--to or --name is required")
	}

	e, err := openEngine(*root, true)
	if err != nil {
		return err
	}
	defer e.Close()

	moved, err := e.Move(context.Background(), core.MoveRequest{
		Path:   *from,
		Update: core.Update{Path: *to, Name: *name},
	})
	if err != nil {
		return err
	}
	refs, err := e.Referencers(moved.Path())
	if err != nil {
		return err
	}
	result := moveResult{From: core.NormalizePath(*from), To: moved.Path(), Referencers: refs}
	switch *format {
	case "json":
		return printMoveJSON(os.Stdout, result)
	default:
		return printMoveText(os.Stdout, result)
	}
}

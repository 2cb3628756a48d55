package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/ryotapoi/pocascade/internal/core"
)

func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root directory")
	isMove := fs.Bool("is-move", false, "delete is one step of a move; skip the reference check")
	var files multiString
	fs.Var(&files, "file", "file to delete (can be specified multiple times; deleted as one batch)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("--file is required")
	}

	e, err := openEngine(*root, true)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.DeleteAll(context.Background(), files, core.Options{IsMove: *isMove})
}

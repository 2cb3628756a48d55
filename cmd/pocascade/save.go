package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

func runSave(args []string) error {
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	root := fs.String("root", ".", "workspace root directory")
	file := fs.String("file", "", "file to write (root-relative)")
	input := fs.String("input", "-", "read content from this file; - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	content, err := readInput(*input)
	if err != nil {
		return err
	}

	e, err := openEngine(*root, true)
	if err != nil {
		return err
	}
	defer e.Close()

	_, err = e.Save(context.Background(), *file, content)
	return err
}

func readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

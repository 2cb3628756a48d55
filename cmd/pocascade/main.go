package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ryotapoi/pocascade/internal/core"
)

var version = "dev"

// logger is shared by all commands. It stays nil in tests, which the engine treats as
// "discard".
var logger *zap.Logger

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()
	l, err := newLogger(os.Getenv("POCASCADE_LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger = l
	defer logger.Sync()

	switch os.Args[1] {
	case "build":
		err = runBuild(os.Args[2:])
	case "move":
		err = runMove(os.Args[2:])
	case "delete":
		err = runDelete(os.Args[2:])
	case "save":
		err = runSave(os.Args[2:])
	case "refs":
		err = runRefs(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "diagnose":
		err = runDiagnose(os.Args[2:])
	case "--version":
		printVersion(os.Stdout)
		return
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		printError(os.Stderr, err)
		logger.Sync()
		os.Exit(1)
	}
}

// newLogger builds a console logger on stderr. An empty level means warn.
func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.WarnLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("invalid POCASCADE_LOG_LEVEL: %q", level)
		}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	var cerr *core.CascadeUpdateError
	if errors.As(err, &cerr) {
		for _, p := range cerr.Failed {
			fmt.Fprintf(w, "  not updated: %s\n", p)
		}
	}
	var rerr *core.ReferencedArtifactError
	if errors.As(err, &rerr) {
		for _, p := range rerr.Referencers {
			fmt.Fprintf(w, "  referenced by: %s\n", p)
		}
	}
}

func printVersion(w io.Writer) {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	fmt.Fprintf(w, "pocascade version %s\n", v)
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: pocascade <command> [options]

Index Commands:
  build      Build the reference index from the workspace
  move       Move or rename an artifact and update everything that references it
  delete     Delete artifacts that nothing references
  save       Write an artifact and record what it requires

Query Commands:
  refs       List the artifacts that reference a file
  stats      Show workspace statistics
  diagnose   Show dangling references and unused artifacts

Run 'pocascade <command> --help' for command-specific help.
Use 'pocascade --version' for version information.
Set POCASCADE_LOG_LEVEL (debug, info, warn, error) to control logging.
`)
}

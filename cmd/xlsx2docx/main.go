package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args to a command and returns the process exit code.
// Without a known command name, args are a generate invocation.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch args[1] {
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "xlsx2docx %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(args[2:], env)
	case "inspect":
		err = runInspect(ctx, args[2:], env)
	case "preview":
		err = runPreview(ctx, args[2:], env)
	default:
		err = runGenerate(ctx, args[1:], env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

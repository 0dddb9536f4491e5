// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/leeovery/todo/internal/cli"
)

// version is populated at build time via -ldflags.
var version = "dev"

func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			return mv
		}
	}
	return version
}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to determine working directory: %s\n", err)
		os.Exit(1)
	}

	app := cli.NewApp(os.Stdin, os.Stdout, os.Stderr, wd, cli.WithVersion(buildVersion()))
	os.Exit(app.Run(context.Background(), os.Args))
}

package main

import (
	"fmt"
	"os"
)

const usageText = `drafter drives AI-assisted document projects from the terminal.

Usage:
  drafter <command> [flags]

Commands:
  ui        run the interactive terminal UI
  config    print configuration (effective or defaults)
  projects  list projects
  export    download a project's generated document
  help      show help

Flags:
  -h, --help   show help

Credentials:
  projects and export read --username/--password, falling back to the
  DRAFTER_USERNAME and DRAFTER_PASSWORD environment variables.

Examples:
  drafter ui
  drafter config --format toml
  drafter projects --username ana
  drafter export 12 --out ./exports
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"orgsh/internal/cli"
	"orgsh/internal/config"
	"orgsh/internal/vocabulary"
)

func main() {
	os.Exit(run())
}

func run() int {
	command := "repl"
	args := os.Args[1:]
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	if command == "help" || command == "--help" || command == "-h" {
		printUsage()
		return 0
	}

	registry, err := vocabulary.DefaultRegistry()
	if err != nil {
		log.Printf("Failed to build vocabulary: %v", err)
		return 1
	}

	ctx := context.Background()

	switch command {
	case "repl":
		backend, closeBackend, err := cli.NewBackend()
		if err != nil {
			log.Printf("Failed to initialize store: %v", err)
			return 1
		}
		defer closeBackend()
		if config.IsMemoryMode() {
			fmt.Println("Running in MEMORY mode (nothing is persisted)")
		}
		if err := cli.RunREPL(ctx, registry, backend); err != nil {
			log.Printf("REPL failed: %v", err)
			return 1
		}

	case "parse":
		if err := cli.RunParse(registry, args); err != nil {
			return 1
		}

	case "init-db":
		if err := cli.RunInitDB(ctx); err != nil {
			log.Printf("Failed to initialize database: %v", err)
			return 1
		}

	case "vocab":
		cmd := cli.VocabCommand(registry)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			return 1
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}

	return 0
}

func printUsage() {
	fmt.Println(`orgsh - business entity shell

Usage:
  orgsh [command] [args]

Commands:
  repl            Start the interactive shell (default)
  parse <line>    Resolve a command line without executing it
  init-db         Create the database schema
  vocab           Inspect the vocabulary (see 'orgsh vocab --help')
  help            Show this message

Environment:
  ORGSH_DB_CONN       PostgreSQL connection string
  ORGSH_STORE         Set to 'memory' for a non-persistent store
  ORGSH_HISTORY_FILE  REPL history location (default ~/.orgsh_history)`)
}

// Package cli implements the orgsh entry points: the interactive REPL,
// one-shot parsing, schema setup and vocabulary inspection.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"orgsh/internal/config"
	"orgsh/internal/dispatch"
	"orgsh/internal/parser"
	"orgsh/internal/session"
	"orgsh/internal/store"
	"orgsh/internal/vocabulary"
)

// RunREPL starts the interactive shell loop. It owns one session; the
// prompt tracks the session's context level.
func RunREPL(ctx context.Context, registry *vocabulary.Registry, backend dispatch.Backend) error {
	p := parser.New(registry)
	d := dispatch.New(backend)
	sessions := session.NewManager()
	sess := sessions.GetOrCreate("")
	defer sessions.Delete(sess.SessionID)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyFile := config.GetHistoryFile()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		f, err := os.Create(historyFile)
		if err != nil {
			log.Printf("Failed to save history: %v", err)
			return
		}
		defer f.Close()
		line.WriteHistory(f)
	}()

	fmt.Println("orgsh - type 'help' for commands, 'exit' to quit")
	for {
		input, err := line.Prompt(sess.GetContext().Prompt() + "> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// io.EOF on Ctrl-D
			fmt.Println()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		sess.AddHistory(input)

		switch input {
		case "exit", "quit":
			return nil
		case "help":
			printShellHelp(registry)
			continue
		case "history":
			for i, h := range sess.GetHistory() {
				fmt.Printf("%3d  %s\n", i+1, h)
			}
			continue
		}

		result, err := p.Parse(input, sess.GetContext())
		if err != nil {
			fmt.Println(RenderError(err))
			continue
		}
		outcome, err := d.Execute(ctx, result, sess.GetContext())
		if err != nil {
			fmt.Println(RenderError(err))
			continue
		}
		if outcome.NewContext != nil {
			sess.SetContext(*outcome.NewContext)
		}
		if outcome.Message != "" {
			fmt.Println(outcome.Message)
		}
	}
}

func printShellHelp(registry *vocabulary.Registry) {
	fmt.Println("Commands are <action> <entity> [target] [key=value ...]")
	fmt.Println()
	fmt.Println("Actions:   " + strings.Join(registry.Candidates(vocabulary.CategoryAction), ", "))
	fmt.Println("Entities:  " + strings.Join(registry.Candidates(vocabulary.CategoryEntity), ", "))
	fmt.Println()
	fmt.Println("Shortcuts expand on the first word: cc ACME == create company ACME")
	fmt.Println("Navigation: cd <company>, cd <app>, cd .., cd ~")
	fmt.Println("Built-ins: help, history, exit")
}

// NewBackend picks the persistence backend from the environment.
func NewBackend() (dispatch.Backend, func() error, error) {
	if config.IsMemoryMode() {
		return store.NewMemory(), func() error { return nil }, nil
	}
	s, err := store.New(config.GetConnectionString())
	if err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orgsh/internal/vocabulary"
)

// VocabCommand creates the vocab inspection command.
func VocabCommand(registry *vocabulary.Registry) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Inspect the command vocabulary",
		Long: `Inspect the vocabulary the shell resolves commands against.

Examples:
  # List every word with its aliases
  orgsh vocab list

  # List only entities
  orgsh vocab list --category=entity

  # Show what a single token resolves to
  orgsh vocab check cc`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered words and shortcuts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocabList(registry, category)
		},
	}
	listCmd.Flags().StringVar(&category, "category", "", "Filter by category (action, entity, attribute, modifier)")

	checkCmd := &cobra.Command{
		Use:   "check <token>",
		Short: "Resolve a single token against the vocabulary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocabCheck(registry, args[0])
		},
	}

	cmd.AddCommand(listCmd, checkCmd)
	return cmd
}

func runVocabList(registry *vocabulary.Registry, category string) error {
	if category != "" {
		cat := vocabulary.Category(category)
		switch cat {
		case vocabulary.CategoryAction, vocabulary.CategoryEntity,
			vocabulary.CategoryAttribute, vocabulary.CategoryModifier:
		default:
			return fmt.Errorf("unknown category %q", category)
		}
		for _, w := range registry.Words() {
			if w.Category == cat {
				printWord(w)
			}
		}
		return nil
	}

	for _, cat := range []vocabulary.Category{
		vocabulary.CategoryAction,
		vocabulary.CategoryEntity,
		vocabulary.CategoryAttribute,
		vocabulary.CategoryModifier,
	} {
		fmt.Printf("## %s\n", cat)
		for _, w := range registry.Words() {
			if w.Category == cat {
				printWord(w)
			}
		}
		fmt.Println()
	}

	fmt.Println("## shortcuts")
	for _, s := range registry.Shortcuts() {
		fmt.Printf("%-4s -> %s\n", s.Trigger, strings.Join(s.Expansion, " "))
	}
	return nil
}

func printWord(w *vocabulary.Word) {
	if len(w.Aliases) == 0 {
		fmt.Printf("%-14s %s\n", w.ID, w.Description)
		return
	}
	fmt.Printf("%-14s %s (aliases: %s)\n", w.ID, w.Description, strings.Join(w.Aliases, ", "))
}

func runVocabCheck(registry *vocabulary.Registry, token string) error {
	if s := registry.Shortcut(token); s != nil {
		fmt.Printf("%s is a shortcut for: %s\n", token, strings.Join(s.Expansion, " "))
		return nil
	}
	w := registry.Lookup(token)
	if w == nil {
		return fmt.Errorf("%q is not in the vocabulary", token)
	}
	fmt.Printf("%s: %s (%s)\n", w.ID, w.Description, w.Category)
	switch {
	case w.IsEntity():
		fmt.Printf("attributes: %s\n", strings.Join(w.Attributes, ", "))
		if w.Dynamic {
			fmt.Println("accepts arbitrary attribute keys")
		}
	case w.IsAttribute():
		fmt.Printf("entities: %s\n", strings.Join(w.Entities, ", "))
	case w.IsModifier():
		fmt.Printf("applies to: %s\n", strings.Join(w.AppliesTo, ", "))
	}
	return nil
}

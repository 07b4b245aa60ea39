package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decksmith/decksmith/internal/card"
	"github.com/decksmith/decksmith/internal/cardset"
	"github.com/decksmith/decksmith/internal/config"
	"github.com/decksmith/decksmith/internal/decklist"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [decklist]",
	Short: "Check a decklist against its card sources without building",
	Long: `Check reports every problem in a decklist instead of stopping at the first:
lines that cannot be parsed, card names no source knows, and names listed
twice. When a set file is in play it is linted first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listPath := args[0]

		// Check if the decklist exists
		if _, err := os.Stat(listPath); os.IsNotExist(err) {
			return fmt.Errorf("decklist not found: %s", listPath)
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %v", err)
		}

		fmt.Println("Check Results:")
		fmt.Println("--------------")

		// A broken set file would fail every lookup below, so lint it first.
		var warnings []string
		setPath, err := setPathFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		if setPath != "" {
			results, err := cardset.NewLinter(setPath).Lint()
			if err != nil {
				return fmt.Errorf("check error: %v", err)
			}
			if len(results.Errors) > 0 {
				fmt.Printf("❌ Set file '%s' has %d errors:\n", setPath, len(results.Errors))
				for i, err := range results.Errors {
					fmt.Printf("%d. %s\n", i+1, err)
				}
				return fmt.Errorf("check failed")
			}
			warnings = results.Warnings
		}

		resolver, err := resolverFromFlags(cmd, cfg)
		if err != nil {
			return err
		}

		problems, total, distinct, err := checkDecklist(listPath, resolver)
		if err != nil {
			return fmt.Errorf("check error: %v", err)
		}

		if len(problems) > 0 {
			fmt.Printf("❌ Decklist '%s' has %d problems:\n", listPath, len(problems))
			for i, problem := range problems {
				fmt.Printf("%d. %s\n", i+1, problem)
			}
			return fmt.Errorf("check failed")
		}

		fmt.Printf("✅ Decklist '%s' is valid: %d cards, %d distinct names.\n", listPath, total, distinct)

		if len(warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
	addSourceFlags(checkCmd)
}

// checkDecklist parses every line of the decklist, collecting problems
// instead of stopping at the first one. It returns the problems, the total
// card count and the number of distinct names.
func checkDecklist(path string, r card.Resolver) ([]string, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	var problems []string
	total := 0
	seen := make(map[string]int)

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entry, err := decklist.ParseLine(line, r)
		if err != nil {
			var perr *decklist.ParseError
			if errors.As(err, &perr) {
				perr.Line = lineNum
				problems = append(problems, perr.Error())
			} else {
				problems = append(problems, fmt.Sprintf("line %d: %v", lineNum, err))
			}
			continue
		}
		name := entry.Card.Name()
		if first, dup := seen[name]; dup {
			problems = append(problems, fmt.Sprintf("line %d (%q): card %q already listed on line %d", lineNum, trimmed, name, first))
			continue
		}
		seen[name] = lineNum
		total += entry.Count
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, err
	}
	return problems, total, len(seen), nil
}

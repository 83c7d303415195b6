package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// SearchCommand runs one lexeme search in the selected source language.
type SearchCommand struct {
	storeFlags
	Query string
	Match bool
	Open  int
}

func NewSearchCommand() *SearchCommand {
	return &SearchCommand{}
}

func (cmd *SearchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	cmd.register(fs)
	fs.BoolVar(&cmd.Match, "match", false, "Exact matches only")
	fs.IntVar(&cmd.Open, "open", 0, "Open the Nth result (1-based) and show its details")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s search [options] <query>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search lexemes in the selected source language.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s search house\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s search -match -open 1 house\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.Query = strings.TrimSpace(strings.Join(fs.Args(), " "))
	if cmd.Query == "" {
		return fmt.Errorf("search query not provided")
	}
	if cmd.Open < 0 {
		return fmt.Errorf("-open must be positive")
	}

	return nil
}

func (cmd *SearchCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	if app.Orchestrator.Stores().Languages.Selected().Source == nil {
		return fmt.Errorf("no source language selected; run '%s select-language -slot source -lang <code>' first", os.Args[0])
	}

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	results, err := app.Orchestrator.Search(ctx, cmd.Query, cmd.Match)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Printf("No lexemes found for %q\n", cmd.Query)
		return nil
	}

	fmt.Printf("%d results for %q\n\n", len(results), cmd.Query)
	for i, r := range results {
		fmt.Printf("%3d. %-12s %s", i+1, r.ID, r.Label)
		if r.Description != "" {
			fmt.Printf(" (%s)", r.Description)
		}
		fmt.Println()
	}

	if cmd.Open == 0 {
		return nil
	}
	if cmd.Open > len(results) {
		return fmt.Errorf("-open %d out of range (%d results)", cmd.Open, len(results))
	}

	fmt.Println()
	if _, err := app.Orchestrator.SelectLexeme(ctx, results[cmd.Open-1]); err != nil {
		return err
	}
	printDetails(app.Orchestrator)
	return nil
}

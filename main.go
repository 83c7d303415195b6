package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/lexiclient/internal/cli"
	"github.com/mrlokans/lexiclient/internal/config"
	"github.com/mrlokans/lexiclient/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every CLI subcommand.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP bridge
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "languages":
		cmd = cli.NewLanguagesCommand()
	case "select-language":
		cmd = cli.NewSelectLanguageCommand()
	case "search":
		cmd = cli.NewSearchCommand()
	case "lexeme":
		cmd = cli.NewLexemeCommand()
	case "login":
		cmd = cli.NewLoginCommand()
	case "logout":
		cmd = cli.NewLogoutCommand()
	case "missing-audio":
		cmd = cli.NewMissingAudioCommand()

	case "version":
		fmt.Printf("lexiclient %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve            Start the HTTP bridge (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  languages        List the language catalog and current selection\n")
	fmt.Fprintf(os.Stderr, "  select-language  Set or clear the source/target languages\n")
	fmt.Fprintf(os.Stderr, "  search           Search lexemes in the source language\n")
	fmt.Fprintf(os.Stderr, "  lexeme           Show a lexeme's glosses in the selected languages\n")
	fmt.Fprintf(os.Stderr, "  login            Sign in to contribute\n")
	fmt.Fprintf(os.Stderr, "  logout           Sign out and remove stored credentials\n")
	fmt.Fprintf(os.Stderr, "  missing-audio    List forms without a pronunciation recording\n")
	fmt.Fprintf(os.Stderr, "  version          Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Configuration is read from the environment (API_BASE_URL, STORE_DRIVER, STORE_PATH, ...).\n")
}

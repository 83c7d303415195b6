package cli

import (
	"flag"
	"fmt"
	"os"
)

// MissingAudioCommand lists lexeme forms without a pronunciation recording.
type MissingAudioCommand struct {
	storeFlags
	Language string
}

func NewMissingAudioCommand() *MissingAudioCommand {
	return &MissingAudioCommand{}
}

func (cmd *MissingAudioCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("missing-audio", flag.ExitOnError)

	cmd.register(fs)
	fs.StringVar(&cmd.Language, "lang", "", "Language code (default: the selected source language)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s missing-audio [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List lexeme forms that have no audio in a language. Requires login.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MissingAudioCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	lexemes, err := app.Orchestrator.MissingAudio(ctx, cmd.Language)
	if err != nil {
		return err
	}

	if len(lexemes) == 0 {
		fmt.Println("Every form has audio")
		return nil
	}

	fmt.Printf("%d forms without audio\n\n", len(lexemes))
	for _, l := range lexemes {
		fmt.Printf("  %-12s %-12s %-6s %s\n", l.ID, l.FormID, l.Language, l.Label)
	}
	return nil
}

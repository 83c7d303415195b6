package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

// SelectLanguageCommand fills or clears one language slot.
type SelectLanguageCommand struct {
	storeFlags
	Slot     entities.LanguageSlot
	Language string
	Clear    bool
}

func NewSelectLanguageCommand() *SelectLanguageCommand {
	return &SelectLanguageCommand{}
}

func (cmd *SelectLanguageCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("select-language", flag.ExitOnError)

	var slot string
	cmd.register(fs)
	fs.StringVar(&slot, "slot", "", "Slot to set: source, target1 or target2 (required)")
	fs.StringVar(&cmd.Language, "lang", "", "Language code or label; close misspellings are accepted")
	fs.BoolVar(&cmd.Clear, "clear", false, "Clear the slot instead of setting it")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s select-language -slot <slot> -lang <language> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Select the source or one of the two target languages.\n")
		fmt.Fprintf(os.Stderr, "Once all three are set and a lexeme is open, its details are refreshed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s select-language -slot source -lang en\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s select-language -slot target1 -lang Spanish\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s select-language -slot target2 -clear\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, ok := entities.ParseLanguageSlot(slot)
	if !ok {
		return fmt.Errorf("invalid -slot %q: want source, target1 or target2", slot)
	}
	cmd.Slot = parsed

	cmd.Language = strings.TrimSpace(cmd.Language)
	if cmd.Language == "" && !cmd.Clear {
		return fmt.Errorf("required flag -lang not provided (use -clear to unset the slot)")
	}
	if cmd.Clear {
		cmd.Language = ""
	}

	return nil
}

func (cmd *SelectLanguageCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	if cmd.Language != "" {
		if _, err := app.Orchestrator.LoadLanguages(ctx, false); err != nil {
			return err
		}
	}

	lang, err := app.Orchestrator.SelectLanguage(ctx, cmd.Slot, cmd.Language)
	if lang == nil && err != nil {
		return err
	}

	if lang == nil {
		fmt.Printf("Cleared %s\n", cmd.Slot)
	} else {
		fmt.Printf("%s: %s (%s)\n", cmd.Slot, lang.Label, lang.Code)
	}

	// The selection stuck; only the detail refresh failed.
	if err != nil && !errors.Is(err, orchestrator.ErrSuperseded) {
		fmt.Fprintf(os.Stderr, "Warning: could not refresh the open lexeme: %v\n", err)
	}
	return nil
}

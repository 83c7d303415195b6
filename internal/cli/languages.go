package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/lexiclient/internal/entities"
)

// LanguagesCommand lists the language catalog and the current selection.
type LanguagesCommand struct {
	storeFlags
	Refresh bool
}

func NewLanguagesCommand() *LanguagesCommand {
	return &LanguagesCommand{}
}

func (cmd *LanguagesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("languages", flag.ExitOnError)

	cmd.register(fs)
	fs.BoolVar(&cmd.Refresh, "refresh", false, "Fetch the catalog even if one is cached")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s languages [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List the languages offered by the lexeme API and show the current selection.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *LanguagesCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	languages, err := app.Orchestrator.LoadLanguages(ctx, cmd.Refresh)
	if err != nil {
		return err
	}

	selected := app.Orchestrator.Stores().Languages.Selected()
	marks := map[string]string{}
	for _, slot := range []entities.LanguageSlot{entities.SlotSource, entities.SlotTarget1, entities.SlotTarget2} {
		if l := selected.Slot(slot); l != nil {
			marks[l.Code] = string(slot)
		}
	}

	fmt.Printf("%d languages\n\n", len(languages))
	for _, l := range languages {
		mark := ""
		if slot, ok := marks[l.Code]; ok {
			mark = "  <- " + slot
		}
		fmt.Printf("  %-8s %-24s %s%s\n", l.Code, l.Label, l.WikidataID, mark)
	}

	if !selected.TranslationEnabled() {
		fmt.Printf("\nSelect a source and two target languages with '%s select-language'.\n", os.Args[0])
	}
	return nil
}

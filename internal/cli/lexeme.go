package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

// LexemeCommand shows the details of a lexeme in the three selected languages.
type LexemeCommand struct {
	storeFlags
	ID  string
	Tab entities.ActiveTab
	All bool
}

func NewLexemeCommand() *LexemeCommand {
	return &LexemeCommand{}
}

func (cmd *LexemeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lexeme", flag.ExitOnError)

	var tab string
	cmd.register(fs)
	fs.StringVar(&tab, "tab", "", "Show only one view: source, target1 or target2")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lexeme [options] [lexeme-id]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Show glosses of a lexeme split by the selected languages.\n")
		fmt.Fprintf(os.Stderr, "Without an id, the last opened lexeme is refreshed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s lexeme L7\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s lexeme -tab target1\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd.ID = strings.TrimSpace(fs.Arg(0))
	cmd.All = tab == ""
	cmd.Tab = entities.ParseActiveTab(tab)

	return nil
}

func (cmd *LexemeCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	orch := app.Orchestrator
	if cmd.ID != "" {
		_, err = orch.OpenLexeme(ctx, cmd.ID)
	} else {
		_, err = orch.FetchDetails(ctx)
	}
	if err != nil {
		return err
	}

	if cmd.All {
		printDetails(orch)
		return nil
	}
	orch.SetActiveTab(cmd.Tab)
	views, tab := orch.DetailViews()
	printView(string(tab), views.View(tab))
	return nil
}

func printDetails(orch *orchestrator.Orchestrator) {
	stores := orch.Stores()
	detail := stores.Lexemes.Detail()
	if detail == nil {
		return
	}

	title := detail.Lexeme.ID
	if clicked := stores.Lexemes.Clicked(); clicked != nil && clicked.Label != "" {
		title = clicked.Label + " (" + detail.Lexeme.ID + ")"
	}
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", len(title)))
	if detail.Lexeme.LexicalCategoryLabel != "" {
		fmt.Printf("Category: %s\n", detail.Lexeme.LexicalCategoryLabel)
	}
	if detail.Lexeme.Image != nil {
		fmt.Printf("Image: %s\n", *detail.Lexeme.Image)
	}

	selected := stores.Languages.Selected()
	views, _ := orch.DetailViews()
	for _, tab := range []entities.ActiveTab{entities.TabSource, entities.TabTarget1, entities.TabTarget2} {
		name := string(tab)
		if l := selected.Slot(entities.LanguageSlot(tab)); l != nil {
			name = l.Label
		}
		printView(name, views.View(tab))
	}
}

func printView(name string, glosses []entities.GlossWithSense) {
	fmt.Printf("\n%s\n", name)
	if len(glosses) == 0 {
		fmt.Println("  (no glosses)")
		return
	}
	for _, g := range glosses {
		fmt.Printf("  %-12s %s", g.SenseID, valueOr(g.Gloss.Value, "(missing)"))
		if g.Gloss.Audio != nil {
			fmt.Printf("  [audio: %s]", *g.Gloss.Audio)
		}
		fmt.Println()
	}
}

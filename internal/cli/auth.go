package cli

import (
	"bufio"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// LoginCommand runs the OAuth handshake. The provider redirects the browser
// to a callback URL which the user pastes back.
type LoginCommand struct {
	storeFlags
	CallbackURL string
}

func NewLoginCommand() *LoginCommand {
	return &LoginCommand{}
}

func (cmd *LoginCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)

	cmd.register(fs)
	fs.StringVar(&cmd.CallbackURL, "callback", "", "Callback URL from the browser (skips the prompt)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s login [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sign in to contribute translations and audio.\n\n")
		fmt.Fprintf(os.Stderr, "The command prints an authorization URL. Open it, approve access, then\n")
		fmt.Fprintf(os.Stderr, "paste the full URL the browser lands on (it contains oauth_verifier\n")
		fmt.Fprintf(os.Stderr, "and oauth_token).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *LoginCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	if session := app.Orchestrator.Stores().Auth.Session(); session.Authenticated() {
		fmt.Printf("Already signed in as %s\n", session.Username)
		return nil
	}

	callback := cmd.CallbackURL
	if callback == "" {
		ctx, cancel := cmd.withTimeout()
		redirect, err := app.Orchestrator.Login(ctx)
		cancel()
		if err != nil {
			return err
		}

		fmt.Println("Open this URL in your browser and approve access:")
		fmt.Printf("\n  %s\n\n", redirect.RedirectURL)
		fmt.Print("Paste the callback URL: ")

		reader := bufio.NewReader(os.Stdin)
		callback, err = reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read callback URL: %w", err)
		}
	}

	verifier, token, err := parseCallback(callback)
	if err != nil {
		return err
	}

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	session, err := app.Orchestrator.CompleteOAuth(ctx, verifier, token)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", session.Username)
	return nil
}

// parseCallback extracts the handshake parameters from a pasted callback
// URL or a bare query string.
func parseCallback(raw string) (verifier, token string, err error) {
	raw = strings.TrimSpace(raw)
	query := raw
	if i := strings.Index(raw, "?"); i >= 0 {
		query = raw[i+1:]
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return "", "", fmt.Errorf("invalid callback URL: %w", err)
	}

	verifier = values.Get("oauth_verifier")
	token = values.Get("oauth_token")
	if verifier == "" || token == "" {
		return "", "", fmt.Errorf("callback URL must contain oauth_verifier and oauth_token")
	}
	return verifier, token, nil
}

// LogoutCommand ends the session on the server and forgets the credentials.
type LogoutCommand struct {
	storeFlags
}

func NewLogoutCommand() *LogoutCommand {
	return &LogoutCommand{}
}

func (cmd *LogoutCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)

	cmd.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s logout [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sign out and remove stored credentials.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *LogoutCommand) Run() error {
	app, err := cmd.open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := cmd.withTimeout()
	defer cancel()

	if err := app.Orchestrator.Logout(ctx); err != nil {
		return err
	}

	fmt.Println("Signed out")
	return nil
}

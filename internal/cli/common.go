package cli

import (
	"context"
	"flag"
	"time"

	"github.com/mrlokans/lexiclient/internal/config"
	"github.com/mrlokans/lexiclient/internal/entrypoint"
)

// DefaultTimeout bounds a single command's network round trips.
const DefaultTimeout = 30 * time.Second

// storeFlags are shared by every command that touches persisted state.
type storeFlags struct {
	DatabasePath string
	Timeout      time.Duration
}

func (f *storeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.DatabasePath, "db", "", "Path to the state store (default: STORE_PATH or "+config.DefaultStorePath+")")
	fs.DurationVar(&f.Timeout, "timeout", DefaultTimeout, "Timeout for the whole command")
}

// open builds the app from the environment, with -db taking precedence.
func (f *storeFlags) open() (*entrypoint.App, error) {
	cfg := config.NewConfig()
	if f.DatabasePath != "" {
		cfg.Store.Path = f.DatabasePath
	}
	return entrypoint.NewApp(cfg)
}

func (f *storeFlags) withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), f.Timeout)
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

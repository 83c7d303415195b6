package entrypoint

import (
	"fmt"
	"io"
	"log"

	"github.com/mrlokans/lexiclient/internal/config"
	"github.com/mrlokans/lexiclient/internal/database"
	"github.com/mrlokans/lexiclient/internal/database/settings"
	http_controllers "github.com/mrlokans/lexiclient/internal/http"
	"github.com/mrlokans/lexiclient/internal/lexapi"
	"github.com/mrlokans/lexiclient/internal/notify"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
	"github.com/mrlokans/lexiclient/internal/state"
	"github.com/mrlokans/lexiclient/internal/storage"
	"github.com/mrlokans/lexiclient/internal/storage/providers/bolt"
	"github.com/mrlokans/lexiclient/internal/tokenstore"
)

// notificationBacklog is how many notices the bridge keeps for polling.
const notificationBacklog = 50

// App holds the core wired to one persistent store. The CLI and the bridge
// both build it the same way.
type App struct {
	Orchestrator *orchestrator.Orchestrator
	API          *lexapi.Client
	Feed         *notify.Feed

	// Checks are the store handles the health endpoint probes.
	Checks map[string]http_controllers.Pinger

	closers []io.Closer
}

// NewApp opens the configured store, hydrates every container from it and
// returns the ready orchestrator.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Checks: make(map[string]http_controllers.Pinger)}

	inner, err := app.openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	store, err := tokenstore.New(inner, tokenstore.Config{
		EncryptionKey: cfg.Store.EncryptionKey,
		KeyFilePath:   cfg.Store.KeyFile,
		Keys:          state.CredentialKeys,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize credential encryption: %w", err)
	}

	app.API = lexapi.NewClient(cfg.API.BaseURL, lexapi.Options{
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	})
	app.Feed = notify.NewFeed(notificationBacklog)

	stores := orchestrator.Stores{
		Languages:  state.NewLanguageStore(store),
		Lexemes:    state.NewLexemeStore(store),
		Auth:       state.NewAuthStore(store),
		Onboarding: state.NewOnboardingStore(store),
	}
	app.Orchestrator = orchestrator.New(app.API, stores, notify.Multi{notify.Log{}, app.Feed})
	app.Orchestrator.Hydrate()

	return app, nil
}

func (a *App) openStore(cfg config.Store) (storage.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		log.Printf("Store driver: memory (state is lost on exit)")
		return storage.NewMemory(), nil

	case config.StoreDriverBolt:
		store, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		a.closers = append(a.closers, store)
		a.Checks["store"] = store
		log.Printf("Store driver: bolt at %s", cfg.Path)
		return store, nil

	case config.StoreDriverSQLite, "":
		db, err := database.NewDatabase(cfg.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		a.Checks["store"] = db
		return settings.NewRepository(db.DB), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Close releases the store handles.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			log.Printf("Error closing store: %v", err)
		}
	}
	a.closers = nil
}

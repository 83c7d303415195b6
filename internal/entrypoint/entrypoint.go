package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/lexiclient/internal/config"
	"github.com/mrlokans/lexiclient/internal/debounce"
	"github.com/mrlokans/lexiclient/internal/entities"
	http_controllers "github.com/mrlokans/lexiclient/internal/http"
	"github.com/mrlokans/lexiclient/internal/scheduler"
	"github.com/mrlokans/lexiclient/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting bridge at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting lexiclient v%s", version)

	app, err := NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	orch := app.Orchestrator

	// Everything started below lives until shutdown
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	trigger := debounce.NewTrigger(runCtx, orch, debounce.Options{
		Quiet: cfg.Search.Debounce,
		Match: cfg.Search.Match,
		OnSelect: func(ctx context.Context, result entities.LexemeSearchResult) error {
			_, err := orch.SelectLexeme(ctx, result)
			return err
		},
	})

	if _, err := orch.LoadLanguages(runCtx, false); err != nil {
		log.Printf("WARNING: language catalog unavailable at startup: %v", err)
	}

	refresher := scheduler.NewCatalogRefreshScheduler(orch, cfg.CatalogRefresh.Enabled, cfg.CatalogRefresh.Schedule)
	if err := refresher.Start(runCtx); err != nil {
		log.Printf("WARNING: catalog refresh disabled: %v", err)
	}

	routerCfg := http_controllers.RouterConfig{
		Actions:       orch,
		Trigger:       trigger,
		SearchMatch:   cfg.Search.Match,
		Notifications: app.Feed,
		Checks:        app.Checks,
		Version:       version,
	}

	// The outbox keeps its queue next to the state store, so a memory store
	// gets no outbox.
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled && cfg.Store.Driver != config.StoreDriverMemory {
		taskClient, err = tasks.NewClient(tasks.OutboxPath(cfg.Store.Path), tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize contribution outbox: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		routerCfg.Outbox = tasks.NewOutbox(taskClient, orch)
		go taskClient.Start(runCtx)
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		trigger.Cancel()
		refresher.Stop()
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		runCancel()
	}

	Serve(router, cfg, onShutdown)
}

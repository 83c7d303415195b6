package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/lexiclient/internal/entities"
)

// CatalogLoader refetches the language catalog.
type CatalogLoader interface {
	LoadLanguages(ctx context.Context, force bool) ([]entities.Language, error)
}

// RefreshStatus describes the last scheduled refresh.
type RefreshStatus struct {
	LastRun   time.Time `json:"last_run"`
	Languages int       `json:"languages"`
	Error     string    `json:"error,omitempty"`
}

// CatalogRefreshScheduler periodically refetches the language catalog so a
// long-running client picks up languages added on the server.
type CatalogRefreshScheduler struct {
	loader   CatalogLoader
	enabled  bool
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	statusMu sync.RWMutex
	status   RefreshStatus
}

func NewCatalogRefreshScheduler(loader CatalogLoader, enabled bool, schedule string) *CatalogRefreshScheduler {
	return &CatalogRefreshScheduler{
		loader:   loader,
		enabled:  enabled,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if refresh is enabled
func (s *CatalogRefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("[SCHEDULER] Catalog refresh: disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runRefresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := GetNextRunTime(s.schedule)
	log.Printf("[SCHEDULER] Catalog refresh: started with schedule '%s' (%s). Next run: %v",
		s.schedule, GetCronDescription(s.schedule), nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running refresh and stops the scheduler
func (s *CatalogRefreshScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	stopped := s.cron.Stop()
	<-stopped.Done()
	if cancel != nil {
		cancel()
	}

	log.Printf("[SCHEDULER] Catalog refresh: stopped")
}

// RunNow refreshes the catalog synchronously
func (s *CatalogRefreshScheduler) RunNow(ctx context.Context) RefreshStatus {
	s.runRefresh(ctx)
	return s.Status()
}

func (s *CatalogRefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *CatalogRefreshScheduler) Status() RefreshStatus {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}

// GetNextRunTime returns when the next refresh will occur
func (s *CatalogRefreshScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CatalogRefreshScheduler) runRefresh(ctx context.Context) {
	startTime := time.Now()
	languages, err := s.loader.LoadLanguages(ctx, true)

	status := RefreshStatus{LastRun: startTime, Languages: len(languages)}
	if err != nil {
		status.Error = err.Error()
		log.Printf("[SCHEDULER] Catalog refresh failed: %v", err)
	} else {
		log.Printf("[SCHEDULER] Catalog refresh: %d languages in %v",
			len(languages), time.Since(startTime).Round(time.Millisecond))
	}

	s.statusMu.Lock()
	s.status = status
	s.statusMu.Unlock()
}

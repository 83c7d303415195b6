package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lexiclient/internal/entities"
)

type fakeLoader struct {
	mu     sync.Mutex
	forced []bool
	err    error
}

func (f *fakeLoader) LoadLanguages(ctx context.Context, force bool) ([]entities.Language, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forced = append(f.forced, force)
	if f.err != nil {
		return nil, f.err
	}
	return []entities.Language{{Code: "en"}, {Code: "es"}}, nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 */12 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule("not a schedule"))
	assert.Error(t, ValidateCronSchedule("0 0 * * * *"))
}

func TestGetCronDescription(t *testing.T) {
	assert.Equal(t, "Every 12 hours", GetCronDescription("0 */12 * * *"))
	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}

func TestGetNextRunTime(t *testing.T) {
	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	assert.Equal(t, 0, next.Minute())

	_, err = GetNextRunTime("bogus")
	assert.Error(t, err)
}

func TestCatalogRefreshDisabled(t *testing.T) {
	s := NewCatalogRefreshScheduler(&fakeLoader{}, false, "0 * * * *")

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestCatalogRefreshInvalidSchedule(t *testing.T) {
	s := NewCatalogRefreshScheduler(&fakeLoader{}, true, "every day")

	err := s.Start(context.Background())

	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestCatalogRefreshStartStop(t *testing.T) {
	s := NewCatalogRefreshScheduler(&fakeLoader{}, true, "0 * * * *")

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.GetNextRunTime())

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestCatalogRefreshRunNow(t *testing.T) {
	loader := &fakeLoader{}
	s := NewCatalogRefreshScheduler(loader, true, "0 * * * *")

	status := s.RunNow(context.Background())

	assert.Equal(t, 2, status.Languages)
	assert.Empty(t, status.Error)
	assert.Equal(t, []bool{true}, loader.forced)

	loader.err = errors.New("network unavailable")
	status = s.RunNow(context.Background())
	assert.Equal(t, "network unavailable", status.Error)
}

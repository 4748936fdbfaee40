package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/crmsheet/internal/repository"
	"github.com/alexanderramin/crmsheet/internal/testutil"
)

const testAuthor = "anna@example.com"

var baseTime = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func setupStore(t *testing.T) (repository.Store, repository.Transactor) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteStore(database), repository.NewSQLiteTransactor(testutil.NewTestUoW(database))
}

type testClock struct {
	now time.Time
}

func newTestClock() *testClock { return &testClock{now: baseTime} }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testOptions(clock *testClock, extra ...Option) []Option {
	return append([]Option{WithClock(clock.Now), WithAuthor(testAuthor)}, extra...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LianaVolkova/yatube/internal/model"
	"github.com/LianaVolkova/yatube/internal/worker"
)

// =============================================================================
// Mock Implementations
// =============================================================================

// MockSessionRepo counts DeleteExpired calls and reports a fixed number
// of deleted rows.
type MockSessionRepo struct {
	calls   atomic.Int64
	deleted int64
}

func (m *MockSessionRepo) Create(ctx context.Context, session *model.Session) error { return nil }

func (m *MockSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	return nil, model.ErrSessionNotFound
}

func (m *MockSessionRepo) Delete(ctx context.Context, id string) error { return nil }

func (m *MockSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	m.calls.Add(1)
	return m.deleted, nil
}

// MockSweeper counts sweeps.
type MockSweeper struct {
	calls atomic.Int64
}

func (m *MockSweeper) Sweep() int {
	m.calls.Add(1)
	return 0
}

// =============================================================================
// Tests
// =============================================================================

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestJanitor_PrunesSessionsAndSweepsCache(t *testing.T) {
	sessions := &MockSessionRepo{deleted: 2}
	sweeper := &MockSweeper{}

	j := worker.NewJanitor(sessions, sweeper, 10*time.Millisecond)
	j.Start()
	defer j.Stop()

	waitFor(t, time.Second, func() bool {
		return sessions.calls.Load() >= 2 && sweeper.calls.Load() >= 2
	})
}

func TestJanitor_NilSweeperIsFine(t *testing.T) {
	sessions := &MockSessionRepo{}

	j := worker.NewJanitor(sessions, nil, 10*time.Millisecond)
	j.Start()

	waitFor(t, time.Second, func() bool {
		return sessions.calls.Load() >= 1
	})

	j.Stop()
}

func TestJanitor_StopHaltsTheLoop(t *testing.T) {
	sessions := &MockSessionRepo{}

	j := worker.NewJanitor(sessions, nil, 10*time.Millisecond)
	j.Start()
	waitFor(t, time.Second, func() bool { return sessions.calls.Load() >= 1 })
	j.Stop()

	after := sessions.calls.Load()
	time.Sleep(50 * time.Millisecond)
	if got := sessions.calls.Load(); got != after {
		t.Errorf("calls after Stop = %d, want %d", got, after)
	}
}

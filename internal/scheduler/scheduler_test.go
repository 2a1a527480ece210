package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroom/backend/internal/db"
	"github.com/pressroom/backend/internal/lifecycle"
	"github.com/pressroom/backend/internal/metrics"
)

func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

type mockEngine struct {
	mu        sync.Mutex
	applied   []int
	applyFunc func(ctx context.Context, articleID int) (*lifecycle.TransitionResult, error)
}

func (m *mockEngine) ApplyTransition(ctx context.Context, articleID int,
	requested lifecycle.Status, role lifecycle.Role, reason string) (*lifecycle.TransitionResult, error) {

	m.mu.Lock()
	m.applied = append(m.applied, articleID)
	m.mu.Unlock()

	if requested != lifecycle.StatusPublished {
		return nil, errors.New("scheduler must only request published")
	}
	if role != lifecycle.RoleScheduler {
		return nil, errors.New("scheduler must act with the scheduler role")
	}

	if m.applyFunc != nil {
		return m.applyFunc(ctx, articleID)
	}
	return &lifecycle.TransitionResult{Changed: true}, nil
}

type mockStore struct {
	dueFunc   func(ctx context.Context, now time.Time) ([]db.Article, error)
	sweepFunc func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *mockStore) ScheduledDue(ctx context.Context, now time.Time) ([]db.Article, error) {
	if m.dueFunc != nil {
		return m.dueFunc(ctx, now)
	}
	return nil, nil
}

func (m *mockStore) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if m.sweepFunc != nil {
		return m.sweepFunc(ctx, cutoff)
	}
	return 0, nil
}

func dueArticles(ids ...int) []db.Article {
	articles := make([]db.Article, len(ids))
	for i, id := range ids {
		articles[i] = db.Article{ID: id, Status: "scheduled"}
	}
	return articles
}

func newTestScheduler(engine Engine, store Store) *Scheduler {
	return New(engine, store, metrics.Nop{}, noOpLogger(), Config{})
}

func TestTick_PromotesEveryDueArticle(t *testing.T) {
	engine := &mockEngine{}
	store := &mockStore{
		dueFunc: func(ctx context.Context, now time.Time) ([]db.Article, error) {
			return dueArticles(4, 7, 9), nil
		},
	}

	newTestScheduler(engine, store).Tick(context.Background(), time.Now())

	assert.Equal(t, []int{4, 7, 9}, engine.applied)
}

func TestTick_NothingDue(t *testing.T) {
	engine := &mockEngine{}
	store := &mockStore{}

	newTestScheduler(engine, store).Tick(context.Background(), time.Now())

	assert.Empty(t, engine.applied)
}

func TestTick_ScanFailureSkipsRun(t *testing.T) {
	engine := &mockEngine{}
	store := &mockStore{
		dueFunc: func(ctx context.Context, now time.Time) ([]db.Article, error) {
			return nil, errors.New("connection refused")
		},
	}

	newTestScheduler(engine, store).Tick(context.Background(), time.Now())

	assert.Empty(t, engine.applied)
}

func TestTick_OneFailureDoesNotAbortBatch(t *testing.T) {
	engine := &mockEngine{
		applyFunc: func(ctx context.Context, articleID int) (*lifecycle.TransitionResult, error) {
			if articleID == 7 {
				return nil, errors.New("storage timeout")
			}
			return &lifecycle.TransitionResult{Changed: true}, nil
		},
	}
	store := &mockStore{
		dueFunc: func(ctx context.Context, now time.Time) ([]db.Article, error) {
			return dueArticles(4, 7, 9), nil
		},
	}

	newTestScheduler(engine, store).Tick(context.Background(), time.Now())

	assert.Equal(t, []int{4, 7, 9}, engine.applied)
}

func TestTick_ConflictAndMissingAreBenign(t *testing.T) {
	engine := &mockEngine{
		applyFunc: func(ctx context.Context, articleID int) (*lifecycle.TransitionResult, error) {
			switch articleID {
			case 4:
				return nil, lifecycle.ErrConflict
			case 7:
				return nil, lifecycle.ErrArticleNotFound
			}
			return &lifecycle.TransitionResult{Changed: true}, nil
		},
	}
	store := &mockStore{
		dueFunc: func(ctx context.Context, now time.Time) ([]db.Article, error) {
			return dueArticles(4, 7, 9), nil
		},
	}

	newTestScheduler(engine, store).Tick(context.Background(), time.Now())

	assert.Equal(t, []int{4, 7, 9}, engine.applied)
}

// stagedStore drains its due set as articles are promoted, modeling the real
// query which stops returning an article once it leaves scheduled.
type stagedStore struct {
	mu  sync.Mutex
	due map[int]bool
}

func (s *stagedStore) ScheduledDue(ctx context.Context, now time.Time) ([]db.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []db.Article
	for id := range s.due {
		out = append(out, db.Article{ID: id, Status: "scheduled"})
	}
	return out, nil
}

func (s *stagedStore) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}

func (s *stagedStore) markPublished(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.due, id)
}

func TestTick_SecondTickIsIdempotent(t *testing.T) {
	store := &stagedStore{due: map[int]bool{4: true}}

	promoted := 0
	engine := &mockEngine{
		applyFunc: func(ctx context.Context, articleID int) (*lifecycle.TransitionResult, error) {
			promoted++
			store.markPublished(articleID)
			return &lifecycle.TransitionResult{Changed: true}, nil
		},
	}

	scheduler := newTestScheduler(engine, store)
	scheduler.Tick(context.Background(), time.Now())
	scheduler.Tick(context.Background(), time.Now())

	assert.Equal(t, 1, promoted, "an article is promoted at most once")
}

func TestSweepNotifications_UsesRetentionCutoff(t *testing.T) {
	now := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	var gotCutoff time.Time
	store := &mockStore{
		sweepFunc: func(ctx context.Context, cutoff time.Time) (int, error) {
			gotCutoff = cutoff
			return 12, nil
		},
	}

	scheduler := New(&mockEngine{}, store, metrics.Nop{}, noOpLogger(),
		Config{Retention: 7 * 24 * time.Hour})
	scheduler.sweepNotifications(context.Background(), now)

	assert.Equal(t, now.Add(-7*24*time.Hour), gotCutoff)
}

func TestConfigDefaults(t *testing.T) {
	scheduler := newTestScheduler(&mockEngine{}, &mockStore{})

	assert.Equal(t, DefaultInterval, scheduler.cfg.Interval)
	assert.Equal(t, DefaultArticleTimeout, scheduler.cfg.ArticleTimeout)
	assert.Equal(t, DefaultRetention, scheduler.cfg.Retention)
}

func TestStartStop(t *testing.T) {
	scheduler := newTestScheduler(&mockEngine{}, &mockStore{})

	require.NoError(t, scheduler.Start())
	scheduler.Stop()
}

package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressroom/backend/internal/db"
	"github.com/pressroom/backend/internal/metrics"
)

// Event topics consumed by real-time listeners.
const (
	TopicArticleStatus    = "article_status"
	TopicArticlePublished = "article_published"
)

// Store is the storage surface the engine needs. *db.Repository implements
// it; tests substitute in-memory stubs.
type Store interface {
	ArticleByID(ctx context.Context, articleID int) (*db.Article, error)
	InsertArticle(ctx context.Context, article *db.Article) error
	CompareAndSetStatus(ctx context.Context, articleID int, expected string, change db.StatusChange) (bool, error)
	ArticlesByStatus(ctx context.Context, status string, page, pageSize int) ([]db.Article, error)
}

// Emitter publishes domain events to connected clients. Fire-and-forget:
// implementations must not block and must swallow their own failures.
type Emitter interface {
	Publish(topic string, payload any)
}

// Notifier is the notification fanout surface. Calls must not block the
// transition and must never return its failures to the engine.
type Notifier interface {
	ArticleApproved(article Article)
	ArticlePublished(article Article)
	ArticleRejected(article Article, reason string)
	ArticleFlagged(article Article, reason string)
}

// Manager is the lifecycle engine: the single gate through which article
// status ever changes.
type Manager struct {
	db      Store
	events  Emitter
	notify  Notifier
	metrics metrics.Recorder
	log     *slog.Logger
}

func NewManager(store Store, events Emitter, notify Notifier,
	rec metrics.Recorder, log *slog.Logger) *Manager {

	return &Manager{
		db:      store,
		events:  events,
		notify:  notify,
		metrics: rec,
		log:     log,
	}
}

// CreateArticle inserts a new article with its initial status resolved per
// role. Publication never happens here; a scheduled article must carry a
// publish time.
func (m *Manager) CreateArticle(ctx context.Context, article NewArticle, role Role) (*Article, error) {
	status := ResolveCreateStatus(article.Status, role)

	record := &db.Article{
		AuthorID:  article.AuthorID,
		Title:     article.Title,
		Content:   article.Content,
		Status:    string(status),
		CreatedAt: time.Now(),
	}

	if status == StatusScheduled {
		if article.ScheduledPublishAt == nil {
			return nil, ErrMissingScheduleTime
		}
		record.ScheduledPublishAt = article.ScheduledPublishAt
	}

	if err := m.db.InsertArticle(ctx, record); err != nil {
		return nil, fmt.Errorf("db insert article: %w", err)
	}

	m.log.Info("article created",
		"articleId", record.ID,
		"authorId", record.AuthorID,
		"status", record.Status,
	)

	created := NewArticleFromDB(record)
	return &created, nil
}

// ApplyTransition validates and commits a status change, then emits the
// domain event and triggers notification fanout. The conditional write is
// the sole serialization point: of concurrent callers observing the same
// current status, exactly one wins and the rest get ErrConflict.
func (m *Manager) ApplyTransition(ctx context.Context, articleID int,
	requested Status, role Role, reason string) (*TransitionResult, error) {

	record, err := m.db.ArticleByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	}
	if record == nil {
		return nil, ErrArticleNotFound
	}

	current := Status(record.Status)

	// Idempotent no-op: no write, no event, no fanout. The scheduler's
	// retry safety depends on this short-circuit.
	if current == requested {
		article := NewArticleFromDB(record)
		return &TransitionResult{
			Article: &article,
			From:    current,
			To:      requested,
			Changed: false,
		}, nil
	}

	if err := Decide(current, requested, role); err != nil {
		m.metrics.RecordTransitionDenied(string(requested))
		return nil, err
	}

	now := time.Now()
	change := db.StatusChange{
		Status:    string(requested),
		UpdatedAt: now,
	}

	switch requested {
	case StatusPublished:
		change.PublishedAt = &now
	case StatusRejected, StatusFlagged:
		change.ReviewerComment = &reason
	}

	ok, err := m.db.CompareAndSetStatus(ctx, articleID, string(current), change)
	if err != nil {
		return nil, fmt.Errorf("db update article status: %w", err)
	}
	if !ok {
		m.metrics.RecordTransitionConflict()
		return nil, ErrConflict
	}

	m.metrics.RecordTransitionApplied(string(current), string(requested))
	m.log.Info("article status changed",
		"articleId", articleID,
		"from", current,
		"to", requested,
		"role", role,
	)

	article := NewArticleFromDB(record)
	article.Status = requested
	article.ScheduledPublishAt = nil
	article.UpdatedAt = &now
	if change.PublishedAt != nil {
		article.PublishedAt = change.PublishedAt
	}
	if change.ReviewerComment != nil {
		article.ReviewerComment = *change.ReviewerComment
	}

	event := StatusEvent{ArticleID: articleID, From: current, To: requested, Reason: reason}
	m.events.Publish(TopicArticleStatus, event)
	if requested == StatusPublished {
		m.events.Publish(TopicArticlePublished, event)
	}

	m.fanout(article, current, requested, reason)

	return &TransitionResult{
		Article: &article,
		From:    current,
		To:      requested,
		Changed: true,
	}, nil
}

// fanout triggers notifications for the transitions that matter to users.
// The Notifier isolates its own failures; a committed status change is
// never rolled back because a notification failed.
func (m *Manager) fanout(article Article, from, to Status, reason string) {
	switch {
	case from == StatusPending && to == StatusPublished:
		m.notify.ArticleApproved(article)
	case from == StatusScheduled && to == StatusPublished:
		m.notify.ArticlePublished(article)
	case to == StatusRejected:
		m.notify.ArticleRejected(article, reason)
	case to == StatusFlagged:
		m.notify.ArticleFlagged(article, reason)
	}
}

// ArticleByID retrieves a single article. Returns (nil, ErrArticleNotFound)
// when it does not exist.
func (m *Manager) ArticleByID(ctx context.Context, articleID int) (*Article, error) {
	record, err := m.db.ArticleByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	}
	if record == nil {
		return nil, ErrArticleNotFound
	}

	article := NewArticleFromDB(record)
	return &article, nil
}

// ArticlesByStatus lists articles in one status, newest first. Backs the
// moderation queue.
func (m *Manager) ArticlesByStatus(ctx context.Context, status Status, page, pageSize int) ([]Article, error) {
	list, err := m.db.ArticlesByStatus(ctx, string(status), page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("db get articles by status: %w", err)
	}

	return NewArticlesFromDB(list), nil
}
